package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// sale builds a transaction from date, amount and optional extra fields given as
// name/value pairs.
func sale(t *testing.T, date, amount string, extra ...string) entity.Transaction {
	t.Helper()
	require.Zero(t, len(extra)%2, "extra fields must come in name/value pairs")

	values := map[string]string{entity.FieldDate: date, entity.FieldAmount: amount}
	for i := 0; i < len(extra); i += 2 {
		values[extra[i]] = extra[i+1]
	}
	tx, err := entity.TransactionFromFields(values)
	require.NoError(t, err)
	return tx
}

// typedSales is a JSON source whose attributes keep their JSON kinds.
const typedSales = `[
	{"date":"2024-01-01","amount":10,"quantity":2.50,"vip":true,"meta":{"a":1}},
	{"date":"2024-01-02","amount":20,"quantity":2.5}
]`

func decodeSales(t *testing.T, data string) []entity.Transaction {
	t.Helper()
	var txs []entity.Transaction
	require.NoError(t, json.Unmarshal([]byte(data), &txs))
	return txs
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}
