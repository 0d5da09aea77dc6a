package entity

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// DetailedTransaction is a transaction with its derived fields. Derived values are nil
// when the source record lacks the fields they depend on.
type DetailedTransaction struct {
	Transaction
	PreTax *decimal.Decimal
	Profit *decimal.Decimal
	Margin *decimal.Decimal
}

// MarshalJSON writes the original record with pre_tax, profit and margin appended. A derived
// value replaces a source attribute of the same name.
func (d DetailedTransaction) MarshalJSON() ([]byte, error) {
	derived := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"pre_tax", d.PreTax},
		{"profit", d.Profit},
		{"margin", d.Margin},
	}
	skip := make(map[string]bool, len(derived))
	for _, e := range derived {
		if e.value != nil {
			skip[e.name] = true
		}
	}

	var buf bytes.Buffer
	if err := d.Transaction.writeJSON(&buf, skip); err != nil {
		return nil, err
	}
	for _, e := range derived {
		if e.value == nil {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, e.name, *e.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
