package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionFromFields_SplitsReservedFieldsAndAttributes(t *testing.T) {
	// When
	tx, err := TransactionFromFields(map[string]string{
		"date":     "2024-03-09",
		"amount":   "120.50",
		"tax":      "",
		"cost":     "80",
		"product":  "Pen",
		"category": "Office",
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", tx.DateString())
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("120.5")))
	assert.Nil(t, tx.Tax, "an empty tax is treated as absent")
	require.NotNil(t, tx.Cost)
	assert.Equal(t, []string{"category", "product"}, tx.AttributeNames())

	v, ok := tx.Field("product")
	assert.True(t, ok)
	assert.Equal(t, "Pen", v.String())
	_, ok = tx.Field("tax")
	assert.False(t, ok)
	_, ok = tx.Field("region")
	assert.False(t, ok)
}

func TestTransactionFromFields_RequiresDateAndAmount(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"missing date", map[string]string{"amount": "1"}},
		{"missing amount", map[string]string{"date": "2024-01-01"}},
		{"bad date", map[string]string{"date": "01/01/2024", "amount": "1"}},
		{"bad amount", map[string]string{"date": "2024-01-01", "amount": "one"}},
		{"bad cost", map[string]string{"date": "2024-01-01", "amount": "1", "cost": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TransactionFromFields(tt.values)
			assert.Error(t, err)
		})
	}
}

func TestTransaction_JSONRoundTripKeepsFlatShape(t *testing.T) {
	// Given
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-02","amount":100,"cost":"60","region":"North","units":3}`), &tx))

	// When
	out, err := json.Marshal(tx)

	// Then
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","amount":100,"cost":60,"region":"North","units":3}`, string(out))
}

func TestDetailedTransaction_MarshalAppendsDerivedFields(t *testing.T) {
	// Given
	tx, err := TransactionFromFields(map[string]string{"date": "2024-01-02", "amount": "100", "cost": "60"})
	require.NoError(t, err)
	profit := decimal.NewFromInt(40)
	d := DetailedTransaction{Transaction: tx, Profit: &profit, Margin: &profit}

	// When
	out, err := json.Marshal(d)

	// Then
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","amount":100,"cost":60,"profit":40,"margin":40}`, string(out))
}

func TestDetailedTransaction_DerivedFieldReplacesSameNamedAttribute(t *testing.T) {
	// Given
	tx, err := TransactionFromFields(map[string]string{
		"date": "2024-01-02", "amount": "100", "cost": "60", "profit": "legacy", "pre_tax": "kept",
	})
	require.NoError(t, err)
	profit := decimal.NewFromInt(40)
	d := DetailedTransaction{Transaction: tx, Profit: &profit}

	// When
	out, err := json.Marshal(d)

	// Then
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-02","amount":100,"cost":60,"pre_tax":"kept","profit":40}`, string(out))
	assert.Equal(t, 1, strings.Count(string(out), `"profit"`))
}

func TestTransaction_JSONKeepsAttributeKinds(t *testing.T) {
	// Given
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(
		`{"date":"2024-01-01","amount":10,"quantity":2.50,"vip":true,"meta":{ "a": 1 },"note":null}`), &tx))

	// When
	out, err := json.Marshal(tx)

	// Then
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-01","amount":10,"meta":{"a":1},"quantity":2.50,"vip":true}`, string(out))
	quantity, ok := tx.Field("quantity")
	require.True(t, ok)
	assert.Equal(t, KindNumber, quantity.Kind())
	vip, _ := tx.Field("vip")
	assert.Equal(t, KindBool, vip.Kind())
	meta, _ := tx.Field("meta")
	assert.Equal(t, KindRaw, meta.Kind())
	_, ok = tx.Field("note")
	assert.False(t, ok)
}

func TestValue_NumbersCompareByDecimalValue(t *testing.T) {
	a, err := Number("2.50")
	require.NoError(t, err)
	b, err := Number("2.5")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "2.50", a.String())
	assert.True(t, a.Matches("2.5"))
	assert.True(t, a.Matches(" 2.500 "))
	assert.False(t, a.Matches("abc"))
	assert.False(t, a.Equal(Text("2.5")))
	assert.False(t, Text("2.50").Matches("2.5"))
	assert.True(t, Bool(true).Matches("true"))
	assert.False(t, Bool(true).Equal(Text("true")))
}

func TestValueOf_ConvertsDecodedValues(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		kind ValueKind
		text string
	}{
		{"string", "North", KindString, "North"},
		{"int", 3, KindNumber, "3"},
		{"float", 2.5, KindNumber, "2.5"},
		{"bool", false, KindBool, "false"},
		{"map", map[string]interface{}{"a": 1}, KindRaw, `{"a":1}`},
		{"list", []interface{}{"x", 2}, KindRaw, `["x",2]`},
		{"date", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), KindString, "2024-01-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := ValueOf(tt.in)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.String())
		})
	}

	_, ok, err := ValueOf(nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	_, _, err = ValueOf(struct{}{})
	assert.Error(t, err)
}

func TestSaleExtreme_MarshalWritesMoneyAsNumbers(t *testing.T) {
	// When
	out, err := json.Marshal(SaleExtreme{Date: "2024-01-02", Amount: decimal.RequireFromString("12.50")})

	// Then
	require.NoError(t, err)
	assert.Contains(t, string(out), `"amount":12.5`)
	assert.NotContains(t, string(out), `"12.5"`)
}

func TestMonth_NextRollsOverYear(t *testing.T) {
	m := Month{Year: 2024, Month: time.November}
	assert.Equal(t, "2024-12", m.Next().String())
	assert.Equal(t, "2025-01", m.Next().Next().String())
	assert.True(t, m.Before(m.Next()))
	assert.False(t, m.Next().Before(m))
	assert.Equal(t, Month{Year: 2024, Month: time.March}, MonthOf(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
}

func TestMonthlySeries_MarshalKeepsOrder(t *testing.T) {
	// Given
	s := MonthlySeries{
		{Month: Month{Year: 2024, Month: time.December}, Amount: decimal.NewFromInt(10)},
		{Month: Month{Year: 2025, Month: time.January}, Amount: decimal.NewFromInt(5)},
	}

	// When
	out, err := json.Marshal(s)

	// Then
	require.NoError(t, err)
	assert.Equal(t, `{"2024-12":10,"2025-01":5}`, string(out))

	empty, err := json.Marshal(MonthlySeries{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestFilterValue_JSON(t *testing.T) {
	// Given
	var fs FilterSet
	require.NoError(t, json.Unmarshal([]byte(`{"region":"North","category":["Books","Games"],"amount":100}`), &fs))

	// Then
	assert.Equal(t, Equals("North"), fs["region"])
	assert.Equal(t, OneOf("Books", "Games"), fs["category"])
	assert.Equal(t, Equals("100"), fs["amount"])
	assert.Equal(t, "amount=100, category=Books|Games, region=North", fs.String())

	out, err := json.Marshal(fs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"region":"North","category":["Books","Games"],"amount":"100"}`, string(out))
}

func TestParseFilterSet_RejectsNestedValues(t *testing.T) {
	_, err := ParseFilterSet(map[string]interface{}{"region": map[string]interface{}{"a": 1}})
	assert.Error(t, err)

	_, err = ParseFilterSet(map[string]interface{}{"region": []interface{}{[]interface{}{"x"}}})
	assert.Error(t, err)

	fs, err := ParseFilterSet(nil)
	assert.NoError(t, err)
	assert.Nil(t, fs)
}

func TestGrouping_MarshalJSON(t *testing.T) {
	// Given
	g := NewGrouping("region")
	tx, err := TransactionFromFields(map[string]string{"date": "2024-01-02", "amount": "10", "region": "North"})
	require.NoError(t, err)
	entry := g.Add("North", tx)
	entry.Average = decimal.NewFromInt(10)
	entry.Percentage = decimal.NewFromInt(100)

	// When
	out, err := json.Marshal(g)

	// Then
	require.NoError(t, err)
	assert.JSONEq(t, `{"by":"region","groups":{"North":{"count":1,"total":10,"average":10,"percentage":100}}}`, string(out))
}

func TestNewEmptyResult(t *testing.T) {
	out, err := json.Marshal(NewEmptyResult())
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"No data matches the specified criteria","data":[]}`, string(out))
}

func TestCharts_NamesPutTimeSeriesFirst(t *testing.T) {
	c := Charts{
		ChartSalesBy("region"):  ChartSeries{},
		ChartSalesOverTime:      ChartSeries{},
		ChartSalesBy("product"): ChartSeries{},
	}
	assert.Equal(t, []string{"sales_over_time", "sales_by_product", "sales_by_region"}, c.Names())
}

func TestOutputFormat_Extension(t *testing.T) {
	assert.Equal(t, "xlsx", FormatExcel.Extension())
	assert.Equal(t, "pdf", FormatPDF.Extension())
}
