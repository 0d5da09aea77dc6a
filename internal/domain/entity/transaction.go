package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by transactions and date ranges.
const DateLayout = "2006-01-02"

// Reserved field names. Every other field of a record is an attribute.
const (
	FieldDate   = "date"
	FieldAmount = "amount"
	FieldTax    = "tax"
	FieldCost   = "cost"
)

// Transaction is a single sale record.
type Transaction struct {
	Date       time.Time
	Amount     decimal.Decimal
	Tax        *decimal.Decimal
	Cost       *decimal.Decimal
	Attributes map[string]Value
}

// DateString returns the transaction date as YYYY-MM-DD.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// Field looks up a field by name. The boolean is false when the record does not carry it.
// amount, tax and cost come back as numbers.
func (t Transaction) Field(name string) (Value, bool) {
	switch name {
	case FieldDate:
		return Text(t.DateString()), true
	case FieldAmount:
		return Decimal(t.Amount), true
	case FieldTax:
		if t.Tax == nil {
			return Value{}, false
		}
		return Decimal(*t.Tax), true
	case FieldCost:
		if t.Cost == nil {
			return Value{}, false
		}
		return Decimal(*t.Cost), true
	}
	v, ok := t.Attributes[name]
	return v, ok
}

// Attribute returns the text of attribute name, or "" when absent.
func (t Transaction) Attribute(name string) string {
	return t.Attributes[name].String()
}

// AttributeNames returns the attribute keys in lexical order.
func (t Transaction) AttributeNames() []string {
	names := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON writes the record back as a flat object, the shape it was read in.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.writeJSON(&buf, nil); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON writes the object without its closing brace. Attributes named in skip are left out.
func (t Transaction) writeJSON(buf *bytes.Buffer, skip map[string]bool) error {
	buf.WriteByte('{')
	if err := writeMember(buf, FieldDate, t.DateString()); err != nil {
		return err
	}
	members := []struct {
		name  string
		value *decimal.Decimal
	}{
		{FieldAmount, &t.Amount},
		{FieldTax, t.Tax},
		{FieldCost, t.Cost},
	}
	for _, m := range members {
		if m.value == nil {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(buf, m.name, *m.value); err != nil {
			return err
		}
	}
	for _, name := range t.AttributeNames() {
		if skip[name] {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(buf, name, t.Attributes[name]); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON reads a flat object. date and amount are required; numbers and strings are
// both accepted for the decimal fields. Other members keep their JSON kind; null members
// are absent.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	values := make(map[string]Value, len(raw))
	for k, member := range raw {
		if string(bytes.TrimSpace(member)) == "null" {
			continue
		}
		var v Value
		if err := json.Unmarshal(member, &v); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		values[k] = v
	}
	parsed, err := TransactionFromValues(values)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TransactionFromFields builds a transaction from string values keyed by field name.
// Empty tax/cost values are treated as absent.
func TransactionFromFields(values map[string]string) (Transaction, error) {
	typed := make(map[string]Value, len(values))
	for k, v := range values {
		typed[k] = Text(v)
	}
	return TransactionFromValues(typed)
}

// TransactionFromValues builds a transaction from typed values keyed by field name. The
// reserved fields are parsed from their text; every other value becomes an attribute as is.
func TransactionFromValues(values map[string]Value) (Transaction, error) {
	var t Transaction

	rawDate, ok := values[FieldDate]
	if !ok || strings.TrimSpace(rawDate.String()) == "" {
		return t, fmt.Errorf("missing required field %q", FieldDate)
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(rawDate.String()))
	if err != nil {
		return t, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", FieldDate, rawDate.String())
	}
	t.Date = date

	rawAmount, ok := values[FieldAmount]
	if !ok || strings.TrimSpace(rawAmount.String()) == "" {
		return t, fmt.Errorf("missing required field %q", FieldAmount)
	}
	t.Amount, err = decimal.NewFromString(strings.TrimSpace(rawAmount.String()))
	if err != nil {
		return t, fmt.Errorf("invalid %s %q: %w", FieldAmount, rawAmount.String(), err)
	}

	if t.Tax, err = optionalDecimal(values, FieldTax); err != nil {
		return t, err
	}
	if t.Cost, err = optionalDecimal(values, FieldCost); err != nil {
		return t, err
	}

	for k, v := range values {
		switch k {
		case FieldDate, FieldAmount, FieldTax, FieldCost:
			continue
		}
		if t.Attributes == nil {
			t.Attributes = make(map[string]Value)
		}
		t.Attributes[k] = v
	}
	return t, nil
}

func optionalDecimal(values map[string]Value, name string) (*decimal.Decimal, error) {
	v, ok := values[name]
	raw := strings.TrimSpace(v.String())
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &d, nil
}

func writeMember(buf *bytes.Buffer, name string, value interface{}) error {
	k, err := json.Marshal(name)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
