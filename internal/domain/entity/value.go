package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind is the JSON kind of a field value as it was read from the source.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	// KindRaw holds a nested object or array, kept verbatim.
	KindRaw
)

// Value is a single field value with its original kind. Numbers compare by decimal value,
// so 2.5 and 2.50 are the same value.
type Value struct {
	kind ValueKind
	text string
	num  decimal.Decimal
}

// Text builds a string value.
func Text(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number builds a numeric value from its literal, keeping the literal for output.
func Number(literal string) (Value, error) {
	literal = strings.TrimSpace(literal)
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", literal, err)
	}
	return Value{kind: KindNumber, text: literal, num: d}, nil
}

// Decimal builds a numeric value from d.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindNumber, text: d.String(), num: d}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Raw builds a value holding a nested JSON object or array.
func Raw(raw json.RawMessage) (Value, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Value{}, err
	}
	return Value{kind: KindRaw, text: buf.String()}, nil
}

func (v Value) Kind() ValueKind { return v.kind }

// String returns the value as it was written in the source.
func (v Value) String() string { return v.text }

// Decimal returns the numeric value; ok is false for non-numbers.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.kind != KindNumber {
		return decimal.Zero, false
	}
	return v.num, true
}

// Key identifies the value for equality: same kind and, for numbers, same decimal value.
func (v Value) Key() string {
	if v.kind == KindNumber {
		return "n:" + v.num.String()
	}
	return strconv.Itoa(int(v.kind)) + ":" + v.text
}

// Equal reports whether both values are the same (see Key).
func (v Value) Equal(o Value) bool {
	return v.Key() == o.Key()
}

// Matches compares the value with a filter operand. Numbers are compared by decimal value,
// everything else by text.
func (v Value) Matches(operand string) bool {
	if v.kind == KindNumber {
		d, err := decimal.NewFromString(strings.TrimSpace(operand))
		return err == nil && v.num.Equal(d)
	}
	return v.text == operand
}

// MarshalJSON writes the value back with its original JSON kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber, KindBool, KindRaw:
		return []byte(v.text), nil
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON keeps the JSON kind of the member. null is rejected; callers treat it as an
// absent field before decoding.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	var err error
	switch data[0] {
	case '"':
		var s string
		if err = json.Unmarshal(data, &s); err == nil {
			*v = Text(s)
		}
	case 't', 'f':
		var b bool
		if err = json.Unmarshal(data, &b); err == nil {
			*v = Bool(b)
		}
	case '{', '[':
		*v, err = Raw(data)
	case 'n':
		err = fmt.Errorf("null value")
	default:
		*v, err = Number(string(data))
	}
	return err
}

// ValueOf converts a decoded YAML/JSON value. ok is false for nil, which marks an absent field.
func ValueOf(x interface{}) (v Value, ok bool, err error) {
	switch val := x.(type) {
	case nil:
		return Value{}, false, nil
	case string:
		return Text(val), true, nil
	case bool:
		return Bool(val), true, nil
	case json.Number:
		v, err = Number(val.String())
	case int:
		v = Decimal(decimal.NewFromInt(int64(val)))
	case int64:
		v = Decimal(decimal.NewFromInt(val))
	case uint64:
		v, err = Number(strconv.FormatUint(val, 10))
	case float64:
		v, err = Number(strconv.FormatFloat(val, 'f', -1, 64))
	case time.Time:
		if val.Equal(val.Truncate(24 * time.Hour)) {
			return Text(val.Format(DateLayout)), true, nil
		}
		return Text(val.Format(time.RFC3339)), true, nil
	case map[string]interface{}, []interface{}:
		var raw []byte
		if raw, err = json.Marshal(val); err == nil {
			v, err = Raw(raw)
		}
	default:
		return Value{}, false, fmt.Errorf("unsupported value of type %T", x)
	}
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}
