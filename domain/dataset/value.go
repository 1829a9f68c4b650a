package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the closed set of cell variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a single spreadsheet cell: Null, Number or Text.
// The zero Value is Null.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Null returns the absent-value marker.
func Null() Value { return Value{} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text wraps a string cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// FromAny converts a decoded JSON scalar into a Value.
func FromAny(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return Text(t.String())
	case string:
		return Text(t)
	case bool:
		return Text(strconv.FormatBool(t))
	default:
		return Text(fmt.Sprint(t))
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsBlank reports Null or empty Text. Blank cells count as absent for
// co-occurrence and hashed sampling.
func (v Value) IsBlank() bool {
	return v.kind == KindNull || (v.kind == KindText && v.text == "")
}

// AsNumber returns the payload of a Number cell. No coercion is attempted.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsText returns the payload of a Text cell. No coercion is attempted.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// String renders the cell the way it is displayed and hashed.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Interface returns the cell as a plain Go scalar (nil, float64 or string).
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.text
	default:
		return nil
	}
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindText:
		return v.text == other.text
	default:
		return true
	}
}

// MarshalJSON encodes Null (and non-finite numbers) as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the cell as its plain scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

// UnmarshalJSON accepts any JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("cell value must be a scalar, got %s", string(data[:1]))
	}
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// DecodeRow decodes a JSON object of scalars into a Row and also returns its
// keys in document order. A repeated key keeps its first position and its
// last value.
func DecodeRow(data []byte) (Row, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("row must be a JSON object")
	}

	row := Row{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return nil, nil, fmt.Errorf("row key %q: %w", key, err)
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return row, keys, nil
}
