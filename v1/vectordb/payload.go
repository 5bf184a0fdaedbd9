package vectordb

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldAccountID is the payload field carrying the owning tenant.
// It is written on every upsert and matched on every read; callers
// cannot override it.
const FieldAccountID = "account_id"

// Kind enumerates the closed set of payload value kinds.
type Kind int

const (
	// KindString - a UTF-8 string
	KindString Kind = iota
	// KindNumber - a float64
	KindNumber
	// KindInteger - an int64
	KindInteger
	// KindBool - a boolean
	KindBool
	// KindStringList - a list of strings (tags, categories)
	KindStringList
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindStringList:
		return "string_list"
	default:
		return "unknown"
	}
}

// Value is one payload attribute value. The zero Value is the empty string.
//
// Product payloads are dynamic (arbitrary attribute names) but the value
// kinds are closed: string, number, integer, bool, or list of strings.
// Anything else is rejected at the boundary instead of leaking an untyped
// map through the storage layer.
type Value struct {
	kind Kind
	str  string
	num  float64
	i64  int64
	b    bool
	list []string
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a float value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Integer creates an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i64: i} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// StringList creates a list-of-strings value. The slice is copied.
func StringList(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindStringList, list: cp}
}

// Kind reports which of the closed value kinds this value holds.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string content; the zero string for other kinds.
func (v Value) Str() string { return v.str }

// Num returns the float content; 0 for other kinds.
func (v Value) Num() float64 { return v.num }

// Int returns the integer content; 0 for other kinds.
func (v Value) Int() int64 { return v.i64 }

// IsTrue returns the boolean content; false for other kinds.
func (v Value) IsTrue() bool { return v.b }

// List returns a copy of the string-list content; nil for other kinds.
func (v Value) List() []string {
	if v.kind != KindStringList {
		return nil
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// Any returns the value as a plain Go type, for adapters that speak
// map[string]any at their boundary.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindInteger:
		return v.i64
	case KindBool:
		return v.b
	case KindStringList:
		return v.List()
	default:
		return nil
	}
}

// ValueOf converts a plain Go value into a Value. It accepts the kinds a
// JSON body can produce (string, bool, float64, int variants, []string,
// []any of strings) and fails on anything outside the closed set.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		// JSON numbers arrive as float64; keep integral values as integers
		// so equality filters on them behave.
		if x == float64(int64(x)) {
			return Integer(int64(x)), nil
		}
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case []string:
		return StringList(x...), nil
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("payload list values must be strings, got %T at index %d", item, i)
			}
			items[i] = s
		}
		return StringList(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported payload value type %T", raw)
	}
}

// MarshalJSON encodes the value as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes a plain JSON value into the closed kind set.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// GoString helps test failure output stay readable.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// Payload maps attribute names to values. Every stored payload includes
// FieldAccountID.
type Payload map[string]Value

// Clone returns a shallow copy safe to mutate without affecting the caller.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// AccountID returns the owning account id stored on the payload, or the
// empty string when missing.
func (p Payload) AccountID() string {
	return p[FieldAccountID].Str()
}
