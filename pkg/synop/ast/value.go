package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a decoded field value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

// Placeholder is the character FM-12 uses for missing digits.
const Placeholder = '/'

// Value is a decoded field value. Every field of every node is either a
// concrete value or explicitly null; there is no "unset" state distinct
// from null. Values are immutable.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a decimal value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value (raw codes, resolved table labels).
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull returns true for the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer payload. Zero for non-integer values.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the decimal payload, widening integers.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the string payload. Empty for non-string values.
func (v Value) AsString() string { return v.s }

// AsBool returns the boolean payload. False for non-boolean values.
func (v Value) AsBool() bool { return v.b }

// Render returns the value as a plain Go value suitable for
// serialization: nil, int64, float64, string, or bool.
func (v Value) Render() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// BaseKind declares the base type a raw sub-field converts to before any
// post-conversion hook runs.
type BaseKind uint8

const (
	BaseInt BaseKind = iota
	BaseFloat
	BaseString
)

// IsMissing reports whether a raw sub-field stands for missing data.
// A sub-field composed entirely of the placeholder character is missing;
// for numeric fields a single placeholder digit already makes the value
// undecodable, so any placeholder marks the field missing.
func IsMissing(raw string, base BaseKind) bool {
	if raw == "" {
		return true
	}
	if base == BaseInt || base == BaseFloat {
		return strings.ContainsRune(raw, Placeholder)
	}
	for _, r := range raw {
		if r != Placeholder {
			return false
		}
	}
	return true
}

// ParseBase converts a raw sub-field string into a Value of the given
// base kind. It is total over missing data: placeholder input yields the
// null value, never a zero or sentinel number.
func ParseBase(raw string, base BaseKind) (Value, error) {
	raw = strings.TrimSpace(raw)
	if IsMissing(raw, base) {
		return Null(), nil
	}

	switch base {
	case BaseInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Null(), fmt.Errorf("not an integer: %q", raw)
		}
		return Int(n), nil
	case BaseFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Null(), fmt.Errorf("not a number: %q", raw)
		}
		return Float(f), nil
	case BaseString:
		return String(raw), nil
	default:
		return Null(), fmt.Errorf("unknown base kind %d", base)
	}
}
