// Package boxed implements the tagged-union values used to carry action and
// scenario configuration in a codec-agnostic way. Every value ferried by an
// action configuration or scenario option is first reduced to a Value.
package boxed

import (
	"encoding/base64"
	"strings"
)

// Kind is the tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is a boxed configuration value. The zero Value is null.
type Value struct {
	kind        Kind
	boolValue   bool
	intValue    int64
	floatValue  float64
	stringValue string
	bytesValue  []byte
	arrayValue  []Value
	dictValue   map[string]Value
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Null returns the null value.
func Null() Value { return Value{} }

// Bool boxes a bool.
func Bool(b bool) Value { return Value{kind: KindBool, boolValue: b} }

// Int boxes a 64-bit signed integer.
func Int(i int64) Value { return Value{kind: KindInt, intValue: i} }

// Float boxes a single-precision float.
func Float(f float32) Value { return Value{kind: KindFloat, floatValue: float64(f)} }

// Double boxes a double-precision float.
func Double(f float64) Value { return Value{kind: KindDouble, floatValue: f} }

// String boxes a string.
func String(s string) Value { return Value{kind: KindString, stringValue: s} }

// Bytes boxes a byte slice.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytesValue: b} }

// Array boxes an ordered list of values.
func Array(values ...Value) Value { return Value{kind: KindArray, arrayValue: values} }

// Dict boxes a string-keyed mapping of values.
func Dict(values map[string]Value) Value { return Value{kind: KindDict, dictValue: values} }

// AsBool unboxes a bool. Integers coerce to nonzero; strings coerce
// case-insensitively from "true"/"1" and "false"/"0".
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.boolValue, true
	case KindInt:
		return v.intValue != 0, true
	case KindString:
		switch strings.ToLower(v.stringValue) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

// AsInt unboxes a 64-bit signed integer. Doubles unbox only when integral.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.intValue, true
	case KindFloat, KindDouble:
		i := int64(v.floatValue)
		if float64(i) == v.floatValue {
			return i, true
		}
	}
	return 0, false
}

// AsDouble unboxes a double. Ints and floats widen exactly.
func (v Value) AsDouble() (float64, bool) {
	switch v.kind {
	case KindFloat, KindDouble:
		return v.floatValue, true
	case KindInt:
		return float64(v.intValue), true
	}
	return 0, false
}

// AsFloat unboxes a single-precision float. A double unboxes only when the
// narrowing is exact; the miss is reported rather than truncating.
func (v Value) AsFloat() (float32, bool) {
	switch v.kind {
	case KindFloat:
		return float32(v.floatValue), true
	case KindDouble:
		f := float32(v.floatValue)
		if float64(f) == v.floatValue {
			return f, true
		}
	case KindInt:
		f := float32(v.intValue)
		if int64(f) == v.intValue {
			return f, true
		}
	}
	return 0, false
}

// AsString unboxes a string.
func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.stringValue, true
	}
	return "", false
}

// AsBytes unboxes a byte slice. A string unboxes when it is valid base64,
// which is how bytes survive a JSON round trip.
func (v Value) AsBytes() ([]byte, bool) {
	switch v.kind {
	case KindBytes:
		return v.bytesValue, true
	case KindString:
		if decoded, err := base64.StdEncoding.DecodeString(v.stringValue); err == nil {
			return decoded, true
		}
	}
	return nil, false
}

// AsArray unboxes the element list.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind == KindArray {
		return v.arrayValue, true
	}
	return nil, false
}

// AsDict unboxes the mapping.
func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind == KindDict {
		return v.dictValue, true
	}
	return nil, false
}

// Equal reports deep structural equality of two values. Tags must match:
// Int(1) and Double(1) are not equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolValue == other.boolValue
	case KindInt:
		return v.intValue == other.intValue
	case KindFloat, KindDouble:
		return v.floatValue == other.floatValue
	case KindString:
		return v.stringValue == other.stringValue
	case KindBytes:
		if len(v.bytesValue) != len(other.bytesValue) {
			return false
		}
		for i := range v.bytesValue {
			if v.bytesValue[i] != other.bytesValue[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arrayValue) != len(other.arrayValue) {
			return false
		}
		for i := range v.arrayValue {
			if !v.arrayValue[i].Equal(other.arrayValue[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dictValue) != len(other.dictValue) {
			return false
		}
		for k, val := range v.dictValue {
			otherVal, ok := other.dictValue[k]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
		return true
	}
	return false
}
