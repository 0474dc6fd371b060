package boxed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// MarshalJSON renders the smallest equivalent JSON for the value's tag.
// Bytes encode as base64 strings; dict keys come out sorted.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBytes:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.bytesValue))
	case KindArray:
		items := v.arrayValue
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(items)
	case KindDict:
		entries := v.dictValue
		if entries == nil {
			entries = map[string]Value{}
		}
		return json.Marshal(entries)
	default:
		return json.Marshal(v.ToAny())
	}
}

// UnmarshalJSON decodes arbitrary JSON into a boxed value.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// DecodeJSON parses JSON into a boxed value. Numbers without a fractional
// or exponent part decode as ints, all others as doubles; strings stay
// strings (base64 bytes are recovered through AsBytes).
func DecodeJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), fmt.Errorf("boxed: invalid JSON")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		if isIntegerLiteral(r.Raw) {
			return Int(r.Int())
		}
		return Double(r.Num)
	default:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			if items == nil {
				items = []Value{}
			}
			return Array(items...)
		}
		if r.IsObject() {
			entries := make(map[string]Value)
			r.ForEach(func(key, item gjson.Result) bool {
				entries[key.String()] = fromResult(item)
				return true
			})
			return Dict(entries)
		}
		return Null()
	}
}

func isIntegerLiteral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}
