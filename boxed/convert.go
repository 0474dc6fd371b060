package boxed

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"
)

// Integer unboxing for widths narrower than 64 bits validates range and
// reports an out-of-range value as a miss rather than truncating.

// AsInt8 unboxes an int8.
func (v Value) AsInt8() (int8, bool) {
	i, ok := v.AsInt()
	if !ok || i < math.MinInt8 || i > math.MaxInt8 {
		return 0, false
	}
	return int8(i), true
}

// AsInt16 unboxes an int16.
func (v Value) AsInt16() (int16, bool) {
	i, ok := v.AsInt()
	if !ok || i < math.MinInt16 || i > math.MaxInt16 {
		return 0, false
	}
	return int16(i), true
}

// AsInt32 unboxes an int32.
func (v Value) AsInt32() (int32, bool) {
	i, ok := v.AsInt()
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int32(i), true
}

// AsUint8 unboxes a uint8.
func (v Value) AsUint8() (uint8, bool) {
	i, ok := v.AsInt()
	if !ok || i < 0 || i > math.MaxUint8 {
		return 0, false
	}
	return uint8(i), true
}

// AsUint16 unboxes a uint16.
func (v Value) AsUint16() (uint16, bool) {
	i, ok := v.AsInt()
	if !ok || i < 0 || i > math.MaxUint16 {
		return 0, false
	}
	return uint16(i), true
}

// AsUint32 unboxes a uint32.
func (v Value) AsUint32() (uint32, bool) {
	i, ok := v.AsInt()
	if !ok || i < 0 || i > math.MaxUint32 {
		return 0, false
	}
	return uint32(i), true
}

// AsUint64 unboxes a uint64. Boxed integers are signed 64-bit, so values
// above math.MaxInt64 cannot be represented and negative values miss.
func (v Value) AsUint64() (uint64, bool) {
	i, ok := v.AsInt()
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

// Time boxes a timestamp as its ISO-8601 string form.
func Time(t time.Time) Value {
	return String(t.Format(time.RFC3339Nano))
}

// AsTime unboxes an ISO-8601 timestamp string.
func (v Value) AsTime() (time.Time, bool) {
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// URL boxes a URL as its absolute-string form.
func URL(u *url.URL) Value {
	if u == nil {
		return Null()
	}
	return String(u.String())
}

// AsURL unboxes a URL string.
func (v Value) AsURL() (*url.URL, bool) {
	s, ok := v.AsString()
	if !ok {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}

// Data boxes an arbitrary JSON-marshalable structure as its canonical JSON
// encoding embedded as bytes. Keys are sorted, so structurally equal inputs
// produce equal boxes and configuration equality behaves predictably.
func Data(v any) (Value, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return Null(), err
	}
	return Bytes(canonical), nil
}

// AsData unboxes a Data value into target via JSON.
func (v Value) AsData(target any) bool {
	raw, ok := v.AsBytes()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

// canonicalJSON marshals v, re-reads it into generic containers, and
// marshals again so that object keys come out sorted regardless of whether
// v was a struct or a map.
func canonicalJSON(v any) ([]byte, error) {
	first, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("boxed: cannot encode data value: %w", err)
	}
	var generic any
	if err := json.Unmarshal(first, &generic); err != nil {
		return nil, fmt.Errorf("boxed: cannot canonicalize data value: %w", err)
	}
	return json.Marshal(generic)
}

// FromAny boxes a plain Go value as produced by the yaml or json decoders.
// Unsupported types fall back to their string form.
func FromAny(value any) Value {
	switch v := value.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Int(int64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case []byte:
		return Bytes(v)
	case time.Time:
		return Time(v)
	case []any:
		values := make([]Value, len(v))
		for i, item := range v {
			values[i] = FromAny(item)
		}
		return Array(values...)
	case map[string]any:
		values := make(map[string]Value, len(v))
		for k, item := range v {
			values[k] = FromAny(item)
		}
		return Dict(values)
	default:
		return String(fmt.Sprintf("%v", v))
	}
}

// ToAny unboxes into plain Go containers (the inverse of FromAny, except
// that floats come out as float64 and so rebox as doubles).
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolValue
	case KindInt:
		return v.intValue
	case KindFloat, KindDouble:
		return v.floatValue
	case KindString:
		return v.stringValue
	case KindBytes:
		return v.bytesValue
	case KindArray:
		out := make([]any, len(v.arrayValue))
		for i, item := range v.arrayValue {
			out[i] = item.ToAny()
		}
		return out
	case KindDict:
		out := make(map[string]any, len(v.dictValue))
		for k, item := range v.dictValue {
			out[k] = item.ToAny()
		}
		return out
	}
	return nil
}
