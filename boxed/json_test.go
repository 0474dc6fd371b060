package boxed

import (
	"encoding/json"
	"testing"
)

// ── encoding ──────────────────────────────────────────────────────────────────

func TestMarshalJSON_Primitives(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Double(1.5), "1.5"},
		{String("hi"), `"hi"`},
		{Bytes([]byte("hello")), `"aGVsbG8="`},
		{Array(Int(1), String("x")), `[1,"x"]`},
		{Array(), `[]`},
	}
	for i, c := range cases {
		data, err := json.Marshal(c.value)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if string(data) != c.want {
			t.Errorf("case %d: marshal = %s, want %s", i, data, c.want)
		}
	}
}

func TestMarshalJSON_DictSortedKeys(t *testing.T) {
	v := Dict(map[string]Value{"b": Int(2), "a": Int(1)})
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1,"b":2}` {
		t.Errorf("marshal = %s, want sorted keys", data)
	}
}

// ── decoding ──────────────────────────────────────────────────────────────────

func TestDecodeJSON_IntegerVersusDouble(t *testing.T) {
	v, err := DecodeJSON([]byte("42"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindInt {
		t.Errorf("42 decoded as %v, want int", v.Kind())
	}

	v, err = DecodeJSON([]byte("42.5"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindDouble {
		t.Errorf("42.5 decoded as %v, want double", v.Kind())
	}

	v, err = DecodeJSON([]byte("1e3"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindDouble {
		t.Errorf("1e3 decoded as %v, want double", v.Kind())
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	if _, err := DecodeJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeJSON_NestedStructure(t *testing.T) {
	data := []byte(`{"name":"demo","flags":[true,false],"meta":{"count":2}}`)
	v, err := DecodeJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Dict(map[string]Value{
		"name":  String("demo"),
		"flags": Array(Bool(true), Bool(false)),
		"meta":  Dict(map[string]Value{"count": Int(2)}),
	})
	if !v.Equal(want) {
		t.Errorf("decode = %+v, want %+v", v, want)
	}
}

// ── round trips ───────────────────────────────────────────────────────────────

func TestJSONRoundTrip_Composite(t *testing.T) {
	values := []Value{
		Null(),
		Bool(true),
		Int(-7),
		Double(2.25),
		String("text"),
		Array(Int(1), Array(String("nested"))),
		Dict(map[string]Value{
			"a": Int(1),
			"b": Array(Bool(false), Null()),
			"c": Dict(map[string]Value{"deep": String("v")}),
		}),
	}
	for i, original := range values {
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("case %d: marshal: %v", i, err)
		}
		var decoded Value
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("case %d: unmarshal: %v", i, err)
		}
		if !original.Equal(decoded) {
			t.Errorf("case %d: round trip changed value: %s", i, data)
		}
	}
}

func TestJSONRoundTrip_BytesViaAccessor(t *testing.T) {
	original := Bytes([]byte{0xde, 0xad, 0xbe, 0xef})
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	// Bytes arrive back as a base64 string; the accessor recovers them.
	got, ok := decoded.AsBytes()
	if !ok {
		t.Fatal("AsBytes missed after round trip")
	}
	want, _ := original.AsBytes()
	if string(got) != string(want) {
		t.Errorf("bytes round trip = %x, want %x", got, want)
	}
}
