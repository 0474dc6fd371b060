package boxed

import "testing"

// ── kinds and constructors ────────────────────────────────────────────────────

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("zero Value must be null")
	}
	if v.Kind() != KindNull {
		t.Errorf("kind = %v, want null", v.Kind())
	}
}

func TestConstructorsSetKinds(t *testing.T) {
	cases := []struct {
		value Value
		kind  Kind
	}{
		{Null(), KindNull},
		{Bool(true), KindBool},
		{Int(7), KindInt},
		{Float(1.5), KindFloat},
		{Double(2.5), KindDouble},
		{String("x"), KindString},
		{Bytes([]byte{1}), KindBytes},
		{Array(Int(1)), KindArray},
		{Dict(map[string]Value{"k": Null()}), KindDict},
	}
	for _, c := range cases {
		if c.value.Kind() != c.kind {
			t.Errorf("kind = %v, want %v", c.value.Kind(), c.kind)
		}
	}
}

// ── bool coercion ─────────────────────────────────────────────────────────────

func TestAsBool_FromBool(t *testing.T) {
	if got, ok := Bool(true).AsBool(); !ok || !got {
		t.Errorf("AsBool = (%v, %v), want (true, true)", got, ok)
	}
}

func TestAsBool_IntNonzero(t *testing.T) {
	if got, ok := Int(5).AsBool(); !ok || !got {
		t.Errorf("nonzero int: AsBool = (%v, %v), want (true, true)", got, ok)
	}
	if got, ok := Int(0).AsBool(); !ok || got {
		t.Errorf("zero int: AsBool = (%v, %v), want (false, true)", got, ok)
	}
	if got, ok := Int(-3).AsBool(); !ok || !got {
		t.Errorf("negative int: AsBool = (%v, %v), want (true, true)", got, ok)
	}
}

func TestAsBool_StringCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want bool
		ok   bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"True", true, true},
		{"1", true, true},
		{"false", false, true},
		{"FALSE", false, true},
		{"0", false, true},
		{"yes", false, false},
		{"", false, false},
	}
	for _, c := range cases {
		got, ok := String(c.in).AsBool()
		if got != c.want || ok != c.ok {
			t.Errorf("AsBool(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestAsBool_DoubleMisses(t *testing.T) {
	if _, ok := Double(1).AsBool(); ok {
		t.Error("double must not coerce to bool")
	}
}

// ── numeric unboxing ──────────────────────────────────────────────────────────

func TestAsInt_FromInt(t *testing.T) {
	if got, ok := Int(-42).AsInt(); !ok || got != -42 {
		t.Errorf("AsInt = (%d, %v), want (-42, true)", got, ok)
	}
}

func TestAsInt_IntegralDouble(t *testing.T) {
	if got, ok := Double(8).AsInt(); !ok || got != 8 {
		t.Errorf("AsInt = (%d, %v), want (8, true)", got, ok)
	}
	if _, ok := Double(8.5).AsInt(); ok {
		t.Error("fractional double must not unbox to int")
	}
}

func TestAsFloat_ExactNarrowingOnly(t *testing.T) {
	if got, ok := Double(0.5).AsFloat(); !ok || got != 0.5 {
		t.Errorf("AsFloat = (%v, %v), want (0.5, true)", got, ok)
	}
	// 0.1 is not representable exactly in float32
	if _, ok := Double(0.1).AsFloat(); ok {
		t.Error("inexact narrowing must miss, not truncate")
	}
}

func TestAsDouble_WidensIntAndFloat(t *testing.T) {
	if got, ok := Int(3).AsDouble(); !ok || got != 3 {
		t.Errorf("AsDouble(int) = (%v, %v), want (3, true)", got, ok)
	}
	if got, ok := Float(1.5).AsDouble(); !ok || got != 1.5 {
		t.Errorf("AsDouble(float) = (%v, %v), want (1.5, true)", got, ok)
	}
}

// ── strings, bytes, containers ────────────────────────────────────────────────

func TestAsString(t *testing.T) {
	if got, ok := String("hello").AsString(); !ok || got != "hello" {
		t.Errorf("AsString = (%q, %v)", got, ok)
	}
	if _, ok := Int(1).AsString(); ok {
		t.Error("int must not unbox to string")
	}
}

func TestAsBytes_FromBytes(t *testing.T) {
	got, ok := Bytes([]byte{1, 2, 3}).AsBytes()
	if !ok || len(got) != 3 {
		t.Errorf("AsBytes = (%v, %v)", got, ok)
	}
}

func TestAsBytes_FromBase64String(t *testing.T) {
	got, ok := String("aGVsbG8=").AsBytes()
	if !ok || string(got) != "hello" {
		t.Errorf("AsBytes = (%q, %v), want (hello, true)", got, ok)
	}
}

func TestAsArrayAndDict(t *testing.T) {
	arr, ok := Array(Int(1), Int(2)).AsArray()
	if !ok || len(arr) != 2 {
		t.Errorf("AsArray = (%v, %v)", arr, ok)
	}
	dict, ok := Dict(map[string]Value{"k": Int(1)}).AsDict()
	if !ok || len(dict) != 1 {
		t.Errorf("AsDict = (%v, %v)", dict, ok)
	}
}

// ── equality ──────────────────────────────────────────────────────────────────

func TestEqual_SameTagSameValue(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Null(), Null(), true},
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{Int(1), Double(1), false}, // tags must match
		{Float(1.5), Float(1.5), true},
		{Float(1.5), Double(1.5), false},
		{String("a"), String("a"), true},
		{Bytes([]byte{1, 2}), Bytes([]byte{1, 2}), true},
		{Bytes([]byte{1, 2}), Bytes([]byte{1, 3}), false},
		{Array(Int(1), Int(2)), Array(Int(1), Int(2)), true},
		{Array(Int(1)), Array(Int(1), Int(2)), false},
		{
			Dict(map[string]Value{"a": Int(1), "b": String("x")}),
			Dict(map[string]Value{"b": String("x"), "a": Int(1)}),
			true,
		},
		{
			Dict(map[string]Value{"a": Int(1)}),
			Dict(map[string]Value{"a": Int(2)}),
			false,
		},
	}
	for i, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("case %d: Equal = %v, want %v", i, got, c.want)
		}
	}
}

func TestEqual_NestedStructures(t *testing.T) {
	build := func() Value {
		return Dict(map[string]Value{
			"list": Array(Int(1), Dict(map[string]Value{"inner": Bool(true)})),
		})
	}
	if !build().Equal(build()) {
		t.Error("structurally identical nested values must be equal")
	}
}
