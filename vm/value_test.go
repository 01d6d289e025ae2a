package vm

import (
	"math"
	"testing"
)

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(-12), "-12"},
		{RealValue(2.5), "2.500000"},
		{RealValue(1.0 / 3), "0.333333"},
		{StrValue("abc"), "abc"},
		{BoolValue(true), "True"},
		{BoolValue(false), "False"},
		{None, "None"},
	}
	for _, tt := range tests {
		if got := tt.v.Display(); got != tt.want {
			t.Errorf("%v.Display() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestValueInspect(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(7), "7"},
		{RealValue(2.5), "2.5"},
		{RealValue(1.0 / 3), "0.333333"},
		{RealValue(1234567), "1.23457e+06"},
		{RealValue(math.Inf(1)), "+Inf"},
		{StrValue("hi there"), "hi there"},
		{BoolValue(true), "1"},
		{BoolValue(false), "0"},
		{PtrValue(3), "3"},
		{None, "None"},
	}
	for _, tt := range tests {
		if got := tt.v.Inspect(); got != tt.want {
			t.Errorf("%v.Inspect() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindInt: "int", KindReal: "real", KindStr: "str",
		KindPtr: "ptr", KindBool: "bool", KindNone: "none",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestZeroValueIsNone(t *testing.T) {
	var v Value
	if v.Kind() != KindNone || v != None {
		t.Errorf("zero Value = %v, want None", v)
	}
	if v.Display() != "None" {
		t.Errorf("zero Value Display() = %q, want None", v.Display())
	}
}
