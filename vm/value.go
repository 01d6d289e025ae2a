package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Value: typed runtime values
// ---------------------------------------------------------------------------

// Kind identifies the dynamic type of a Value.
type Kind int

// The zero Kind is KindNone, so the zero Value is None.
const (
	KindNone Kind = iota
	KindInt
	KindReal
	KindStr
	KindPtr
	KindBool
)

var kindNames = [...]string{
	KindNone: "none",
	KindInt:  "int",
	KindReal: "real",
	KindStr:  "str",
	KindPtr:  "ptr",
	KindBool: "bool",
}

// String returns the short type tag used by the debugger.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a tagged union over the runtime types. Values are plain data and
// are copied on assignment; Memory clones string payloads on every read and
// write so no two holders share a backing buffer.
//
// Booleans and pointers share the integer slot: a boolean is 0 or 1.
type Value struct {
	kind Kind
	i    int64
	d    float64
	s    string
}

// None is the None value. It equals the zero Value.
var None = Value{}

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// RealValue returns a real value.
func RealValue(d float64) Value { return Value{kind: KindReal, d: d} }

// StrValue returns a string value.
func StrValue(s string) Value { return Value{kind: KindStr, s: s} }

// PtrValue returns a pointer value holding a memory address.
func PtrValue(addr int) Value { return Value{kind: KindPtr, i: int64(addr)} }

// BoolValue returns True or False.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool, i: 0}
}

// Kind returns the dynamic type.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload of an int value.
func (v Value) Int() int64 { return v.i }

// Real returns the payload of a real value.
func (v Value) Real() float64 { return v.d }

// Str returns the payload of a string value.
func (v Value) Str() string { return v.s }

// Bool returns the payload of a boolean value.
func (v Value) Bool() bool { return v.i != 0 }

// Ptr returns the address held by a pointer value.
func (v Value) Ptr() int { return int(v.i) }

// clone returns a copy with its own string buffer.
func (v Value) clone() Value {
	if v.kind == KindStr {
		v.s = strings.Clone(v.s)
	}
	return v
}

// Display returns the text print writes for the value: integers in decimal,
// reals in fixed point with six decimals, strings verbatim and booleans as
// True or False.
func (v Value) Display() string {
	switch v.kind {
	case KindInt, KindPtr:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.d, 'f', 6, 64)
	case KindStr:
		return v.s
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

// Inspect returns the text the debugger shows for the value. Reals use six
// significant digits and booleans show their 0/1 flag.
func (v Value) Inspect() string {
	switch v.kind {
	case KindInt, KindPtr, KindBool:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.d, 'g', 6, 64)
	case KindStr:
		return v.s
	default:
		return "None"
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindStr {
		return strconv.Quote(v.s)
	}
	return v.kind.String() + "(" + v.Display() + ")"
}
