package vm

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/nupy/program"
)

func TestEvalBinary(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		op   program.Operator
		rhs  Value
		want Value
	}{
		{"int plus", IntValue(3), program.OpPlus, IntValue(4), IntValue(7)},
		{"int minus", IntValue(3), program.OpMinus, IntValue(4), IntValue(-1)},
		{"int mul", IntValue(6), program.OpMul, IntValue(7), IntValue(42)},
		{"int div truncates", IntValue(7), program.OpDiv, IntValue(2), IntValue(3)},
		{"int div negative", IntValue(-7), program.OpDiv, IntValue(2), IntValue(-3)},
		{"int mod", IntValue(7), program.OpMod, IntValue(3), IntValue(1)},
		{"int power", IntValue(2), program.OpPower, IntValue(10), IntValue(1024)},
		{"int power zero", IntValue(5), program.OpPower, IntValue(0), IntValue(1)},
		{"int lt", IntValue(1), program.OpLT, IntValue(2), BoolValue(true)},
		{"int ge", IntValue(1), program.OpGE, IntValue(2), BoolValue(false)},
		{"int eq", IntValue(2), program.OpEQ, IntValue(2), BoolValue(true)},
		{"real plus", RealValue(1.5), program.OpPlus, RealValue(2.25), RealValue(3.75)},
		{"real div", RealValue(1), program.OpDiv, RealValue(4), RealValue(0.25)},
		{"real mod", RealValue(5.5), program.OpMod, RealValue(2), RealValue(1.5)},
		{"real power", RealValue(2), program.OpPower, RealValue(0.5), RealValue(math.Sqrt2)},
		{"int real promote", IntValue(1), program.OpPlus, RealValue(0.5), RealValue(1.5)},
		{"real int promote", RealValue(3), program.OpMul, IntValue(2), RealValue(6)},
		{"mixed compare", IntValue(2), program.OpLE, RealValue(2.0), BoolValue(true)},
		{"mixed ne", RealValue(2.5), program.OpNE, IntValue(2), BoolValue(true)},
		{"str concat", StrValue("ab"), program.OpPlus, StrValue("cd"), StrValue("abcd")},
		{"str lt", StrValue("abc"), program.OpLT, StrValue("abd"), BoolValue(true)},
		{"str eq", StrValue("x"), program.OpEQ, StrValue("x"), BoolValue(true)},
		{"str gt", StrValue("b"), program.OpGT, StrValue("ab"), BoolValue(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalBinary(tt.lhs, tt.op, tt.rhs, 1)
			if err != nil {
				t.Fatalf("EvalBinary failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("%v %s %v = %v, want %v", tt.lhs, tt.op, tt.rhs, got, tt.want)
			}
		})
	}
}

func TestEvalBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		op   program.Operator
		rhs  Value
		kind ErrorKind
		msg  string
	}{
		{"int div zero", IntValue(10), program.OpDiv, IntValue(0), RuntimeError, "division by zero"},
		{"int mod zero", IntValue(10), program.OpMod, IntValue(0), RuntimeError, "division by zero"},
		{"real div zero", RealValue(1), program.OpDiv, RealValue(0), RuntimeError, "division by zero"},
		{"mixed mod zero", RealValue(1), program.OpMod, IntValue(0), RuntimeError, "division by zero"},
		{"negative power", IntValue(2), program.OpPower, IntValue(-1), RuntimeError, "negative exponent in integer power"},
		{"str minus", StrValue("a"), program.OpMinus, StrValue("b"), SemanticError, "invalid operand types"},
		{"str int", StrValue("a"), program.OpPlus, IntValue(1), SemanticError, "invalid operand types"},
		{"bool int", BoolValue(true), program.OpPlus, IntValue(1), SemanticError, "invalid operand types"},
		{"none eq", None, program.OpEQ, None, SemanticError, "invalid operand types"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvalBinary(tt.lhs, tt.op, tt.rhs, 9)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("EvalBinary error = %v, want *Error", err)
			}
			if e.Kind != tt.kind || e.Msg != tt.msg || e.Line != 9 {
				t.Errorf("error = %+v, want kind %s msg %q line 9", e, tt.kind, tt.msg)
			}
		})
	}
}

func TestEvalElement(t *testing.T) {
	m := NewMemory()
	m.Write("x", IntValue(5))

	tests := []struct {
		elem program.Element
		want Value
	}{
		{program.Ident("x"), IntValue(5)},
		{program.Int("12"), IntValue(12)},
		{program.Real("2.5"), RealValue(2.5)},
		{program.Str("hi"), StrValue("hi")},
		{program.Bool(true), BoolValue(true)},
		{program.Bool(false), BoolValue(false)},
		{program.Element{Kind: program.NoneLiteral}, None},
	}
	for _, tt := range tests {
		got, err := EvalElement(tt.elem, m, 1)
		if err != nil {
			t.Errorf("EvalElement(%v) failed: %v", tt.elem, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EvalElement(%v) = %v, want %v", tt.elem, got, tt.want)
		}
	}
}

func TestEvalUndefinedIdentifier(t *testing.T) {
	m := NewMemory()
	e := &program.Expr{LHS: program.Ident("y"), Op: program.OpPlus, RHS: program.Int("1")}

	_, err := EvalExpr(e, m, 4)
	want := "**SEMANTIC ERROR: name 'y' is not defined (line 4)"
	if err == nil || err.Error() != want {
		t.Errorf("EvalExpr error = %v, want %q", err, want)
	}
}

func TestEvalUnaryExpr(t *testing.T) {
	m := NewMemory()
	m.Write("s", StrValue("text"))

	got, err := EvalExpr(&program.Expr{LHS: program.Ident("s")}, m, 1)
	if err != nil {
		t.Fatalf("EvalExpr failed: %v", err)
	}
	if got != StrValue("text") {
		t.Errorf("EvalExpr = %v, want %q", got, "text")
	}
}

func TestAtoiAtof(t *testing.T) {
	ints := map[string]int64{
		"42":     42,
		"  -17x": -17,
		"+8":     8,
		"12abc":  12,
		"abc":    0,
		"":       0,
		"-":      0,
	}
	for s, want := range ints {
		if got := atoi(s); got != want {
			t.Errorf("atoi(%q) = %d, want %d", s, got, want)
		}
	}

	reals := map[string]float64{
		"3.5":    3.5,
		" -2e3z": -2000,
		".5":     0.5,
		"7.":     7,
		"1e":     1,
		"inf":    math.Inf(1),
		"-Inf":   math.Inf(-1),
		"x1":     0,
		".":      0,
	}
	for s, want := range reals {
		if got := atof(s); got != want {
			t.Errorf("atof(%q) = %g, want %g", s, got, want)
		}
	}
}
