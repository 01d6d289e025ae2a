package vm

import (
	"math"
	"strconv"
	"strings"

	"github.com/chazu/nupy/program"
)

// ---------------------------------------------------------------------------
// Expression evaluation
// ---------------------------------------------------------------------------

// EvalElement resolves a term to a value. Identifiers are read from mem; an
// identifier that was never written is a semantic error.
func EvalElement(e program.Element, mem *Memory, line int) (Value, error) {
	switch e.Kind {
	case program.Identifier:
		v, ok := mem.Read(e.Value)
		if !ok {
			return Value{}, undefined(line, e.Value)
		}
		return v, nil
	case program.IntLiteral:
		i, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			return Value{}, semanticf(line, "invalid int literal '%s'", e.Value)
		}
		return IntValue(i), nil
	case program.RealLiteral:
		d, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return Value{}, semanticf(line, "invalid real literal '%s'", e.Value)
		}
		return RealValue(d), nil
	case program.StrLiteral:
		return StrValue(e.Value), nil
	case program.TrueLiteral:
		return BoolValue(true), nil
	case program.FalseLiteral:
		return BoolValue(false), nil
	case program.NoneLiteral:
		return None, nil
	default:
		panic("vm: unexpected element kind " + e.Kind.String())
	}
}

// EvalExpr evaluates a single term or a binary operation.
func EvalExpr(e *program.Expr, mem *Memory, line int) (Value, error) {
	lhs, err := EvalElement(e.LHS, mem, line)
	if err != nil {
		return Value{}, err
	}
	if !e.IsBinary() {
		return lhs, nil
	}
	rhs, err := EvalElement(e.RHS, mem, line)
	if err != nil {
		return Value{}, err
	}
	return EvalBinary(lhs, e.Op, rhs, line)
}

// EvalBinary applies op to two evaluated operands. Int and real operands
// mix by promoting the int; strings support + and comparisons; any other
// pairing is a semantic error.
func EvalBinary(lhs Value, op program.Operator, rhs Value, line int) (Value, error) {
	if op == program.OpNone {
		panic("vm: EvalBinary without operator")
	}

	switch {
	case lhs.kind == KindInt && rhs.kind == KindInt:
		return intOp(lhs.i, op, rhs.i, line)
	case lhs.kind == KindReal && rhs.kind == KindReal:
		return realOp(lhs.d, op, rhs.d, line)
	case lhs.kind == KindInt && rhs.kind == KindReal:
		return realOp(float64(lhs.i), op, rhs.d, line)
	case lhs.kind == KindReal && rhs.kind == KindInt:
		return realOp(lhs.d, op, float64(rhs.i), line)
	case lhs.kind == KindStr && rhs.kind == KindStr:
		return strOp(lhs.s, op, rhs.s, line)
	default:
		return Value{}, invalidOperands(line)
	}
}

func intOp(a int64, op program.Operator, b int64, line int) (Value, error) {
	switch op {
	case program.OpPlus:
		return IntValue(a + b), nil
	case program.OpMinus:
		return IntValue(a - b), nil
	case program.OpMul:
		return IntValue(a * b), nil
	case program.OpDiv:
		if b == 0 {
			return Value{}, divisionByZero(line)
		}
		return IntValue(a / b), nil
	case program.OpMod:
		if b == 0 {
			return Value{}, divisionByZero(line)
		}
		return IntValue(a % b), nil
	case program.OpPower:
		if b < 0 {
			return Value{}, runtimef(line, "negative exponent in integer power")
		}
		return IntValue(ipow(a, b)), nil
	}
	return compare(cmpInt(a, b), op), nil
}

// ipow computes a**b for b >= 0 by repeated squaring.
func ipow(a, b int64) int64 {
	result := int64(1)
	for b > 0 {
		if b&1 == 1 {
			result *= a
		}
		a *= a
		b >>= 1
	}
	return result
}

func realOp(a float64, op program.Operator, b float64, line int) (Value, error) {
	switch op {
	case program.OpPlus:
		return RealValue(a + b), nil
	case program.OpMinus:
		return RealValue(a - b), nil
	case program.OpMul:
		return RealValue(a * b), nil
	case program.OpDiv:
		if b == 0 {
			return Value{}, divisionByZero(line)
		}
		return RealValue(a / b), nil
	case program.OpMod:
		if b == 0 {
			return Value{}, divisionByZero(line)
		}
		return RealValue(math.Mod(a, b)), nil
	case program.OpPower:
		return RealValue(math.Pow(a, b)), nil
	}

	// NaN compares unequal to everything, including itself.
	switch op {
	case program.OpEQ:
		return BoolValue(a == b), nil
	case program.OpNE:
		return BoolValue(a != b), nil
	case program.OpLT:
		return BoolValue(a < b), nil
	case program.OpLE:
		return BoolValue(a <= b), nil
	case program.OpGT:
		return BoolValue(a > b), nil
	case program.OpGE:
		return BoolValue(a >= b), nil
	}
	panic("vm: unexpected operator " + op.String())
}

func strOp(a string, op program.Operator, b string, line int) (Value, error) {
	if op == program.OpPlus {
		var sb strings.Builder
		sb.Grow(len(a) + len(b))
		sb.WriteString(a)
		sb.WriteString(b)
		return StrValue(sb.String()), nil
	}
	if !op.IsComparison() {
		return Value{}, invalidOperands(line)
	}
	return compare(strings.Compare(a, b), op), nil
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compare maps a three-way comparison result to the boolean for op.
func compare(c int, op program.Operator) Value {
	switch op {
	case program.OpEQ:
		return BoolValue(c == 0)
	case program.OpNE:
		return BoolValue(c != 0)
	case program.OpLT:
		return BoolValue(c < 0)
	case program.OpLE:
		return BoolValue(c <= 0)
	case program.OpGT:
		return BoolValue(c > 0)
	case program.OpGE:
		return BoolValue(c >= 0)
	}
	panic("vm: unexpected operator " + op.String())
}
