// Package program holds the statement graph executed by the nupy engine.
//
// A program is an arena of statement nodes addressed by NodeID. Nodes own
// mutable successor links; while-loop nodes own two (body entry and after
// loop) and the tail of a loop body links back to the loop node, so the
// graph contains cycles.
package program

import "fmt"

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// NodeID addresses a statement node in a Graph.
type NodeID int

// NoNode marks an absent link.
const NoNode NodeID = -1

// Stmt is the interface implemented by all statement kinds.
type Stmt interface {
	stmt() // marker method
}

// Assignment stores the value of RHS into the variable Target.
type Assignment struct {
	Target string
	RHS    RHS
	Next   NodeID
}

// Call invokes a built-in function as a statement. Only print is supported.
type Call struct {
	Func string
	Arg  *Element // nil when called without an argument
	Next NodeID
}

// Pass does nothing.
type Pass struct {
	Next NodeID
}

// While evaluates Cond and follows Body when it holds, Next otherwise.
type While struct {
	Cond Expr
	Body NodeID
	Next NodeID
}

func (*Assignment) stmt() {}
func (*Call) stmt()       {}
func (*Pass) stmt()       {}
func (*While) stmt()      {}

// ---------------------------------------------------------------------------
// Right-hand sides and expressions
// ---------------------------------------------------------------------------

// RHS is the right-hand side of an assignment: *Expr or *FuncCall.
type RHS interface {
	rhs() // marker method
}

// FuncCall is a built-in call on the right of an assignment,
// e.g. input("name? ") or int(s).
type FuncCall struct {
	Func string
	Arg  Element
}

// Expr is a single element, or a binary operation when Op is not OpNone.
type Expr struct {
	LHS Element
	Op  Operator
	RHS Element
}

func (*Expr) rhs()     {}
func (*FuncCall) rhs() {}

// IsBinary reports whether the expression has an operator.
func (e *Expr) IsBinary() bool {
	return e.Op != OpNone
}

// ElementKind identifies the kind of an expression term.
type ElementKind int

const (
	Identifier ElementKind = iota
	IntLiteral
	RealLiteral
	StrLiteral
	TrueLiteral
	FalseLiteral
	NoneLiteral
)

var elementKindNames = [...]string{
	Identifier:   "identifier",
	IntLiteral:   "int",
	RealLiteral:  "real",
	StrLiteral:   "str",
	TrueLiteral:  "True",
	FalseLiteral: "False",
	NoneLiteral:  "None",
}

func (k ElementKind) String() string {
	if k < 0 || int(k) >= len(elementKindNames) {
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
	return elementKindNames[k]
}

// ParseElementKind maps a file-format kind name to an ElementKind.
func ParseElementKind(s string) (ElementKind, bool) {
	for k, name := range elementKindNames {
		if name == s {
			return ElementKind(k), true
		}
	}
	return 0, false
}

// Element is a term: a literal (Value holds the source text) or an
// identifier (Value holds the name).
type Element struct {
	Kind  ElementKind
	Value string
}

// Ident returns an identifier element.
func Ident(name string) Element { return Element{Kind: Identifier, Value: name} }

// Int returns an integer literal element.
func Int(text string) Element { return Element{Kind: IntLiteral, Value: text} }

// Real returns a real literal element.
func Real(text string) Element { return Element{Kind: RealLiteral, Value: text} }

// Str returns a string literal element.
func Str(text string) Element { return Element{Kind: StrLiteral, Value: text} }

// Bool returns True or False.
func Bool(b bool) Element {
	if b {
		return Element{Kind: TrueLiteral}
	}
	return Element{Kind: FalseLiteral}
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// Operator is a binary operator.
type Operator int

const (
	OpNone Operator = iota
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpPower
	OpEQ
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

var operatorSymbols = [...]string{
	OpNone:  "",
	OpPlus:  "+",
	OpMinus: "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpMod:   "%",
	OpPower: "**",
	OpEQ:    "==",
	OpNE:    "!=",
	OpLT:    "<",
	OpLE:    "<=",
	OpGT:    ">",
	OpGE:    ">=",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorSymbols) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorSymbols[op]
}

// ParseOperator maps an operator symbol to an Operator. The empty string
// maps to OpNone.
func ParseOperator(s string) (Operator, bool) {
	for op, sym := range operatorSymbols {
		if sym == s {
			return Operator(op), true
		}
	}
	return OpNone, false
}

// IsComparison reports whether op yields a boolean.
func (op Operator) IsComparison() bool {
	return op >= OpEQ && op <= OpGE
}
