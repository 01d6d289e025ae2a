package program

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// File: the serialized form of a program
//
// A File lists statements as a tree; loops carry their body inline. Build
// links the tree into a Graph: each statement points at the one after it,
// the tail of a loop body points back at the loop, and a loop's after-link
// points at the statement following the loop.
// ---------------------------------------------------------------------------

// Statement kinds used in program files.
const (
	KindAssign = "assign"
	KindCall   = "call"
	KindPass   = "pass"
	KindWhile  = "while"
)

// File is a serialized program.
type File struct {
	Statements []StmtSpec `yaml:"statements" cbor:"statements"`
}

// StmtSpec describes one statement.
type StmtSpec struct {
	Line   int          `yaml:"line" cbor:"line"`
	Kind   string       `yaml:"kind" cbor:"kind"`
	Target string       `yaml:"target,omitempty" cbor:"target,omitempty"`
	Func   string       `yaml:"func,omitempty" cbor:"func,omitempty"`
	Arg    *ElementSpec `yaml:"arg,omitempty" cbor:"arg,omitempty"`
	Expr   *ExprSpec    `yaml:"expr,omitempty" cbor:"expr,omitempty"`
	Body   []StmtSpec   `yaml:"body,omitempty" cbor:"body,omitempty"`
}

// ExprSpec describes an expression. Op and RHS are empty for a single term.
type ExprSpec struct {
	LHS ElementSpec  `yaml:"lhs" cbor:"lhs"`
	Op  string       `yaml:"op,omitempty" cbor:"op,omitempty"`
	RHS *ElementSpec `yaml:"rhs,omitempty" cbor:"rhs,omitempty"`
}

// ElementSpec describes a term. Kind is one of identifier, int, real, str,
// True, False, None.
type ElementSpec struct {
	Kind  string `yaml:"kind" cbor:"kind"`
	Value string `yaml:"value,omitempty" cbor:"value,omitempty"`
}

// Build links f into a new Graph and validates the result.
func Build(f *File) (*Graph, error) {
	b := &builder{g: NewGraph()}
	entry, err := b.block(f.Statements, NoNode)
	if err != nil {
		return nil, err
	}
	b.g.Entry = entry
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	return b.g, nil
}

type builder struct {
	g *Graph
}

// block adds specs in order, links each to the next and the last to tail.
// It returns the id of the first statement, or tail for an empty block.
func (b *builder) block(specs []StmtSpec, tail NodeID) (NodeID, error) {
	ids := make([]NodeID, 0, len(specs))
	for i := range specs {
		id, err := b.stmt(&specs[i])
		if err != nil {
			return NoNode, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return tail, nil
	}
	for i, id := range ids {
		next := tail
		if i+1 < len(ids) {
			next = ids[i+1]
		}
		l := b.g.Links(id)
		l.Next = next
		b.g.SetLinks(id, l)
	}
	return ids[0], nil
}

func (b *builder) stmt(s *StmtSpec) (NodeID, error) {
	if s.Line <= 0 {
		return NoNode, fmt.Errorf("statement %q: missing line number", s.Kind)
	}

	switch s.Kind {
	case KindAssign:
		if s.Target == "" {
			return NoNode, fmt.Errorf("line %d: assignment without target", s.Line)
		}
		rhs, err := b.rhs(s)
		if err != nil {
			return NoNode, err
		}
		return b.g.Add(s.Line, &Assignment{Target: s.Target, RHS: rhs, Next: NoNode}), nil

	case KindCall:
		if s.Func == "" {
			return NoNode, fmt.Errorf("line %d: call without function name", s.Line)
		}
		call := &Call{Func: s.Func, Next: NoNode}
		if s.Arg != nil {
			arg, err := element(s.Line, s.Arg)
			if err != nil {
				return NoNode, err
			}
			call.Arg = &arg
		}
		return b.g.Add(s.Line, call), nil

	case KindPass:
		return b.g.Add(s.Line, &Pass{Next: NoNode}), nil

	case KindWhile:
		if s.Expr == nil {
			return NoNode, fmt.Errorf("line %d: while loop without condition", s.Line)
		}
		if len(s.Body) == 0 {
			return NoNode, fmt.Errorf("line %d: while loop without body", s.Line)
		}
		cond, err := expr(s.Line, s.Expr)
		if err != nil {
			return NoNode, err
		}
		loop := &While{Cond: *cond, Body: NoNode, Next: NoNode}
		id := b.g.Add(s.Line, loop)
		body, err := b.block(s.Body, id)
		if err != nil {
			return NoNode, err
		}
		loop.Body = body
		return id, nil

	default:
		return NoNode, fmt.Errorf("line %d: unknown statement kind %q", s.Line, s.Kind)
	}
}

func (b *builder) rhs(s *StmtSpec) (RHS, error) {
	switch {
	case s.Func != "" && s.Expr != nil:
		return nil, fmt.Errorf("line %d: assignment has both a function call and an expression", s.Line)
	case s.Func != "":
		if s.Arg == nil {
			return nil, fmt.Errorf("line %d: %s() requires an argument", s.Line, s.Func)
		}
		arg, err := element(s.Line, s.Arg)
		if err != nil {
			return nil, err
		}
		return &FuncCall{Func: s.Func, Arg: arg}, nil
	case s.Expr != nil:
		return expr(s.Line, s.Expr)
	default:
		return nil, fmt.Errorf("line %d: assignment without right-hand side", s.Line)
	}
}

func expr(line int, e *ExprSpec) (*Expr, error) {
	lhs, err := element(line, &e.LHS)
	if err != nil {
		return nil, err
	}
	op, ok := ParseOperator(e.Op)
	if !ok {
		return nil, fmt.Errorf("line %d: unknown operator %q", line, e.Op)
	}
	result := &Expr{LHS: lhs, Op: op}
	if op == OpNone {
		if e.RHS != nil {
			return nil, fmt.Errorf("line %d: right operand without operator", line)
		}
		return result, nil
	}
	if e.RHS == nil {
		return nil, fmt.Errorf("line %d: operator %s without right operand", line, op)
	}
	rhs, err := element(line, e.RHS)
	if err != nil {
		return nil, err
	}
	result.RHS = rhs
	return result, nil
}

func element(line int, e *ElementSpec) (Element, error) {
	kind, ok := ParseElementKind(e.Kind)
	if !ok {
		return Element{}, fmt.Errorf("line %d: unknown element kind %q", line, e.Kind)
	}
	switch kind {
	case Identifier:
		if e.Value == "" {
			return Element{}, fmt.Errorf("line %d: empty identifier", line)
		}
	case IntLiteral:
		if _, err := strconv.ParseInt(e.Value, 10, 64); err != nil {
			return Element{}, fmt.Errorf("line %d: invalid int literal %q", line, e.Value)
		}
	case RealLiteral:
		if _, err := strconv.ParseFloat(e.Value, 64); err != nil {
			return Element{}, fmt.Errorf("line %d: invalid real literal %q", line, e.Value)
		}
	}
	return Element{Kind: kind, Value: e.Value}, nil
}
