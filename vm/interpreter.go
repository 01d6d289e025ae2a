package vm

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/chazu/nupy/program"
)

// ---------------------------------------------------------------------------
// Interpreter: statement execution
// ---------------------------------------------------------------------------

// LineReader reads one line of console input, showing prompt first. It
// returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Outcome reports which successor link a statement followed and the node it
// currently points at. Next is program.NoNode at the end of the program or
// when the link is severed.
type Outcome struct {
	Branch program.Branch
	Next   program.NodeID
}

// Interpreter executes statements of a program graph against a Memory.
// It knows nothing about the debugger: bounding execution is done by
// severing links in the graph.
type Interpreter struct {
	Graph  *program.Graph
	Memory *Memory

	in  LineReader
	out io.Writer
	log commonlog.Logger
}

// NewInterpreter creates an interpreter that reads input() lines from in and
// writes print output to out.
func NewInterpreter(g *program.Graph, mem *Memory, in LineReader, out io.Writer) *Interpreter {
	return &Interpreter{
		Graph:  g,
		Memory: mem,
		in:     in,
		out:    out,
		log:    commonlog.GetLogger("nupy.vm"),
	}
}

// Run executes from entry until a statement fails or no successor is
// linked.
func (interp *Interpreter) Run(entry program.NodeID) error {
	id := entry
	for id != program.NoNode {
		out, err := interp.ExecuteOne(id)
		if err != nil {
			return err
		}
		id = out.Next
	}
	return nil
}

// ExecuteOne executes a single statement and reports the link to follow.
func (interp *Interpreter) ExecuteOne(id program.NodeID) (Outcome, error) {
	node := interp.Graph.Node(id)

	switch s := node.Stmt.(type) {
	case *program.Assignment:
		if err := interp.assign(s, node.Line); err != nil {
			return Outcome{}, err
		}
		return Outcome{Branch: program.BranchNext, Next: s.Next}, nil

	case *program.Call:
		if err := interp.call(s, node.Line); err != nil {
			return Outcome{}, err
		}
		return Outcome{Branch: program.BranchNext, Next: s.Next}, nil

	case *program.Pass:
		return Outcome{Branch: program.BranchNext, Next: s.Next}, nil

	case *program.While:
		cond, err := EvalExpr(&s.Cond, interp.Memory, node.Line)
		if err != nil {
			return Outcome{}, err
		}
		if cond.kind != KindBool {
			return Outcome{}, semanticf(node.Line, "while condition must be a boolean")
		}
		if cond.Bool() {
			return Outcome{Branch: program.BranchBody, Next: s.Body}, nil
		}
		return Outcome{Branch: program.BranchNext, Next: s.Next}, nil

	default:
		panic(fmt.Sprintf("vm: unexpected statement type %T", s))
	}
}

func (interp *Interpreter) assign(s *program.Assignment, line int) error {
	var v Value
	var err error

	switch rhs := s.RHS.(type) {
	case *program.Expr:
		v, err = EvalExpr(rhs, interp.Memory, line)
	case *program.FuncCall:
		fn, ok := builtins[rhs.Func]
		if !ok {
			return semanticf(line, "unknown function '%s'", rhs.Func)
		}
		v, err = fn(interp, rhs.Arg, line)
	default:
		panic(fmt.Sprintf("vm: unexpected right-hand side %T", rhs))
	}
	if err != nil {
		return err
	}

	interp.Memory.Write(s.Target, v)
	interp.log.Debugf("line %d: %s = %s", line, s.Target, v)
	return nil
}

// call executes print. Literals and variables are written in their display
// form followed by a newline.
func (interp *Interpreter) call(s *program.Call, line int) error {
	if s.Func != "print" {
		return semanticf(line, "unknown function '%s'", s.Func)
	}
	if s.Arg == nil {
		fmt.Fprintln(interp.out)
		return nil
	}

	v, err := EvalElement(*s.Arg, interp.Memory, line)
	if err != nil {
		return err
	}
	fmt.Fprintln(interp.out, v.Display())
	return nil
}
