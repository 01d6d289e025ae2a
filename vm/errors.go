package vm

import "fmt"

// ---------------------------------------------------------------------------
// Execution errors
// ---------------------------------------------------------------------------

// ErrorKind classifies an execution error.
type ErrorKind int

const (
	// SemanticError is a program-level error such as an undefined name or
	// mismatched operand types.
	SemanticError ErrorKind = iota
	// RuntimeError is an operation-level error such as division by zero.
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case SemanticError:
		return "SEMANTIC ERROR"
	case RuntimeError:
		return "RUNTIME ERROR"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is raised while executing a statement. Every Error ends the current
// run.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("**%s: %s (line %d)", e.Kind, e.Msg, e.Line)
}

func semanticf(line int, format string, args ...interface{}) error {
	return &Error{Kind: SemanticError, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func runtimef(line int, format string, args ...interface{}) error {
	return &Error{Kind: RuntimeError, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func undefined(line int, name string) error {
	return semanticf(line, "name '%s' is not defined", name)
}

func invalidOperands(line int) error {
	return semanticf(line, "invalid operand types")
}

func divisionByZero(line int) error {
	return runtimef(line, "division by zero")
}
