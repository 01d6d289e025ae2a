package vm

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/nupy/program"
)

// ---------------------------------------------------------------------------
// Debugger: stepwise execution with breakpoints
// ---------------------------------------------------------------------------

// Debugger drives an Interpreter one statement at a time. The statement
// about to execute is kept isolated from its successors by severing its
// links, so the interpreter runs exactly one statement per call. The
// severed links are restored before the debugger moves on, and Close
// restores whatever is still outstanding.
//
// A Debugger is not safe for concurrent use.
type Debugger struct {
	interp *Interpreter
	graph  *program.Graph
	state  State

	// breakpoints has a key for every statement line in the program; the
	// value reports whether a breakpoint is set there.
	breakpoints map[int]bool
	hitBP       bool

	current program.NodeID
	saved   program.Links
	severed bool

	session uuid.UUID
	log     commonlog.Logger
}

// State is the execution state of a Debugger.
type State int

const (
	Loaded State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// StopReason tells why Step or Run returned.
type StopReason int

const (
	// Stepped means one statement executed and the next one is pending.
	Stepped StopReason = iota
	// Breakpoint means execution stopped before a statement with a breakpoint.
	Breakpoint
	// Halted means a statement failed; Stop.Err holds the error.
	Halted
	// Finished means the last statement executed.
	Finished
	// AlreadyCompleted means nothing was run because execution had ended.
	AlreadyCompleted
)

// Stop describes where execution paused.
type Stop struct {
	Reason StopReason
	Line   int   // line of the pending statement, or of the failed one
	Err    error // set when Reason is Halted
}

// Errors reported by breakpoint management.
var (
	ErrNoSuchLine       = errors.New("no such line")
	ErrBreakpointExists = errors.New("breakpoint already exists")
	ErrNoSuchBreakpoint = errors.New("no such breakpoint")
)

// ---------------------------------------------------------------------------
// Debugger creation and lifecycle
// ---------------------------------------------------------------------------

// NewDebugger creates a debugger positioned on the entry statement of the
// interpreter's graph. The entry statement is isolated immediately.
func NewDebugger(interp *Interpreter) *Debugger {
	d := &Debugger{
		interp:      interp,
		graph:       interp.Graph,
		state:       Loaded,
		breakpoints: make(map[int]bool),
		current:     interp.Graph.Entry,
		session:     uuid.New(),
		log:         commonlog.GetLogger("nupy.debugger"),
	}
	for _, line := range d.graph.Lines() {
		d.breakpoints[line] = false
	}
	d.isolate()
	d.log.Infof("session %s: loaded %d statements", d.session, d.graph.Len())
	return d
}

// Session returns the id of this debugging session.
func (d *Debugger) Session() uuid.UUID {
	return d.session
}

// Close restores the links of the pending statement, leaving the graph as
// it was before the debugger was created. It is safe to call more than once.
func (d *Debugger) Close() {
	d.rejoin()
	d.log.Infof("session %s: closed in state %s", d.session, d.state)
}

func (d *Debugger) isolate() {
	if d.current == program.NoNode || d.severed {
		return
	}
	d.saved = d.graph.Sever(d.current)
	d.severed = true
	d.log.Debugf("severed line %d", d.graph.Line(d.current))
}

func (d *Debugger) rejoin() {
	if !d.severed {
		return
	}
	d.graph.Restore(d.current, d.saved)
	d.severed = false
	d.log.Debugf("restored line %d", d.graph.Line(d.current))
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

// Step executes one statement, unless a breakpoint not yet reported sits on
// the pending statement.
func (d *Debugger) Step() Stop {
	return d.advance(true)
}

// Run executes statements until a breakpoint, an error, or the end of the
// program.
func (d *Debugger) Run() Stop {
	return d.advance(false)
}

func (d *Debugger) advance(single bool) Stop {
	if d.state == Completed {
		return Stop{Reason: AlreadyCompleted}
	}
	if d.state == Loaded {
		d.setState(Running)
	}

	for d.current != program.NoNode {
		line := d.graph.Line(d.current)

		if d.breakpoints[line] && !d.hitBP {
			d.hitBP = true
			d.log.Debugf("hit breakpoint at line %d", line)
			return Stop{Reason: Breakpoint, Line: line}
		}
		d.hitBP = false

		out, err := d.interp.ExecuteOne(d.current)
		d.rejoin()
		if err != nil {
			d.setState(Completed)
			d.log.Debugf("halted at line %d: %s", line, err)
			return Stop{Reason: Halted, Line: line, Err: err}
		}

		d.current = d.graph.Follow(d.current, out.Branch)
		d.isolate()

		if single && d.current != program.NoNode {
			return Stop{Reason: Stepped, Line: d.graph.Line(d.current)}
		}
	}

	d.setState(Completed)
	return Stop{Reason: Finished}
}

func (d *Debugger) setState(s State) {
	d.log.Debugf("state %s -> %s", d.state, s)
	d.state = s
}

// ---------------------------------------------------------------------------
// Breakpoint management
// ---------------------------------------------------------------------------

// SetBreakpoint sets a breakpoint on a statement line.
func (d *Debugger) SetBreakpoint(line int) error {
	set, ok := d.breakpoints[line]
	if !ok {
		return ErrNoSuchLine
	}
	if set {
		return ErrBreakpointExists
	}
	d.breakpoints[line] = true
	return nil
}

// RemoveBreakpoint removes the breakpoint on line.
func (d *Debugger) RemoveBreakpoint(line int) error {
	if !d.breakpoints[line] {
		return ErrNoSuchBreakpoint
	}
	d.breakpoints[line] = false
	return nil
}

// Breakpoints returns the lines with a breakpoint, in ascending order.
func (d *Debugger) Breakpoints() []int {
	var lines []int
	for line, set := range d.breakpoints {
		if set {
			lines = append(lines, line)
		}
	}
	sort.Ints(lines)
	return lines
}

// ClearBreakpoints removes every breakpoint.
func (d *Debugger) ClearBreakpoints() {
	for line := range d.breakpoints {
		d.breakpoints[line] = false
	}
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

// State returns the current execution state.
func (d *Debugger) State() State {
	return d.state
}

// Variable returns a copy of a variable's value.
func (d *Debugger) Variable(name string) (Value, bool) {
	return d.interp.Memory.Read(name)
}

// Memory returns the memory the program executes against.
func (d *Debugger) Memory() *Memory {
	return d.interp.Memory
}

// Where returns the line of the pending statement. It reports false once
// execution has completed.
func (d *Debugger) Where() (int, bool) {
	if d.state == Completed || d.current == program.NoNode {
		return 0, false
	}
	return d.graph.Line(d.current), true
}
