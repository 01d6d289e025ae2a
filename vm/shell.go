package vm

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Shell: line-oriented command interface to a Debugger
// ---------------------------------------------------------------------------

// DefaultPrompt is shown before each debugger command.
const DefaultPrompt = "Enter a command, type h for help. Type r to run. > "

const helpText = `Available commands:
r -> Run the program / continue from a breakpoint
s -> Step to next stmt by executing current stmt
b n -> Breakpoint at line n
rb n -> Remove breakpoint at line n
lb -> List all breakpoints
cb -> Clear all breakpoints
p varname -> Print variable
sm -> Show memory contents
ss -> Show state of debugger
w -> What line are we on?
q -> Quit the debugger
`

// Shell reads debugger commands, one per line, and writes their results.
type Shell struct {
	dbg *Debugger
	in  LineReader
	out io.Writer

	// Prompt is shown before each command. Empty means DefaultPrompt.
	Prompt string
	// ErrorStyle decorates program error messages, e.g. with color.
	ErrorStyle func(string) string
}

// NewShell creates a shell over dbg.
func NewShell(dbg *Debugger, in LineReader, out io.Writer) *Shell {
	return &Shell{dbg: dbg, in: in, out: out}
}

// Run processes commands until q or end of input. The program graph is
// restored before Run returns.
func (sh *Shell) Run() error {
	defer sh.dbg.Close()

	prompt := sh.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	for {
		fmt.Fprintln(sh.out)
		line, err := sh.in.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: read command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" {
			return nil
		}
		sh.exec(fields[0], fields[1:])
	}
}

func (sh *Shell) exec(cmd string, args []string) {
	switch cmd {
	case "h":
		io.WriteString(sh.out, helpText)
	case "r":
		sh.report(sh.dbg.Run())
	case "s":
		sh.report(sh.dbg.Step())
	case "b":
		sh.setBreakpoint(args)
	case "rb":
		sh.removeBreakpoint(args)
	case "lb":
		sh.listBreakpoints()
	case "cb":
		sh.dbg.ClearBreakpoints()
		fmt.Fprintln(sh.out, "breakpoints cleared")
	case "p":
		sh.printVariable(args)
	case "sm":
		sh.dbg.Memory().Print(sh.out)
	case "ss":
		fmt.Fprintln(sh.out, sh.dbg.State())
	case "w":
		if line, ok := sh.dbg.Where(); ok {
			fmt.Fprintf(sh.out, "line %d\n", line)
		} else {
			fmt.Fprintln(sh.out, "completed execution")
		}
	default:
		fmt.Fprintln(sh.out, "unknown command")
	}
}

func (sh *Shell) report(stop Stop) {
	switch stop.Reason {
	case Breakpoint:
		fmt.Fprintf(sh.out, "hit breakpoint at line %d\n", stop.Line)
	case Halted:
		msg := stop.Err.Error()
		if sh.ErrorStyle != nil {
			msg = sh.ErrorStyle(msg)
		}
		fmt.Fprintln(sh.out, msg)
	case AlreadyCompleted:
		fmt.Fprintln(sh.out, "program has completed")
	}
}

func (sh *Shell) setBreakpoint(args []string) {
	line, ok := lineArg(args)
	if !ok {
		fmt.Fprintln(sh.out, ErrNoSuchLine)
		return
	}
	if err := sh.dbg.SetBreakpoint(line); err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	fmt.Fprintln(sh.out, "breakpoint set")
}

func (sh *Shell) removeBreakpoint(args []string) {
	line, ok := lineArg(args)
	if !ok {
		fmt.Fprintln(sh.out, ErrNoSuchBreakpoint)
		return
	}
	if err := sh.dbg.RemoveBreakpoint(line); err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	fmt.Fprintln(sh.out, "breakpoint removed")
}

func (sh *Shell) listBreakpoints() {
	lines := sh.dbg.Breakpoints()
	if len(lines) == 0 {
		fmt.Fprintln(sh.out, "no breakpoints")
		return
	}
	var sb strings.Builder
	sb.WriteString("breakpoints on lines:")
	for _, line := range lines {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(line))
	}
	fmt.Fprintln(sh.out, sb.String())
}

func (sh *Shell) printVariable(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "no such variable")
		return
	}
	name := args[0]
	v, ok := sh.dbg.Variable(name)
	if !ok {
		fmt.Fprintln(sh.out, "no such variable")
		return
	}
	fmt.Fprintf(sh.out, "%s (%s): %s\n", name, v.Kind(), v.Inspect())
}

func lineArg(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
