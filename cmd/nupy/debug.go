package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"github.com/chazu/nupy/manifest"
	"github.com/chazu/nupy/program"
	"github.com/chazu/nupy/vm"
)

// lineEditor adapts a liner session to vm.LineReader. Only shell commands
// are recorded in the history.
type lineEditor struct {
	st      *liner.State
	history bool
}

func (e *lineEditor) ReadLine(prompt string) (string, error) {
	line, err := e.st.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if e.history && strings.TrimSpace(line) != "" {
		e.st.AppendHistory(line)
	}
	return line, nil
}

// runDebugger opens the debugger shell on g. Breakpoints from the
// configuration are set before the first command.
func runDebugger(g *program.Graph, mem *vm.Memory, m *manifest.Manifest) error {
	log := commonlog.GetLogger("nupy")

	var commands, input vm.LineReader
	if liner.TerminalSupported() {
		st := liner.NewLiner()
		defer st.Close()
		st.SetCtrlCAborts(true)

		if hist := m.HistoryPath(); hist != "" {
			if f, err := os.Open(hist); err == nil {
				st.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(hist); err == nil {
					st.WriteHistory(f)
					f.Close()
				}
			}()
		}
		commands = &lineEditor{st: st, history: true}
		input = &lineEditor{st: st}
	} else {
		console := vm.NewConsoleReader(os.Stdin, os.Stdout)
		commands, input = console, console
	}

	interp := vm.NewInterpreter(g, mem, input, os.Stdout)
	dbg := vm.NewDebugger(interp)
	fmt.Fprintln(os.Stderr, banner(dbg))
	for _, line := range m.Debugger.Breakpoints {
		if err := dbg.SetBreakpoint(line); err != nil {
			log.Warningf("breakpoint at line %d from configuration: %s", line, err)
		}
	}

	sh := vm.NewShell(dbg, commands, os.Stdout)
	sh.Prompt = m.Debugger.Prompt
	sh.ErrorStyle = func(s string) string { return color.RedString("%s", s) }
	return sh.Run()
}

// banner is written to standard error when the debugger starts. The session
// id matches the one in log records.
func banner(dbg *vm.Debugger) string {
	return fmt.Sprintf("nupy debugger (session %s)", dbg.Session())
}
