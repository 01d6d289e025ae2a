// nupy CLI - runs program graph files, or steps through them in the debugger
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/nupy/manifest"
	"github.com/chazu/nupy/program"
	"github.com/chazu/nupy/vm"
)

func main() {
	debug := flag.Bool("d", false, "Start the interactive debugger")
	verbosity := flag.Int("v", -1, "Log verbosity (overrides nupy.toml)")
	logFile := flag.String("log", "", "Log file (overrides nupy.toml, default stderr)")
	configDir := flag.String("config", "", "Directory containing nupy.toml (default: search upward from the working directory)")
	compileOut := flag.String("c", "", "Write the program to this file and exit (.nupyc for compiled form)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nupy [options] program.yaml|program.nupyc\n\n")
		fmt.Fprintf(os.Stderr, "Runs a program graph file to completion.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nupy loop.yaml                  # Run the program\n")
		fmt.Fprintf(os.Stderr, "  nupy -d loop.yaml               # Debug the program\n")
		fmt.Fprintf(os.Stderr, "  nupy -c loop.nupyc loop.yaml    # Write the compiled form\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	m, err := loadManifest(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(m, *verbosity, *logFile)
	configureLogging(m)
	if !m.Debugger.Color {
		color.NoColor = true
	}

	if *compileOut != "" {
		if err := compileFile(path, *compileOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	g, err := program.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mem := vm.NewMemoryWithCapacity(m.Memory.InitialCapacity)

	if *debug {
		if err := runDebugger(g, mem, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	interp := vm.NewInterpreter(g, mem, vm.NewConsoleReader(os.Stdin, os.Stdout), os.Stdout)
	if err := interp.Run(g.Entry); err != nil {
		fmt.Println(color.RedString("%s", err))
		os.Exit(1)
	}
}

func loadManifest(dir string) (*manifest.Manifest, error) {
	if dir != "" {
		return manifest.Load(dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return manifest.Default(), nil
	}
	return manifest.FindAndLoad(wd)
}

// applyOverrides lets command-line flags win over nupy.toml. A negative
// verbosity or an empty log file leaves the configured value.
func applyOverrides(m *manifest.Manifest, verbosity int, logFile string) {
	if verbosity >= 0 {
		m.Log.Verbosity = verbosity
	}
	if logFile != "" {
		m.Log.File = logFile
	}
}

func configureLogging(m *manifest.Manifest) {
	if p := m.LogPath(); p != "" {
		commonlog.Configure(m.Log.Verbosity, &p)
		return
	}
	commonlog.Configure(m.Log.Verbosity, nil)
}

// compileFile rewrites a program file in the format named by out's
// extension. The program is built first so invalid files are rejected.
func compileFile(in, out string) error {
	f, err := program.ReadFile(in)
	if err != nil {
		return err
	}
	if _, err := program.Build(f); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return program.WriteFile(out, f)
}
