package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/nupy/manifest"
	"github.com/chazu/nupy/program"
	"github.com/chazu/nupy/vm"
)

func TestCompileFileRoundTrip(t *testing.T) {
	src := filepath.Join("..", "..", "examples", "loop.yaml")
	out := filepath.Join(t.TempDir(), "loop"+program.CompiledExt)

	if err := compileFile(src, out); err != nil {
		t.Fatalf("compileFile failed: %v", err)
	}

	want, err := program.ReadFile(src)
	if err != nil {
		t.Fatalf("ReadFile(%s) failed: %v", src, err)
	}
	got, err := program.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile(%s) failed: %v", out, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compiled program mismatch (-want +got):\n%s", diff)
	}

	g, err := program.Load(out)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, g.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileFileRejectsInvalidProgram(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(src, []byte("statements:\n  - {line: 1, kind: goto}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bad"+program.CompiledExt)

	if err := compileFile(src, out); err == nil {
		t.Fatal("compileFile should fail for an unknown statement kind")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written for an invalid program: %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		logFile   string
		wantV     int
		wantFile  string
	}{
		{"no flags", -1, "", 1, "from-config.log"},
		{"verbosity flag", 3, "", 3, "from-config.log"},
		{"zero verbosity flag", 0, "", 0, "from-config.log"},
		{"log flag", -1, "flag.log", 1, "flag.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manifest.Default()
			m.Log = manifest.LogConfig{Verbosity: 1, File: "from-config.log"}

			applyOverrides(m, tt.verbosity, tt.logFile)
			if m.Log.Verbosity != tt.wantV || m.Log.File != tt.wantFile {
				t.Errorf("log config = %+v, want verbosity %d file %q", m.Log, tt.wantV, tt.wantFile)
			}
		})
	}
}

func TestBannerShowsSession(t *testing.T) {
	g, err := program.Load(filepath.Join("..", "..", "examples", "loop.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	dbg := vm.NewDebugger(vm.NewInterpreter(g, vm.NewMemory(), nil, nil))
	defer dbg.Close()

	if got := banner(dbg); !strings.Contains(got, dbg.Session().String()) {
		t.Errorf("banner() = %q, want it to contain %s", got, dbg.Session())
	}
}
