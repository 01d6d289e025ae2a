package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[memory]
initial-capacity = 16

[debugger]
prompt = "(nupy) "
history = "hist/.nupy"
breakpoints = [3, 7]
color = false

[log]
verbosity = 2
file = "/var/log/nupy.log"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Memory.InitialCapacity != 16 {
		t.Errorf("initial capacity = %d, want 16", m.Memory.InitialCapacity)
	}
	if m.Debugger.Prompt != "(nupy) " {
		t.Errorf("prompt = %q, want \"(nupy) \"", m.Debugger.Prompt)
	}
	if len(m.Debugger.Breakpoints) != 2 || m.Debugger.Breakpoints[0] != 3 || m.Debugger.Breakpoints[1] != 7 {
		t.Errorf("breakpoints = %v, want [3 7]", m.Debugger.Breakpoints)
	}
	if m.Debugger.Color {
		t.Error("color = true, want false")
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("verbosity = %d, want 2", m.Log.Verbosity)
	}
	if got, want := m.HistoryPath(), filepath.Join(m.Dir, "hist", ".nupy"); got != want {
		t.Errorf("HistoryPath() = %q, want %q", got, want)
	}
	if got := m.LogPath(); got != "/var/log/nupy.log" {
		t.Errorf("LogPath() = %q, want /var/log/nupy.log", got)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[log]
verbosity = 1
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if m.Memory.InitialCapacity != def.Memory.InitialCapacity {
		t.Errorf("initial capacity = %d, want %d", m.Memory.InitialCapacity, def.Memory.InitialCapacity)
	}
	if m.Debugger.Prompt != def.Debugger.Prompt {
		t.Errorf("prompt = %q, want %q", m.Debugger.Prompt, def.Debugger.Prompt)
	}
	if !m.Debugger.Color {
		t.Error("color = false, want true")
	}
	if m.Log.Verbosity != 1 {
		t.Errorf("verbosity = %d, want 1", m.Log.Verbosity)
	}
	if m.LogPath() != "" {
		t.Errorf("LogPath() = %q, want empty", m.LogPath())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[memory]\nsize = 3\n", "unknown keys"},
		{"unknown table", "[project]\nname = \"x\"\n", "unknown keys"},
		{"bad capacity", "[memory]\ninitial-capacity = 0\n", "must be positive"},
		{"syntax", "[memory\n", "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	// Create nested directory structure
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "[memory]\ninitial-capacity = 32\n")

	// Should find manifest when starting from a deep subdirectory
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m.Memory.InitialCapacity != 32 {
		t.Errorf("initial capacity = %d, want 32", m.Memory.InitialCapacity)
	}
	abs, _ := filepath.Abs(dir)
	if m.Dir != abs {
		t.Errorf("Dir = %q, want %q", m.Dir, abs)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m.Dir != "" {
		t.Errorf("Dir = %q, want empty for defaults", m.Dir)
	}
	if m.HistoryPath() != ".nupy_history" {
		t.Errorf("HistoryPath() = %q, want .nupy_history", m.HistoryPath())
	}
}
