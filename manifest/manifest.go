// Package manifest handles nupy.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file.
const FileName = "nupy.toml"

// Manifest represents a nupy.toml configuration.
type Manifest struct {
	Memory   MemoryConfig   `toml:"memory"`
	Debugger DebuggerConfig `toml:"debugger"`
	Log      LogConfig      `toml:"log"`

	// Dir is the directory containing the nupy.toml file (set at load time).
	// It is empty for the defaults.
	Dir string `toml:"-"`
}

// MemoryConfig configures the variable store.
type MemoryConfig struct {
	InitialCapacity int `toml:"initial-capacity"`
}

// DebuggerConfig configures the interactive debugger.
type DebuggerConfig struct {
	Prompt      string `toml:"prompt"`
	History     string `toml:"history"`
	Breakpoints []int  `toml:"breakpoints"`
	Color       bool   `toml:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no nupy.toml exists.
func Default() *Manifest {
	return &Manifest{
		Memory: MemoryConfig{InitialCapacity: 4},
		Debugger: DebuggerConfig{
			Prompt:  "Enter a command, type h for help. Type r to run. > ",
			History: ".nupy_history",
			Color:   true,
		},
	}
}

// Load parses the nupy.toml file in dir. Keys missing from the file keep
// their defaults; unknown keys are an error.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if m.Memory.InitialCapacity <= 0 {
		return nil, fmt.Errorf("%s: memory.initial-capacity must be positive", path)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find a nupy.toml file, then loads
// and returns it. The defaults are returned if no file is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}

// HistoryPath returns the debugger history file, resolved against the
// manifest directory. It is empty when history is disabled.
func (m *Manifest) HistoryPath() string {
	return m.resolve(m.Debugger.History)
}

// LogPath returns the log file, resolved against the manifest directory.
// Empty means standard error.
func (m *Manifest) LogPath() string {
	return m.resolve(m.Log.File)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}
