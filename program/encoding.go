package program

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Compiled program files use this extension and are CBOR encoded. Anything
// else is read as YAML.
const CompiledExt = ".nupyc"

// cborEncMode uses canonical options so equal programs encode identically.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("program: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalCBOR serializes a File to CBOR bytes.
func MarshalCBOR(f *File) ([]byte, error) {
	return cborEncMode.Marshal(f)
}

// UnmarshalCBOR deserializes a File from CBOR bytes.
func UnmarshalCBOR(data []byte) (*File, error) {
	var f File
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("program: unmarshal cbor: %w", err)
	}
	return &f, nil
}

// MarshalYAML serializes a File to YAML.
func MarshalYAML(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// UnmarshalYAML deserializes a File from YAML.
func UnmarshalYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("program: unmarshal yaml: %w", err)
	}
	return &f, nil
}

// ReadFile reads a program file, choosing the codec by extension.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var f *File
	if isCompiled(path) {
		f, err = UnmarshalCBOR(data)
	} else {
		f, err = UnmarshalYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes a program file, choosing the codec by extension.
func WriteFile(path string, f *File) error {
	var data []byte
	var err error
	if isCompiled(path) {
		data, err = MarshalCBOR(f)
	} else {
		data, err = MarshalYAML(f)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and builds a program file.
func Load(path string) (*Graph, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func isCompiled(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompiledExt)
}
