package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the generated file name used when a target sets none.
const DefaultOutput = "parsers_gen.go"

// Version is the only manifest version understood.
const Version = "1"

var (
	ErrUnsupportedVersion = errors.New("unsupported manifest version")
	ErrInvalidTarget      = errors.New("invalid target")
)

// Format is the encoding of a manifest.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file name.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// Manifest lists the generation targets.
type Manifest struct {
	Version string   `json:"version" yaml:"version"`
	Targets []Target `json:"targets" yaml:"targets"`
}

// Target is one package to generate parsers for.
type Target struct {
	// Package is a package pattern, such as "./examples/basic".
	Package string `json:"package" yaml:"package"`
	// Types restricts generation to the named record types.
	Types []string `json:"types,omitempty" yaml:"types,omitempty"`
	// Output is the generated file name.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	// Register emits init registration with parser.Default.
	Register *bool `json:"register,omitempty" yaml:"register,omitempty"`
}

// ShouldRegister reports whether the generated file registers its parsers.
func (t Target) ShouldRegister() bool {
	return t.Register == nil || *t.Register
}

// LoadFile loads and parses a manifest from the given path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse parses manifest data, applies defaults and validates the result.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}

	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		// An empty document decodes to nothing and is caught by Validate.
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	}

	applyDefaults(&m)

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = Version
	}

	for i := range m.Targets {
		if m.Targets[i].Output == "" {
			m.Targets[i].Output = DefaultOutput
		}
	}
}

// Validate checks the version and every target.
func (m *Manifest) Validate() error {
	if m.Version != Version {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, m.Version)
	}

	if len(m.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrInvalidTarget)
	}

	var errs []error

	for i, t := range m.Targets {
		if strings.TrimSpace(t.Package) == "" {
			errs = append(errs, fmt.Errorf("%w: targets[%d]: package is required", ErrInvalidTarget, i))
		}

		if filepath.Base(t.Output) != t.Output || strings.ContainsAny(t.Output, `/\`) {
			errs = append(errs, fmt.Errorf("%w: targets[%d]: output %q must be a file name", ErrInvalidTarget, i, t.Output))
		} else if filepath.Ext(t.Output) != ".go" || strings.HasSuffix(t.Output, "_test.go") {
			errs = append(errs, fmt.Errorf("%w: targets[%d]: output %q must be a non-test .go file", ErrInvalidTarget, i, t.Output))
		}

		for _, name := range t.Types {
			if name == "" {
				errs = append(errs, fmt.Errorf("%w: targets[%d]: empty type name", ErrInvalidTarget, i))
			}
		}
	}

	return errors.Join(errs...)
}
