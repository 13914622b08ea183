package descfile

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/wasm-valueprinter/errors"
)

// File is the top-level document of a type description.
type File struct {
	// Types maps type names to their definitions.
	Types map[string]TypeSpec `yaml:"types"`
}

// TypeSpec defines one named type.
type TypeSpec struct {
	// Kind is one of struct, enum, opaque or alias.
	Kind string `yaml:"kind"`

	// Name overrides the display name. Defaults to the map key.
	Name string `yaml:"name,omitempty"`

	// Fields lists struct members in declaration order.
	Fields []FieldSpec `yaml:"fields,omitempty"`

	// Underlying is the integral type of an enum. Defaults to int.
	Underlying string `yaml:"underlying,omitempty"`

	// Enumerators lists enum constants in declaration order.
	Enumerators []EnumeratorSpec `yaml:"enumerators,omitempty"`

	// Target is the type expression an alias stands for.
	Target string `yaml:"target,omitempty"`

	// Size and Align override the computed layout of a struct, and give
	// the layout of an opaque type.
	Size  uint32 `yaml:"size,omitempty"`
	Align uint32 `yaml:"align,omitempty"`
}

type FieldSpec struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Offset *uint32 `yaml:"offset,omitempty"`
}

type EnumeratorSpec struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value,omitempty"`
}

const (
	KindStruct = "struct"
	KindEnum   = "enum"
	KindOpaque = "opaque"
	KindAlias  = "alias"
)

// Decode reads a description. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decode type description")
	}
	return &f, nil
}

// Load decodes a description and resolves every type in it.
func Load(r io.Reader) (*Registry, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return f.Resolve()
}

// Parse is Load over an in-memory document.
func Parse(data []byte) (*Registry, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile loads the description at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Path(path).
			Cause(err).
			Detail("read type description").
			Build()
	}
	reg, err := Parse(data)
	if err != nil {
		if verr, ok := err.(*errors.Error); ok && len(verr.Path) == 0 {
			verr.Path = []string{path}
		}
		return nil, err
	}
	return reg, nil
}
