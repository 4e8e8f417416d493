package mapping

import (
	"reflect"
	"slices"

	"record-mapper/diagnostic"
	"record-mapper/primitive"
)

// Descriptor associates one struct field with the token it is populated from.
type Descriptor struct {
	// Name of the struct field.
	Name string `json:"name" yaml:"name"`
	// Kind selects the conversion applied to the token.
	Kind primitive.KindEnum `json:"kind" yaml:"kind"`
	// SourceIndex is the zero-based token position, never negative.
	SourceIndex int `json:"index" yaml:"index"`
	// FieldIndex is the position of the field within its struct.
	FieldIndex int `json:"field" yaml:"field"`
	// Offset is the byte offset of the field within its struct.
	Offset uintptr `json:"offset" yaml:"offset"`
	// TypeName is the Go type expression of the field.
	TypeName string `json:"type" yaml:"type"`
	// Type of the field, unset when extracted statically.
	Type reflect.Type `json:"-" yaml:"-"`
}

// TypeMapping is the ordered, immutable set of descriptors of one type.
type TypeMapping struct {
	typ         reflect.Type
	descriptors []Descriptor
	diagnostics diagnostic.Diagnostics
}

// NewTypeMapping builds a mapping from descriptors in declaration order.
func NewTypeMapping(t reflect.Type, descriptors []Descriptor, diags diagnostic.Diagnostics) *TypeMapping {
	return &TypeMapping{
		typ:         t,
		descriptors: slices.Clone(descriptors),
		diagnostics: diags,
	}
}

// Type returns the struct type the mapping was extracted from.
func (m *TypeMapping) Type() reflect.Type {
	return m.typ
}

// Descriptors returns a copy of the descriptors in declaration order.
func (m *TypeMapping) Descriptors() []Descriptor {
	return slices.Clone(m.descriptors)
}

// Len returns the number of mapped fields.
func (m *TypeMapping) Len() int {
	return len(m.descriptors)
}

// MaxIndex returns the highest source index read, or -1 for an empty mapping.
func (m *TypeMapping) MaxIndex() int {
	maxIndex := -1
	for _, d := range m.descriptors {
		maxIndex = max(maxIndex, d.SourceIndex)
	}

	return maxIndex
}

// Diagnostics returns what was reported about excluded fields.
func (m *TypeMapping) Diagnostics() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics
	diags.Merge(m.diagnostics)

	return diags
}
