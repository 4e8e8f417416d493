package mapping

import (
	"errors"
	"fmt"
	"reflect"

	"record-mapper/convert"
	"record-mapper/diagnostic"
)

// ErrTypeNotConstructible is returned for targets that are neither a struct
// nor a pointer to a struct.
var ErrTypeNotConstructible = errors.New("type is not constructible")

// Candidate is the part of a struct field that decides its eligibility.
type Candidate struct {
	Name     string
	Tag      reflect.StructTag
	Exported bool
	Embedded bool
}

// Classify applies the eligibility rules to one field of typeName. It returns
// the source index and true for a mapped field. Excluded tagged fields are
// reported to diags; untagged and explicitly skipped fields are not.
func Classify(typeName string, c Candidate, diags *diagnostic.Diagnostics) (int, bool) {
	raw, ok := LookupTag(c.Tag)
	if !ok {
		return -1, false
	}

	tag, err := ParseTag(raw)

	switch {
	case err != nil:
		diags.AddWarning(diagnostic.CodeInvalidTag,
			fmt.Sprintf("%s tag %q is not an index", TagKey, raw), typeName, c.Name)
	case tag.Skip:
		return -1, false
	case tag.Index < 0:
		diags.AddWarning(diagnostic.CodeNegativeIndex,
			fmt.Sprintf("negative index %d", tag.Index), typeName, c.Name)
	case c.Embedded:
		diags.AddWarning(diagnostic.CodeEmbedded,
			"embedded fields are not mapped", typeName, c.Name)
	case !c.Exported:
		diags.AddWarning(diagnostic.CodeUnexported,
			"unexported fields are not mapped", typeName, c.Name)
	default:
		return tag.Index, true
	}

	return -1, false
}

// ReportUnsupported records a mapped field whose type has no converter.
func ReportUnsupported(typeName, field, fieldType string, diags *diagnostic.Diagnostics) {
	diags.AddWarning(diagnostic.CodeUnsupportedKind,
		fmt.Sprintf("no conversion into %s", fieldType), typeName, field)
}

// StructOf returns the struct type behind t, which is either a struct or a
// pointer to one.
func StructOf(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrTypeNotConstructible)
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotConstructible, t)
	}

	return st, nil
}

// Extract builds the mapping of t, resolving each field's kind with reg.
// Extraction is deterministic for the same type and registry contents.
func Extract(t reflect.Type, reg *convert.Registry) (*TypeMapping, error) {
	st, err := StructOf(t)
	if err != nil {
		return nil, err
	}

	var (
		diags       diagnostic.Diagnostics
		descriptors []Descriptor
		typeName    = st.String()
	)

	for i := range st.NumField() {
		field := st.Field(i)

		index, ok := Classify(typeName, Candidate{
			Name:     field.Name,
			Tag:      field.Tag,
			Exported: field.IsExported(),
			Embedded: field.Anonymous,
		}, &diags)
		if !ok {
			continue
		}

		conv, ok := reg.Resolve(field.Type)
		if !ok {
			ReportUnsupported(typeName, field.Name, field.Type.String(), &diags)
			continue
		}

		descriptors = append(descriptors, Descriptor{
			Name:        field.Name,
			Kind:        conv.Kind(),
			SourceIndex: index,
			FieldIndex:  i,
			Offset:      field.Offset,
			TypeName:    field.Type.String(),
			Type:        field.Type,
		})
	}

	return NewTypeMapping(st, descriptors, diags), nil
}
