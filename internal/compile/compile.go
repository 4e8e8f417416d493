package compile

import (
	"errors"
	"fmt"
	"reflect"

	"record-mapper/convert"
	"record-mapper/mapping"
)

// ErrTypeMismatch reports a mapping or registry that does not belong to the
// compiled type.
var ErrTypeMismatch = errors.New("mapping does not describe the target type")

// Compile produces the routine of T from m, resolving converters in reg.
// T is the mapped struct type or a pointer to it; a pointer routine allocates
// a fresh value on every call.
func Compile[T any](m *mapping.TypeMapping, reg *convert.Registry, s Strategy) (func([]string) T, error) {
	target := reflect.TypeFor[T]()

	st, err := mapping.StructOf(target)
	if err != nil {
		return nil, err
	}

	if m == nil || m.Type() != st {
		return nil, fmt.Errorf("%w: %s", ErrTypeMismatch, target)
	}

	pointer := target.Kind() == reflect.Pointer

	switch s {
	case StrategyCompiled:
		return compiled[T](st, pointer, m, reg)
	case StrategyInterpreted:
		return interpreted[T](st, pointer, m, reg)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}

// converterFor returns the converter of d, checking that it writes values
// with the memory layout of the field.
func converterFor(d mapping.Descriptor, reg *convert.Registry) (*convert.Converter, error) {
	conv, ok := reg.Lookup(d.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: field %s has kind %s missing from the registry",
			ErrTypeMismatch, d.Name, d.Kind)
	}

	if d.Type != nil && (conv.Type().Kind() != d.Type.Kind() || conv.Type().Size() != d.Type.Size()) {
		return nil, fmt.Errorf("%w: field %s of type %s has no layout of %s",
			ErrTypeMismatch, d.Name, d.Type, conv.Type())
	}

	return conv, nil
}
