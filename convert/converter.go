package convert

import (
	"reflect"
	"unsafe"

	"record-mapper/primitive"
)

// Setter converts token and, on success, stores the result at a fixed offset
// from base. A failed conversion leaves the destination untouched.
type Setter func(base unsafe.Pointer, token string)

// Converter is one registry entry: the try-convert operation of a kind.
type Converter struct {
	kind  primitive.KindEnum
	name  string
	typ   reflect.Type
	parse func(token string) (any, bool)
	bind  func(offset uintptr) Setter
}

// newConverter builds a converter whose values are stored with a typed write,
// so no reflection happens when a bound Setter runs.
func newConverter[V any](kind primitive.KindEnum, name string, parse func(string) (V, bool)) *Converter {
	return &Converter{
		kind: kind,
		name: name,
		typ:  reflect.TypeFor[V](),
		parse: func(token string) (any, bool) {
			return parse(token)
		},
		bind: func(offset uintptr) Setter {
			return func(base unsafe.Pointer, token string) {
				if v, ok := parse(token); ok {
					*(*V)(unsafe.Add(base, offset)) = v
				}
			}
		},
	}
}

// Kind returns the kind served by c.
func (c *Converter) Kind() primitive.KindEnum { return c.kind }

// Name returns the display name of the kind.
func (c *Converter) Name() string { return c.name }

// Type returns the Go type produced by c. Fields of named types with the same
// underlying type share it.
func (c *Converter) Type() reflect.Type { return c.typ }

// TryConvert converts token. The result has the type reported by Type.
func (c *Converter) TryConvert(token string) (any, bool) {
	return c.parse(token)
}

// Bind returns a Setter writing to the field at offset within a value whose
// field at that offset has the memory layout of Type.
func (c *Converter) Bind(offset uintptr) Setter {
	return c.bind(offset)
}
