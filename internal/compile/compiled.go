package compile

import (
	"reflect"
	"unsafe"

	"record-mapper/convert"
	"record-mapper/mapping"
)

type binding struct {
	index int
	set   convert.Setter
}

func textSetter(offset uintptr) convert.Setter {
	return func(base unsafe.Pointer, token string) {
		*(*string)(unsafe.Add(base, offset)) = token
	}
}

func compiled[T any](st reflect.Type, pointer bool, m *mapping.TypeMapping, reg *convert.Registry) (func([]string) T, error) {
	descriptors := m.Descriptors()
	bindings := make([]binding, 0, len(descriptors))

	for _, d := range descriptors {
		if d.Kind.IsText() {
			bindings = append(bindings, binding{index: d.SourceIndex, set: textSetter(d.Offset)})
			continue
		}

		conv, err := converterFor(d, reg)
		if err != nil {
			return nil, err
		}

		bindings = append(bindings, binding{index: d.SourceIndex, set: conv.Bind(d.Offset)})
	}

	fill := func(base unsafe.Pointer, tokens []string) {
		for _, b := range bindings {
			if b.index < len(tokens) {
				b.set(base, tokens[b.index])
			}
		}
	}

	if pointer {
		return func(tokens []string) T {
			v := reflect.New(st)
			fill(v.UnsafePointer(), tokens)

			return v.Interface().(T)
		}, nil
	}

	return func(tokens []string) T {
		var out T
		fill(unsafe.Pointer(&out), tokens)

		return out
	}, nil
}
