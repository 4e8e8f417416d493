package compile

import (
	"reflect"

	"record-mapper/convert"
	"record-mapper/mapping"
	"record-mapper/utils"
)

func interpreted[T any](st reflect.Type, pointer bool, m *mapping.TypeMapping, reg *convert.Registry) (func([]string) T, error) {
	descriptors := m.Descriptors()

	for _, d := range descriptors {
		if _, err := converterFor(d, reg); err != nil {
			return nil, err
		}
	}

	return func(tokens []string) T {
		var out T

		v := reflect.ValueOf(&out).Elem()
		if pointer {
			v.Set(reflect.New(st))
			v = v.Elem()
		}

		for _, d := range descriptors {
			if !utils.IsIndexOf(tokens, d.SourceIndex) {
				continue
			}

			token := tokens[d.SourceIndex]
			field := v.Field(d.FieldIndex)

			if d.Kind.IsText() {
				field.SetString(token)
				continue
			}

			// A nil interface result leaves the field at its zero value.
			value, ok := reg.TryConvert(d.Kind, token)
			if !ok || value == nil {
				continue
			}

			field.Set(reflect.ValueOf(value).Convert(field.Type()))
		}

		return out
	}, nil
}
