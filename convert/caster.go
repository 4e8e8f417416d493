package convert

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"unsafe"

	"record-mapper/primitive"
	"record-mapper/utils"
)

var (
	ErrIsNotAConverter         = errors.New("provided function is not a recognizable converter")
	ErrConverterIsNotAFunction = errors.New("provided converter is not a function")
)

var (
	stringType = reflect.TypeOf("")
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// RegisterFunc inspects fn and registers it as the converter of its result
// type. An empty name defaults to the function name.
//
// Supports signatures:
//   - func(token string) (dst Type)
//   - func(token string) (dst Type, bool)
//   - func(token string) (dst Type, error)
func RegisterFunc(r *Registry, name string, fn any) (primitive.KindEnum, error) {
	if fn == nil {
		return 0, ErrConverterIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return 0, fmt.Errorf("%w: %s", ErrConverterIsNotAFunction, fnType)
	}

	if fnType.NumIn() != 1 || fnType.In(0) != stringType || fnType.IsVariadic() {
		return 0, fmt.Errorf("%w: %s", ErrIsNotAConverter, fnType)
	}

	var parse func(string) (any, bool)

	switch fnType.NumOut() {
	default:
		return 0, fmt.Errorf("%w: %s", ErrIsNotAConverter, fnType)

	case 1:
		parse = func(token string) (any, bool) {
			out := fnVal.Call([]reflect.Value{reflect.ValueOf(token)})
			return out[0].Interface(), true
		}

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return 0, fmt.Errorf("%w: %s", ErrIsNotAConverter, fnType)

		case last.Kind() == reflect.Bool:
			parse = func(token string) (any, bool) {
				out := fnVal.Call([]reflect.Value{reflect.ValueOf(token)})
				if !out[1].Bool() {
					return nil, false
				}
				return out[0].Interface(), true
			}

		case last == errorType:
			parse = func(token string) (any, bool) {
				out := fnVal.Call([]reflect.Value{reflect.ValueOf(token)})
				if !out[1].IsNil() {
					return nil, false
				}
				return out[0].Interface(), true
			}
		}
	}

	if name == "" {
		name = funcName(fnVal)
	}

	return r.add(name, fnType.Out(0), parse), nil
}

// funcName returns the package alias and name of a function, such as
// "netip.ParseAddr".
func funcName(fn reflect.Value) string {
	fnPC := runtime.FuncForPC(fn.Pointer())
	if fnPC == nil {
		return ""
	}

	return utils.Second(path.Split(fnPC.Name()))
}

// reflectSetter writes values produced by parse into a field of type typ.
func reflectSetter(typ reflect.Type, offset uintptr, parse func(string) (any, bool)) Setter {
	return func(base unsafe.Pointer, token string) {
		v, ok := parse(token)
		if !ok || v == nil {
			return
		}

		reflect.NewAt(typ, unsafe.Add(base, offset)).Elem().Set(reflect.ValueOf(v))
	}
}
