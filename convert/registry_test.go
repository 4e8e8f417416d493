package convert_test

import (
	"reflect"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/convert"
	"record-mapper/primitive"
)

type (
	Unit    string
	Celsius float32
	Color   struct{ R, G, B uint8 }
)

func parseColor(token string) (Color, bool) {
	switch strings.ToLower(token) {
	default:
		return Color{}, false
	case "red":
		return Color{R: 255}, true
	case "green":
		return Color{G: 255}, true
	}
}

func TestRegistry_TryConvert(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()

	tests := []struct {
		name  string
		kind  primitive.KindEnum
		token string
		want  any
		ok    bool
	}{
		{"text", primitive.KindString, "", "", true},
		{"int", primitive.KindInt, "4455", 4455, true},
		{"int bad", primitive.KindInt, "abc", nil, false},
		{"int8 overflow", primitive.KindInt8, "300", nil, false},
		{"int16", primitive.KindInt16, "-300", int16(-300), true},
		{"uint32", primitive.KindUint32, "42", uint32(42), true},
		{"float32", primitive.KindFloat32, "1.5", float32(1.5), true},
		{"bool", primitive.KindBool, "yes", true, true},
		{"time", primitive.KindTime, "1994-11-05", time.Date(1994, 11, 5, 0, 0, 0, 0, time.UTC), true},
		{"duration", primitive.KindDuration, "90s", 90 * time.Second, true},
		{"unknown", primitive.KindEnum(1000), "x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := reg.TryConvert(tt.kind, tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()

	conv, ok := reg.Resolve(reflect.TypeFor[Unit]())
	require.True(t, ok)
	assert.Equal(t, primitive.KindString, conv.Kind())

	conv, ok = reg.Resolve(reflect.TypeFor[Celsius]())
	require.True(t, ok)
	assert.Equal(t, primitive.KindFloat32, conv.Kind())

	conv, ok = reg.Resolve(reflect.TypeFor[time.Time]())
	require.True(t, ok)
	assert.Equal(t, primitive.KindTime, conv.Kind())

	_, ok = reg.Resolve(reflect.TypeFor[Color]())
	assert.False(t, ok)

	_, ok = reg.Resolve(reflect.TypeFor[[]string]())
	assert.False(t, ok)
}

func TestRegistry_WithCategories(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry(convert.WithCategories(primitive.CategoryTextNumber))

	assert.Equal(t, []primitive.KindEnum{
		primitive.KindInt, primitive.KindInt8, primitive.KindInt16, primitive.KindInt32, primitive.KindInt64,
		primitive.KindUint, primitive.KindUint8, primitive.KindUint16, primitive.KindUint32, primitive.KindUint64,
		primitive.KindFloat32, primitive.KindFloat64,
		primitive.KindString,
	}, reg.Kinds())

	_, ok := reg.Resolve(reflect.TypeFor[bool]())
	assert.False(t, ok)

	_, ok = reg.TryConvert(primitive.KindTime, "1994-11-05")
	assert.False(t, ok)

	reg = convert.NewRegistry(convert.WithCategories(primitive.CategoryNone))
	assert.Equal(t, []primitive.KindEnum{primitive.KindString}, reg.Kinds())
}

func TestRegistry_WithTimeLayouts(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry(convert.WithTimeLayouts("02.01.2006"))

	got, ok := reg.TryConvert(primitive.KindTime, "05.11.1994")
	require.True(t, ok)
	assert.Equal(t, time.Date(1994, 11, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = reg.TryConvert(primitive.KindTime, "1994-11-05")
	assert.False(t, ok)

	assert.Equal(t, []string{"02.01.2006"}, reg.TimeLayouts())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()

	kind := convert.Register(reg, "color", parseColor)
	assert.True(t, kind.IsCustom())

	second := convert.Register(reg, "upper", func(s string) (Unit, bool) {
		return Unit(strings.ToUpper(s)), true
	})
	assert.Equal(t, kind+1, second)

	conv, ok := reg.Resolve(reflect.TypeFor[Color]())
	require.True(t, ok)
	assert.Equal(t, kind, conv.Kind())
	assert.Equal(t, "color", conv.Name())

	// exact registrations win over the underlying kind
	conv, ok = reg.Resolve(reflect.TypeFor[Unit]())
	require.True(t, ok)
	assert.Equal(t, second, conv.Kind())

	got, ok := reg.TryConvert(kind, "Red")
	require.True(t, ok)
	assert.Equal(t, Color{R: 255}, got)

	_, ok = reg.TryConvert(kind, "blue")
	assert.False(t, ok)

	// other registries are unaffected
	_, ok = convert.NewRegistry().Resolve(reflect.TypeFor[Color]())
	assert.False(t, ok)
}

func TestConverter_Bind(t *testing.T) {
	t.Parallel()

	type record struct {
		Name  string
		Count int16
		Paint Color
	}

	reg := convert.NewRegistry()
	convert.Register(reg, "color", parseColor)

	field := func(name string) uintptr {
		f, _ := reflect.TypeFor[record]().FieldByName(name)
		return f.Offset
	}

	count, _ := reg.Lookup(primitive.KindInt16)
	name, _ := reg.Lookup(primitive.KindString)
	paint, _ := reg.Resolve(reflect.TypeFor[Color]())

	var rec record
	base := unsafe.Pointer(&rec)

	count.Bind(field("Count"))(base, "12")
	name.Bind(field("Name"))(base, "John")
	paint.Bind(field("Paint"))(base, "green")
	assert.Equal(t, record{Name: "John", Count: 12, Paint: Color{G: 255}}, rec)

	count.Bind(field("Count"))(base, "abc")
	paint.Bind(field("Paint"))(base, "blue")
	assert.Equal(t, record{Name: "John", Count: 12, Paint: Color{G: 255}}, rec)
}
