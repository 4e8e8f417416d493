package convert_test

import (
	"fmt"
	"net/netip"
	"reflect"
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/convert"
)

type Level int

func parseLevel(token string) Level { return Level(len(token)) }

func empty()                               { panic("not implemented") }
func wrong(string) (string, string)        { panic("not implemented") }
func tooMany(string) (string, bool, error) { panic("not implemented") }
func notText(int) (string, bool)           { panic("not implemented") }
func variadic(...string) (string, bool)    { panic("not implemented") }

func ExampleRegisterFunc() {
	reg := convert.NewRegistry()

	_, err := convert.RegisterFunc(reg, "", netip.ParseAddr)
	fmt.Println(err)

	conv, _ := reg.Resolve(reflect.TypeFor[netip.Addr]())
	fmt.Println(conv.Name(), conv.Type())

	v, ok := reg.TryConvert(conv.Kind(), "10.0.0.1")
	fmt.Println(v, ok)

	_, ok = reg.TryConvert(conv.Kind(), "10.0.0")
	fmt.Println(ok)

	_, err = convert.RegisterFunc(reg, "", strconv.Itoa)
	fmt.Println(err)

	_, err = convert.RegisterFunc(reg, "", 42)
	fmt.Println(err)

	// Output:
	// <nil>
	// netip.ParseAddr netip.Addr
	// 10.0.0.1 true
	// false
	// provided function is not a recognizable converter: func(int) string
	// provided converter is not a function: int
}

func TestRegisterFunc(t *testing.T) {
	t.Parallel()

	t.Run("single result", func(t *testing.T) {
		t.Parallel()

		reg := convert.NewRegistry()
		kind, err := convert.RegisterFunc(reg, "", parseLevel)
		require.NoError(t, err)

		conv, ok := reg.Lookup(kind)
		require.True(t, ok)
		assert.Equal(t, "convert_test.parseLevel", conv.Name())

		got, ok := reg.TryConvert(kind, "abc")
		assert.True(t, ok)
		assert.Equal(t, Level(3), got)
	})

	t.Run("bool result", func(t *testing.T) {
		t.Parallel()

		reg := convert.NewRegistry()
		kind, err := convert.RegisterFunc(reg, "color", parseColor)
		require.NoError(t, err)

		got, ok := reg.TryConvert(kind, "red")
		assert.True(t, ok)
		assert.Equal(t, Color{R: 255}, got)

		_, ok = reg.TryConvert(kind, "blue")
		assert.False(t, ok)
	})

	t.Run("bind", func(t *testing.T) {
		t.Parallel()

		type record struct {
			ID   int
			Addr netip.Addr
		}

		reg := convert.NewRegistry()
		kind, err := convert.RegisterFunc(reg, "addr", netip.ParseAddr)
		require.NoError(t, err)

		conv, _ := reg.Lookup(kind)
		field, _ := reflect.TypeFor[record]().FieldByName("Addr")
		set := conv.Bind(field.Offset)

		var rec record
		set(unsafe.Pointer(&rec), "192.168.1.1")
		assert.Equal(t, netip.MustParseAddr("192.168.1.1"), rec.Addr)

		set(unsafe.Pointer(&rec), "garbage")
		assert.Equal(t, netip.MustParseAddr("192.168.1.1"), rec.Addr)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()

		reg := convert.NewRegistry()

		for _, fn := range []any{empty, wrong, tooMany, notText, variadic} {
			_, err := convert.RegisterFunc(reg, "", fn)
			assert.ErrorIs(t, err, convert.ErrIsNotAConverter)
		}

		_, err := convert.RegisterFunc(reg, "", nil)
		assert.ErrorIs(t, err, convert.ErrConverterIsNotAFunction)

		_, err = convert.RegisterFunc(reg, "", "parse")
		assert.ErrorIs(t, err, convert.ErrConverterIsNotAFunction)
	})
}
