package mapping_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/convert"
	"record-mapper/diagnostic"
	"record-mapper/mapping"
	"record-mapper/primitive"
)

type Person struct {
	Name     string    `col:"0"`
	Birthday time.Time `col:"1"`
	Number   int       `col:"2"`
	Nickname string
}

type Base struct {
	ID int `col:"0"`
}

type Messy struct {
	Base `col:"0"`

	Alias    string        `col:"0"`
	Ignored  string        `col:"-"`
	Bad      int           `col:"first"`
	Negative int           `col:"-3"`
	hidden   string        `col:"1"`
	Tags     []string      `col:"2"`
	Wait     time.Duration `col:"7, reserved"`
}

func TestExtract(t *testing.T) {
	t.Parallel()

	m, err := mapping.Extract(reflect.TypeFor[Person](), convert.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[Person](), m.Type())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.MaxIndex())
	assert.Zero(t, m.Diagnostics().Len())

	descriptors := m.Descriptors()
	spew.Dump(descriptors)

	require.Len(t, descriptors, 3)
	assert.Equal(t, "Name", descriptors[0].Name)
	assert.Equal(t, primitive.KindString, descriptors[0].Kind)
	assert.Equal(t, 0, descriptors[0].SourceIndex)
	assert.Equal(t, 0, descriptors[0].FieldIndex)

	assert.Equal(t, "Birthday", descriptors[1].Name)
	assert.Equal(t, primitive.KindTime, descriptors[1].Kind)
	assert.Equal(t, "time.Time", descriptors[1].TypeName)

	assert.Equal(t, "Number", descriptors[2].Name)
	assert.Equal(t, primitive.KindInt, descriptors[2].Kind)
	assert.Equal(t, 2, descriptors[2].SourceIndex)

	field, _ := reflect.TypeFor[Person]().FieldByName("Number")
	assert.Equal(t, field.Offset, descriptors[2].Offset)
}

func TestExtract_Pointer(t *testing.T) {
	t.Parallel()

	m, err := mapping.Extract(reflect.TypeFor[*Person](), convert.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Person](), m.Type())
	assert.Equal(t, 3, m.Len())
}

func TestExtract_NotConstructible(t *testing.T) {
	t.Parallel()

	for _, typ := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[[]string](),
		reflect.TypeFor[**Person](),
		reflect.TypeFor[map[string]int](),
		nil,
	} {
		_, err := mapping.Extract(typ, convert.NewRegistry())
		assert.ErrorIs(t, err, mapping.ErrTypeNotConstructible)
	}
}

func TestExtract_Exclusions(t *testing.T) {
	t.Parallel()

	m, err := mapping.Extract(reflect.TypeFor[Messy](), convert.NewRegistry())
	require.NoError(t, err)

	names := []string{}
	for _, d := range m.Descriptors() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Alias", "Wait"}, names)
	assert.Equal(t, 7, m.MaxIndex())

	diags := m.Diagnostics()

	codes := map[string]string{}
	for _, d := range diags.All() {
		codes[d.Field] = d.Code
		assert.Equal(t, "mapping_test.Messy", d.Type)
	}

	assert.Equal(t, map[string]string{
		"Base":     diagnostic.CodeEmbedded,
		"Bad":      diagnostic.CodeInvalidTag,
		"Negative": diagnostic.CodeNegativeIndex,
		"hidden":   diagnostic.CodeUnexported,
		"Tags":     diagnostic.CodeUnsupportedKind,
	}, codes)
}

func TestExtract_RegistryDependent(t *testing.T) {
	t.Parallel()

	type Reading struct {
		Sensor string    `col:"0"`
		At     time.Time `col:"1"`
		OK     bool      `col:"2"`
	}

	m, err := mapping.Extract(reflect.TypeFor[Reading](), convert.NewRegistry(convert.WithCategories(primitive.CategoryNone)))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, m.Diagnostics().Len())
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()

	first, err := mapping.Extract(reflect.TypeFor[Messy](), reg)
	require.NoError(t, err)

	second, err := mapping.Extract(reflect.TypeFor[Messy](), reg)
	require.NoError(t, err)

	assert.Equal(t, first.Descriptors(), second.Descriptors())
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
}

func TestTypeMapping_DescriptorsCopy(t *testing.T) {
	t.Parallel()

	m, err := mapping.Extract(reflect.TypeFor[Person](), convert.NewRegistry())
	require.NoError(t, err)

	descriptors := m.Descriptors()
	descriptors[0].SourceIndex = 99

	assert.Equal(t, 0, m.Descriptors()[0].SourceIndex)
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		index int
		skip  bool
		err   bool
	}{
		{"0", 0, false, false},
		{" 12 ", 12, false, false},
		{"3,reserved", 3, false, false},
		{"-", -1, true, false},
		{"-2", -2, false, false},
		{"", 0, false, true},
		{"x", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			tag, err := mapping.ParseTag(tt.raw)
			if tt.err {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.index, tag.Index)
			assert.Equal(t, tt.skip, tag.Skip)
		})
	}
}
