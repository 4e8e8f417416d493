package parser_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/convert"
	"record-mapper/mapping"
	"record-mapper/parser"
)

type Person struct {
	Name     string    `col:"0"`
	Birthday time.Time `col:"1"`
	Number   int       `col:"2"`
	Nickname string
}

type Level int

type Event struct {
	At       time.Time     `col:"3"`
	Kind     string        `col:"0"`
	Level    Level         `col:"1"`
	Took     time.Duration `col:"2"`
	Success  bool          `col:"4"`
	Mirror   string        `col:"0"`
	Bad      string        `col:"x"`
	Internal string        `col:"-"`
}

func newFactory(opts ...parser.Option) *parser.Factory {
	return parser.New(append([]parser.Option{
		parser.WithRegistry(convert.NewRegistry()),
		parser.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)...)
}

func ExampleMustFor() {
	p := parser.MustFor[Person]()

	person := p([]string{"John McClane", "1994-11-05T13:15:30", "4455"})
	fmt.Println(person.Name, person.Birthday.Format(time.RFC3339), person.Number)

	person = p([]string{"John McClane", "1994-11-05T13:15:30", "abc"})
	fmt.Println(person.Name, person.Number)

	// Output:
	// John McClane 1994-11-05T13:15:30Z 4455
	// John McClane 0
}

func TestGet_Person(t *testing.T) {
	t.Parallel()

	for _, s := range []parser.Strategy{parser.StrategyCompiled, parser.StrategyInterpreted} {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()

			p, err := parser.Get[Person](newFactory(parser.WithStrategy(s)))
			require.NoError(t, err)

			got := p([]string{"John McClane", "1994-11-05T13:15:30", "4455"})
			assert.Equal(t, Person{
				Name:     "John McClane",
				Birthday: time.Date(1994, 11, 5, 13, 15, 30, 0, time.UTC),
				Number:   4455,
			}, got)

			got = p([]string{"John McClane", "1994-11-05T13:15:30", "abc"})
			assert.Equal(t, "John McClane", got.Name)
			assert.Equal(t, time.Date(1994, 11, 5, 13, 15, 30, 0, time.UTC), got.Birthday)
			assert.Zero(t, got.Number)

			got = p([]string{"John McClane"})
			assert.Equal(t, Person{Name: "John McClane"}, got)

			assert.Equal(t, Person{}, p(nil))
		})
	}
}

func TestGet_UntaggedFieldsNeverWritten(t *testing.T) {
	t.Parallel()

	p, err := parser.Get[*Event](newFactory())
	require.NoError(t, err)

	got := p([]string{"deploy", "3", "1m30s", "2024-02-29", "on", "ignored"})
	spew.Dump(got)

	assert.Equal(t, &Event{
		At:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Kind:    "deploy",
		Level:   3,
		Took:    90 * time.Second,
		Success: true,
		Mirror:  "deploy",
	}, got)
}

func TestGet_SameRoutine(t *testing.T) {
	t.Parallel()

	f := newFactory()

	first, err := parser.Get[Person](f)
	require.NoError(t, err)

	second, err := parser.Get[Person](f)
	require.NoError(t, err)

	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
	assert.Equal(t, 1, f.Len())

	// pointer and value targets are separate entries
	_, err = parser.Get[*Person](f)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
}

func TestGet_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()

	var compilations atomic.Int32
	f := newFactory(parser.WithObserver(func(reflect.Type, error) {
		compilations.Add(1)
	}))

	const workers = 32

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]Person, workers)
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			p, err := parser.Get[Person](f)
			if !assert.NoError(t, err) {
				return
			}

			results[i] = p([]string{"n", "", strings.Repeat("9", i%5+1)})
		}()
	}

	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, compilations.Load())
	for i, got := range results {
		assert.Equal(t, "n", got.Name)
		assert.Len(t, fmt.Sprint(got.Number), i%5+1)
	}
}

func TestGet_NotConstructible(t *testing.T) {
	t.Parallel()

	var (
		observed []error
		mu       sync.Mutex
	)

	f := newFactory(parser.WithObserver(func(_ reflect.Type, err error) {
		mu.Lock()
		defer mu.Unlock()
		observed = append(observed, err)
	}))

	_, err := parser.Get[int](f)
	require.ErrorIs(t, err, mapping.ErrTypeNotConstructible)

	_, err = parser.Get[int](f)
	require.ErrorIs(t, err, mapping.ErrTypeNotConstructible)

	_, err = parser.Get[[]Person](f)
	require.ErrorIs(t, err, mapping.ErrTypeNotConstructible)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, observed, 2)

	assert.Panics(t, func() { parser.MustFor[string]() })

	_, err = parser.Parse[map[string]int]([]string{"a"})
	assert.ErrorIs(t, err, mapping.ErrTypeNotConstructible)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	f := newFactory()

	prebuilt := parser.Parser[Person](func(tokens []string) Person {
		return Person{Name: "prebuilt"}
	})

	assert.True(t, parser.Register(f, prebuilt))
	assert.False(t, parser.Register(f, parser.Parser[Person](func([]string) Person { return Person{} })))
	assert.False(t, parser.Register[Person](f, nil))

	p, err := parser.Get[Person](f)
	require.NoError(t, err)
	assert.Equal(t, "prebuilt", p(nil).Name)

	// compiled first, registration refused
	_, err = parser.Get[*Person](f)
	require.NoError(t, err)
	assert.False(t, parser.Register(f, parser.Parser[*Person](func([]string) *Person { return nil })))
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	m, err := parser.Describe[Event](newFactory())
	require.NoError(t, err)

	names := []string{}
	for _, d := range m.Descriptors() {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"At", "Kind", "Level", "Took", "Success", "Mirror"}, names)
	assert.Equal(t, 4, m.MaxIndex())
	assert.Equal(t, 1, m.Diagnostics().Len())
}

func TestFactory_CustomKind(t *testing.T) {
	t.Parallel()

	type Money struct{ Cents int64 }
	type Invoice struct {
		ID    int   `col:"0"`
		Total Money `col:"1"`
	}

	reg := convert.NewRegistry()
	convert.Register(reg, "money", func(s string) (Money, bool) {
		whole, frac, _ := strings.Cut(s, ".")
		w, ok := convert.Int(whole, 64)
		if !ok {
			return Money{}, false
		}
		c, ok := convert.Int(frac, 64)
		if !ok {
			return Money{}, false
		}
		return Money{Cents: w*100 + c}, true
	})

	f := parser.New(parser.WithRegistry(reg), parser.WithLogger(slog.New(slog.DiscardHandler)))
	assert.Same(t, reg, f.Registry())

	p, err := parser.Get[Invoice](f)
	require.NoError(t, err)
	assert.Equal(t, Invoice{ID: 7, Total: Money{Cents: 1250}}, p([]string{"7", "12.50"}))
	assert.Equal(t, Invoice{ID: 8}, p([]string{"8", "twelve"}))
}

func TestFactory_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := parser.New(
		parser.WithRegistry(convert.NewRegistry()),
		parser.WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	_, err := parser.Get[Event](f)
	require.NoError(t, err)

	_, err = parser.Get[float64](f)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=\"field excluded\"")
	assert.Contains(t, out, "field=Bad")
	assert.Contains(t, out, "code=invalid-tag")
	assert.Contains(t, out, "msg=\"parser compiled\"")
	assert.Contains(t, out, "strategy=compiled")
	assert.Contains(t, out, "level=WARN msg=\"cannot map type\"")
}

func TestParser_All(t *testing.T) {
	t.Parallel()

	p, err := parser.Get[Person](newFactory())
	require.NoError(t, err)

	records := slices.Values([][]string{
		{"a", "", "1"},
		{"b", "", "2"},
		{"c", "", "3"},
	})

	var names []string
	for person := range p.All(records) {
		names = append(names, person.Name)
		if person.Number == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, names)
}

func BenchmarkParser(b *testing.B) {
	record := []string{"deploy", "3", "1m30s", "2024-02-29", "on"}

	for _, s := range []parser.Strategy{parser.StrategyCompiled, parser.StrategyInterpreted} {
		b.Run(s.String(), func(b *testing.B) {
			p, err := parser.Get[Event](newFactory(parser.WithStrategy(s)))
			require.NoError(b, err)

			b.ReportAllocs()

			for b.Loop() {
				_ = p(record)
			}
		})
	}
}
