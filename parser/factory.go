package parser

import (
	"fmt"
	"iter"
	"log/slog"
	"reflect"

	"record-mapper/convert"
	"record-mapper/internal/compile"
	"record-mapper/internal/log"
	"record-mapper/mapping"
)

// Parser converts one token record into a T. It never fails: fields whose
// token is missing or not convertible keep their zero value.
type Parser[T any] func(tokens []string) T

// All maps a stream of records lazily.
func (p Parser[T]) All(records iter.Seq[[]string]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for tokens := range records {
			if !yield(p(tokens)) {
				return
			}
		}
	}
}

// Strategy selects how parsers are compiled.
type Strategy = compile.Strategy

const (
	// StrategyCompiled binds every field once to a typed setter.
	StrategyCompiled = compile.StrategyCompiled
	// StrategyInterpreted walks the fields with reflection on every call.
	StrategyInterpreted = compile.StrategyInterpreted
)

// Observer is told about every compilation once it finished.
type Observer func(t reflect.Type, err error)

// Factory compiles and caches parsers. A Factory is safe for concurrent use.
type Factory struct {
	cache    cache
	registry *convert.Registry
	strategy Strategy
	logger   *slog.Logger
	observer Observer
}

type config struct {
	registry *convert.Registry
	strategy Strategy
	logger   *slog.Logger
	observer Observer
}

// Option configures a Factory.
type Option func(config) config

// WithRegistry sets the conversion registry. It defaults to
// [convert.DefaultRegistry].
func WithRegistry(reg *convert.Registry) Option {
	return func(c config) config {
		c.registry = reg
		return c
	}
}

// WithStrategy sets the compile strategy. It defaults to [StrategyCompiled].
func WithStrategy(s Strategy) Option {
	return func(c config) config {
		c.strategy = s
		return c
	}
}

// WithLogger sets the logger. Without one the package-level logger of the
// module is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c config) config {
		c.logger = logger
		return c
	}
}

// WithObserver installs a function called after every compilation.
func WithObserver(fn Observer) Option {
	return func(c config) config {
		c.observer = fn
		return c
	}
}

// New returns a Factory with an empty cache.
func New(opts ...Option) *Factory {
	var c config
	for _, opt := range opts {
		c = opt(c)
	}

	if c.registry == nil {
		c.registry = convert.DefaultRegistry()
	}

	return &Factory{
		registry: c.registry,
		strategy: c.strategy,
		logger:   c.logger,
		observer: c.observer,
	}
}

// Default is the process-wide factory.
var Default = New()

// Registry returns the conversion registry of f.
func (f *Factory) Registry() *convert.Registry {
	return f.registry
}

// Len returns the number of types with a cache entry, failed ones included.
func (f *Factory) Len() int {
	return f.cache.len()
}

func (f *Factory) log() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}

	return log.Slog()
}

// Get returns the parser of T, compiling it on first request. T must be a
// struct or a pointer to a struct; other types fail with
// [mapping.ErrTypeNotConstructible], and keep failing.
func Get[T any](f *Factory) (Parser[T], error) {
	t := reflect.TypeFor[T]()

	p, err := f.cache.getOrCompile(t, func() (any, error) {
		built, err := build[T](f, t)
		return built, err
	})
	if err != nil {
		return nil, err
	}

	return p.(Parser[T]), nil
}

// For returns the parser of T from [Default].
func For[T any]() (Parser[T], error) {
	return Get[T](Default)
}

// MustFor is like [For] but panics when T cannot be parsed into.
func MustFor[T any]() Parser[T] {
	p, err := For[T]()
	if err != nil {
		panic(err)
	}

	return p
}

// Parse converts tokens with the parser of T from [Default].
func Parse[T any](tokens []string) (T, error) {
	p, err := For[T]()
	if err != nil {
		var zero T
		return zero, err
	}

	return p(tokens), nil
}

// Register installs a pre-built parser for T, as emitted by the code
// generator. It reports false, leaving the cache unchanged, when T already
// has a parser.
func Register[T any](f *Factory, p Parser[T]) bool {
	if p == nil {
		return false
	}

	t := reflect.TypeFor[T]()
	ok := f.cache.insert(t, p)

	f.log().Debug("parser registered",
		slog.String("type", t.String()),
		slog.Bool("inserted", ok),
	)

	return ok
}

// Describe extracts the mapping of T with the registry of f.
func Describe[T any](f *Factory) (*mapping.TypeMapping, error) {
	return mapping.Extract(reflect.TypeFor[T](), f.registry)
}

func build[T any](f *Factory, t reflect.Type) (p Parser[T], err error) {
	logger := f.log().With(slog.String("type", t.String()))

	if f.observer != nil {
		defer func() { f.observer(t, err) }()
	}

	m, err := mapping.Extract(t, f.registry)
	if err != nil {
		logger.Warn("cannot map type", slog.Any("error", err))
		return nil, err
	}

	for _, d := range m.Diagnostics().All() {
		logger.Debug("field excluded",
			slog.String("field", d.Field),
			slog.String("code", d.Code),
			slog.String("reason", d.Message),
		)
	}

	fn, err := compile.Compile[T](m, f.registry, f.strategy)
	if err != nil {
		logger.Warn("cannot compile parser", slog.Any("error", err))
		return nil, fmt.Errorf("compile %s: %w", t, err)
	}

	logger.Debug("parser compiled",
		slog.String("strategy", f.strategy.String()),
		slog.Int("fields", m.Len()),
		slog.Int("max_index", m.MaxIndex()),
	)

	return Parser[T](fn), nil
}
