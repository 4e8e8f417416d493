package convert

import (
	"reflect"
	"slices"
	"sync"
	"time"

	"record-mapper/primitive"
)

// Registry maps conversion kinds to converters. The builtin kinds are
// installed by [NewRegistry]; further kinds are allocated by [Register] and
// [RegisterFunc]. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byKind  map[primitive.KindEnum]*Converter
	byType  map[reflect.Type]*Converter
	next    primitive.KindEnum
	allowed primitive.CategoryEnum
	layouts []string
}

type config struct {
	categories primitive.CategoryEnum
	layouts    []string
}

// Option configures a Registry.
type Option func(config) config

// WithCategories restricts the builtin conversions to the given categories.
// Text is always available.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(c config) config {
		c.categories = categories
		return c
	}
}

// WithTimeLayouts replaces the layouts tried by the timestamp kind.
func WithTimeLayouts(layouts ...string) Option {
	return func(c config) config {
		c.layouts = slices.Clone(layouts)
		return c
	}
}

// NewRegistry returns a registry holding every builtin kind allowed by opts.
func NewRegistry(opts ...Option) *Registry {
	c := config{
		categories: primitive.CategoryAll,
		layouts:    DefaultTimeLayouts,
	}
	for _, opt := range opts {
		c = opt(c)
	}

	r := &Registry{
		byKind:  map[primitive.KindEnum]*Converter{},
		byType:  map[reflect.Type]*Converter{},
		next:    primitive.KindEnum(primitive.KindTotal),
		allowed: c.categories,
		layouts: c.layouts,
	}

	for _, conv := range builtins(c.layouts) {
		if c.categories.Allows(conv.kind) {
			r.byKind[conv.kind] = conv
		}
	}

	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by parser.Default.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// Lookup returns the converter of kind.
func (r *Registry) Lookup(kind primitive.KindEnum) (*Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.byKind[kind]
	return conv, ok
}

// TryConvert converts token with the converter of kind. It reports false
// when the kind is unknown or the token is not convertible.
func (r *Registry) TryConvert(kind primitive.KindEnum, token string) (any, bool) {
	conv, ok := r.Lookup(kind)
	if !ok {
		return nil, false
	}

	return conv.TryConvert(token)
}

// Resolve picks the converter for a field of type t. A converter registered
// for exactly t wins; otherwise the builtin of t's underlying kind is used.
func (r *Registry) Resolve(t reflect.Type) (*Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if conv, ok := r.byType[t]; ok {
		return conv, true
	}

	conv, ok := r.byKind[primitive.FromReflectType(t)]
	if !ok {
		return nil, false
	}

	// The builtin must share the memory layout of t.
	if conv.typ.Kind() != t.Kind() || conv.typ.Size() != t.Size() {
		return nil, false
	}

	return conv, true
}

// Kinds lists the registered kinds in ascending order.
func (r *Registry) Kinds() []primitive.KindEnum {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]primitive.KindEnum, 0, len(r.byKind))
	for kind := range r.byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	return kinds
}

// TimeLayouts returns the layouts tried by the timestamp kind.
func (r *Registry) TimeLayouts() []string {
	return slices.Clone(r.layouts)
}

// Register allocates a new kind converting tokens into V with parse. Fields
// of exactly type V resolve to it from now on.
func Register[V any](r *Registry, name string, parse func(string) (V, bool)) primitive.KindEnum {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := r.next
	r.next++

	conv := newConverter(kind, name, parse)
	r.byKind[kind] = conv
	r.byType[conv.typ] = conv

	return kind
}

func (r *Registry) add(name string, typ reflect.Type, parse func(string) (any, bool)) primitive.KindEnum {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := r.next
	r.next++

	conv := &Converter{
		kind:  kind,
		name:  name,
		typ:   typ,
		parse: parse,
		bind: func(offset uintptr) Setter {
			return reflectSetter(typ, offset, parse)
		},
	}
	r.byKind[kind] = conv
	r.byType[typ] = conv

	return kind
}

func builtins(layouts []string) []*Converter {
	signed := func(bits int) func(string) (int64, bool) {
		return func(s string) (int64, bool) { return Int(s, bits) }
	}
	unsigned := func(bits int) func(string) (uint64, bool) {
		return func(s string) (uint64, bool) { return Uint(s, bits) }
	}

	return []*Converter{
		newConverter(primitive.KindInt, "int", narrow[int](signed(0))),
		newConverter(primitive.KindInt8, "int8", narrow[int8](signed(8))),
		newConverter(primitive.KindInt16, "int16", narrow[int16](signed(16))),
		newConverter(primitive.KindInt32, "int32", narrow[int32](signed(32))),
		newConverter(primitive.KindInt64, "int64", signed(64)),
		newConverter(primitive.KindUint, "uint", narrow[uint](unsigned(0))),
		newConverter(primitive.KindUint8, "uint8", narrow[uint8](unsigned(8))),
		newConverter(primitive.KindUint16, "uint16", narrow[uint16](unsigned(16))),
		newConverter(primitive.KindUint32, "uint32", narrow[uint32](unsigned(32))),
		newConverter(primitive.KindUint64, "uint64", unsigned(64)),
		newConverter(primitive.KindFloat32, "float32", func(s string) (float32, bool) {
			v, ok := Float(s, 32)
			return float32(v), ok
		}),
		newConverter(primitive.KindFloat64, "float64", func(s string) (float64, bool) {
			return Float(s, 64)
		}),
		newConverter(primitive.KindBool, "bool", Bool),
		newConverter(primitive.KindString, "string", Text),
		newConverter(primitive.KindTime, "time", func(s string) (time.Time, bool) {
			return TimeIn(s, layouts)
		}),
		newConverter(primitive.KindDuration, "duration", Duration),
	}
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// narrow adapts a 64-bit parse whose range was already checked to a smaller
// integer type.
func narrow[N integer, W int64 | uint64](parse func(string) (W, bool)) func(string) (N, bool) {
	return func(s string) (N, bool) {
		v, ok := parse(s)
		return N(v), ok
	}
}
