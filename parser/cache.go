package parser

import (
	"errors"
	"reflect"
	"sync"
)

var errCompilePanicked = errors.New("compile panicked")

// entry holds the outcome of compiling one type. once guards parser and err.
type entry struct {
	once   sync.Once
	parser any
	err    error
}

// cache maps a type to its compiled parser. Entries are inserted once and
// never evicted.
type cache struct {
	entries sync.Map // reflect.Type -> *entry
}

// getOrCompile returns the parser of t, running compile at most once per type
// no matter how many callers race on the first request. Failures are cached.
func (c *cache) getOrCompile(t reflect.Type, compile func() (any, error)) (any, error) {
	v, _ := c.entries.LoadOrStore(t, &entry{})
	e := v.(*entry)

	e.once.Do(func() {
		e.err = errCompilePanicked
		e.parser, e.err = compile()
	})

	return e.parser, e.err
}

// insert stores a pre-built parser for t unless t already has an entry.
func (c *cache) insert(t reflect.Type, parser any) bool {
	e := &entry{}
	e.once.Do(func() {
		e.parser = parser
	})

	_, loaded := c.entries.LoadOrStore(t, e)

	return !loaded
}

// len returns the number of cached types.
func (c *cache) len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}
