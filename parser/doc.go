// Package parser hands out compiled record parsers.
//
// A [Parser] converts one token record, such as a split CSV line, into a value
// of a type whose fields carry col tags:
//
//	type Person struct {
//		Name     string    `col:"0"`
//		Birthday time.Time `col:"1"`
//		Number   int       `col:"2"`
//	}
//
//	p := parser.MustFor[Person]()
//	person := p([]string{"John McClane", "1994-11-05T13:15:30", "4455"})
//
// The parser of a type is compiled on first request and cached by its
// [Factory]; every later request returns the same routine, including under
// concurrent first use. Parsers never fail on data: a missing token leaves the
// field at its zero value, and so does a token that does not convert.
//
// Parsers produced by the code generator install themselves with [Register]
// and are then served in place of compiled ones.
package parser
