// Package gen provides deterministic Go code generation for record parsers.
//
// Generation uses text/template + go/format. For every record type of a
// package one plain function is emitted:
//
//	func ParsePerson(tokens []string) Person
//
// The function checks the record length before each field, assigns text
// tokens directly and calls the convert helpers for every other kind, so it
// behaves exactly like a runtime-compiled parser with the default registry.
// An optional init function registers the generated parsers with
// parser.Default, which then serves them instead of compiling its own.
package gen
