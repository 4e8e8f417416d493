// Package convert holds the value conversion registry: a mapping from value
// kind to a try-convert operation turning one record token into a typed value.
//
// Conversion failure is an ordinary outcome. Every converter reports it with a
// false flag and never with a panic or an error, so that one malformed token
// only leaves its own field at the zero value.
//
// The builtin helpers ([Int], [Uint], [Float], [Bool], [Time], [Duration]) are
// the single implementation of token parsing. Registries use them and so does
// the code emitted by the parser generator, which keeps runtime and generated
// parsers in agreement.
//
// New kinds are added with [Register] for a typed parse function, or with
// [RegisterFunc] for a function value inspected by reflection.
package convert
