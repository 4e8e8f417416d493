// Package analyze loads Go packages and finds the record types in them.
//
// It uses golang.org/x/tools/go/packages with go/types to describe every
// exported struct that carries at least one col tag. Fields are classified
// with the same rules as the runtime extractor of package mapping, and their
// conversion kinds are resolved from go/types.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: the mapped fields and diagnostics of one record type
//   - TypeStringer: renders field types relative to a generated file
package analyze
