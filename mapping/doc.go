// Package mapping extracts the token-to-field metadata of record types.
//
// A field takes part in mapping when it carries a col tag holding the
// zero-based position of the token it reads:
//
//	type Person struct {
//		Name     string    `col:"0"`
//		Birthday time.Time `col:"1"`
//		Number   int       `col:"2"`
//		Nickname string    // never written
//	}
//
// # Eligibility
//
// Untagged fields are ignored silently and col:"-" is an explicit skip. A
// tagged field is excluded, with a warning diagnostic, when it is unexported,
// embedded, carries a malformed or negative index, or has a type no converter
// can produce. Several fields may read the same token and positions may be
// sparse.
//
// The rules live in [Classify] so that the runtime extractor and the static
// analyzer of the code generator agree on every field.
package mapping
