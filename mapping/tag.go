package mapping

import (
	"reflect"
	"strconv"
	"strings"
)

// TagKey is the struct tag holding a field's source index.
const TagKey = "col"

// skipValue excludes a tagged field without a diagnostic.
const skipValue = "-"

// Tag is the parsed value of a col tag.
type Tag struct {
	Raw   string
	Index int
	Skip  bool
}

// LookupTag returns the raw col tag of a field and whether it is present.
func LookupTag(tag reflect.StructTag) (string, bool) {
	return tag.Lookup(TagKey)
}

// ParseTag parses a raw col tag. Options after a comma are reserved and
// ignored.
func ParseTag(raw string) (Tag, error) {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)

	if value == skipValue {
		return Tag{Raw: raw, Index: -1, Skip: true}, nil
	}

	index, err := strconv.Atoi(value)
	if err != nil {
		return Tag{Raw: raw}, err
	}

	return Tag{Raw: raw, Index: index}, nil
}
