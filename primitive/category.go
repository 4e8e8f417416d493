package primitive

type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // string -> int, uint, float: textual number representation
	CategoryTextualBool                          // string -> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                             // string(RFC3339Nano and friends) -> time.Time: textual date and time representation
	CategoryDuration                             // string(2h45m) -> time.Duration: textual duration representation

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected, only text fields are mapped
)

var categories map[KindEnum]CategoryEnum

func init() {
	categories = map[KindEnum]CategoryEnum{}

	for kind := KindEnum(1); int(kind) < KindTotal; kind++ {
		if kind.IsNumber() {
			categories[kind] = CategoryTextNumber
		}
	}

	categories[KindBool] = CategoryTextualBool
	categories[KindTime] = CategoryDatetime
	categories[KindDuration] = CategoryDuration
}

// CategoryOf returns the category a builtin kind belongs to. Text and custom
// kinds belong to no category and are never filtered out.
func CategoryOf(kind KindEnum) CategoryEnum {
	return categories[kind]
}

// Allows reports whether kind may be converted under the allowed categories.
func (allowed CategoryEnum) Allows(kind KindEnum) bool {
	category := CategoryOf(kind)
	if category == CategoryNone {
		return true
	}

	return allowed&category != 0
}
