package primitive

import (
	"fmt"
)

var (
	templates map[KindEnum][]string

	// resultTypes holds the Go type returned by the convert helper of each kind.
	resultTypes map[KindEnum]string
)

func init() {
	templates = map[KindEnum][]string{}
	resultTypes = map[KindEnum]string{}

	for numberKind := KindEnum(1); int(numberKind) < KindTotal; numberKind++ {
		if numberKind.IsSigned() {
			resultTypes[numberKind] = "int64"
			templates[numberKind] = []string{
				fmt.Sprintf("if {{.dstStem}}, ok := convert.Int({{.src}}, %d); ok {", numberKind.ParseBits()),
				"	{{.dst}} = {{.value}}",
				"}",
			}
		}

		if numberKind.IsUnsigned() {
			resultTypes[numberKind] = "uint64"
			templates[numberKind] = []string{
				fmt.Sprintf("if {{.dstStem}}, ok := convert.Uint({{.src}}, %d); ok {", numberKind.ParseBits()),
				"	{{.dst}} = {{.value}}",
				"}",
			}
		}

		if numberKind.IsFloat() {
			resultTypes[numberKind] = "float64"
			templates[numberKind] = []string{
				fmt.Sprintf("if {{.dstStem}}, ok := convert.Float({{.src}}, %d); ok {", numberKind.ParseBits()),
				"	{{.dst}} = {{.value}}",
				"}",
			}
		}
	}

	// CategoryTextualBool
	resultTypes[KindBool] = "bool"
	templates[KindBool] = []string{
		"if {{.dstStem}}, ok := convert.Bool({{.src}}); ok {",
		"	{{.dst}} = {{.value}}",
		"}",
	}

	// CategoryDatetime
	resultTypes[KindTime] = "time.Time"
	templates[KindTime] = []string{
		"if {{.dstStem}}, ok := convert.Time({{.src}}); ok {",
		"	{{.dst}} = {{.value}}",
		"}",
	}

	// CategoryDuration
	resultTypes[KindDuration] = "time.Duration"
	templates[KindDuration] = []string{
		"if {{.dstStem}}, ok := convert.Duration({{.src}}); ok {",
		"	{{.dst}} = {{.value}}",
		"}",
	}

	// text is assigned without conversion
	resultTypes[KindString] = "string"
	templates[KindString] = []string{"{{.dst}} = {{.value}}"}
}
