package primitive

import (
	"bytes"
	"text/template"
)

// Generate returns the statements assigning the token expression src to dst,
// a field of type dstType. Converted values are held in dstStem. Kinds that
// cannot be generated (custom kinds) yield nil.
func Generate(kind KindEnum, src, dst, dstType, dstStem string) []string {
	lines, ok := templates[kind]
	if !ok {
		return nil
	}

	// The text kind has no stem: the token itself is the value.
	value := dstStem
	if kind == KindString {
		value = src
	}

	if dstType != resultTypes[kind] {
		value = dstType + "(" + value + ")"
	}

	res := make([]string, len(lines))
	for i, line := range lines {
		tmpl, err := template.New("line").Parse(line)
		if err != nil {
			panic(err)
		}

		var buf bytes.Buffer
		err = tmpl.Execute(&buf, map[string]any{
			"src":     src,
			"dst":     dst,
			"dstType": dstType,
			"dstStem": dstStem,
			"value":   value,
		})
		if err != nil {
			panic(err)
		}

		res[i] = buf.String()
	}

	return res
}

// NeedsConvert reports whether the statements generated for kind call into
// the convert package.
func NeedsConvert(kind KindEnum) bool {
	_, ok := templates[kind]
	return ok && kind != KindString
}

// NeedsType reports whether the statements generated for kind spell dstType,
// which then has to be resolvable in the generated file.
func NeedsType(kind KindEnum, dstType string) bool {
	_, ok := templates[kind]
	return ok && dstType != resultTypes[kind]
}
