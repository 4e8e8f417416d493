package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"text/template"

	"record-mapper/internal/analyze"
	"record-mapper/internal/common"
	"record-mapper/primitive"
)

// DefaultFilename is the name of the generated file of a package.
const DefaultFilename = "parsers_gen.go"

const (
	convertPkg = "record-mapper/convert"
	parserPkg  = "record-mapper/parser"
)

var ErrNoTypes = errors.New("no record types to generate")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is where the sidecar of unformattable output is written.
	// Empty disables the sidecar.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// Register emits an init function registering every parser with
	// parser.Default.
	Register bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename: DefaultFilename,
		Register: true,
	}
}

// Generator generates Go code from analyzed record types.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "parsers_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Skipped lists the mapped fields that could not be generated.
	Skipped []string
}

type fileData struct {
	PackageName string
	Imports     []string
	Register    bool
	Types       []typeData
}

type typeData struct {
	Name         string
	FunctionName string
	Fields       []fieldData
}

type fieldData struct {
	Index int
	Lines []string
}

// FunctionName returns the name of the generated parser of a type.
func FunctionName(typeName string) string {
	return "Parse" + typeName
}

// Generate renders the parsers of types, all declared in pkg, into one file of
// that package.
func (g *Generator) Generate(pkg *analyze.PackageInfo, types []*analyze.TypeInfo) (*GeneratedFile, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTypes, pkg.Path)
	}

	stringer := analyze.NewTypeStringer(pkg.Path)
	data := fileData{
		PackageName: pkg.Name,
		Register:    g.config.Register,
	}

	file := &GeneratedFile{Filename: g.config.Filename}

	for _, info := range types {
		if info.ID.PkgPath != pkg.Path {
			return nil, fmt.Errorf("type %s is not declared in %s", info.ID, pkg.Path)
		}

		td := typeData{
			Name:         info.ID.Name,
			FunctionName: FunctionName(info.ID.Name),
		}

		for _, field := range info.Mapped {
			dstType := stringer.Spell(field.GoType)
			if primitive.NeedsType(field.Kind, dstType) {
				dstType = stringer.TypeString(field.GoType)
			}

			lines := primitive.Generate(field.Kind,
				"tokens["+strconv.Itoa(field.SourceIndex)+"]",
				"out."+field.Name,
				dstType,
				"v",
			)
			if lines == nil {
				file.Skipped = append(file.Skipped, info.ID.Name+"."+field.Name)
				continue
			}

			if primitive.NeedsConvert(field.Kind) {
				stringer.Import(convertPkg, common.PkgAlias(convertPkg))
			}

			td.Fields = append(td.Fields, fieldData{Index: field.SourceIndex, Lines: lines})
		}

		data.Types = append(data.Types, td)
	}

	if data.Register {
		stringer.Import(parserPkg, common.PkgAlias(parserPkg))
	}

	data.Imports = stringer.Imports()

	var buf bytes.Buffer
	if err := parserTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	_ = removeDebugUnformatted(g.config.OutputDir, file.Filename)

	return file, nil
}

var parserTemplate = template.Must(template.New("parsers").Parse(`// Code generated by record-mapper. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{- if .Register}}
func init() {
{{range .Types}}	parser.Register[{{.Name}}](parser.Default, {{.FunctionName}})
{{end}}}
{{end}}
{{- range .Types}}
// {{.FunctionName}} converts one token record into a {{.Name}}.
func {{.FunctionName}}(tokens []string) {{.Name}} {
	var out {{.Name}}
{{range .Fields}}
	if len(tokens) > {{.Index}} {
{{range .Lines}}		{{.}}
{{end}}	}
{{end}}
	return out
}
{{end}}`))
