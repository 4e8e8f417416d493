package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"

	"record-mapper/diagnostic"
	"record-mapper/mapping"
	"record-mapper/primitive"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer resolving patterns relative to dir, or
// to the working directory when dir is empty.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		dir:   dir,
	}
}

// LoadPackages loads the specified packages and adds their record types to
// the type graph. Patterns are standard Go package patterns (e.g.,
// "./examples/basic", "record-mapper/examples/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// processPackage extracts the record types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported type names
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok || !hasColumnTag(st) {
			continue
		}

		// Generic types cannot be instantiated by generated code.
		if named, ok := typeName.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		info := analyzeStruct(pkg, name, st)
		info.ID = typeID
		info.GoType = typeName.Type()

		a.graph.Types[typeID] = info
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

func hasColumnTag(st *types.Struct) bool {
	for i := range st.NumFields() {
		if _, ok := mapping.LookupTag(reflect.StructTag(st.Tag(i))); ok {
			return true
		}
	}

	return false
}

// analyzeStruct classifies the fields of st the way mapping.Extract does.
func analyzeStruct(pkg *packages.Package, name string, st *types.Struct) *TypeInfo {
	info := &TypeInfo{}

	vars := make([]*types.Var, st.NumFields())
	for i := range vars {
		vars[i] = st.Field(i)
	}

	var offsets []int64
	if pkg.TypesSizes != nil {
		offsets = pkg.TypesSizes.Offsetsof(vars)
	}

	qualifier := func(p *types.Package) string { return p.Name() }
	typeName := pkg.Name + "." + name

	for i, field := range vars {
		index, ok := mapping.Classify(typeName, mapping.Candidate{
			Name:     field.Name(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Exported: field.Exported(),
			Embedded: field.Embedded(),
		}, &info.Diagnostics)
		if !ok {
			continue
		}

		fieldType := types.TypeString(field.Type(), qualifier)

		kind := primitive.FromTypesType(field.Type())
		if !kind.IsBuiltin() {
			mapping.ReportUnsupported(typeName, field.Name(), fieldType, &info.Diagnostics)
			continue
		}

		descriptor := mapping.Descriptor{
			Name:        field.Name(),
			Kind:        kind,
			SourceIndex: index,
			FieldIndex:  i,
			TypeName:    fieldType,
		}

		if i < len(offsets) {
			descriptor.Offset = uintptr(offsets[i])
		}

		info.Mapped = append(info.Mapped, MappedField{
			Descriptor: descriptor,
			GoType:     field.Type(),
		})
	}

	return info
}

// Diagnostics merges the diagnostics of every record type in the graph.
func (g *TypeGraph) Diagnostics() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics
	for _, path := range g.SortedPackages() {
		for _, info := range g.PackageTypes(path) {
			diags.Merge(info.Diagnostics)
		}
	}

	return diags
}
