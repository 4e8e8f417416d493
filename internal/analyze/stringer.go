package analyze

import (
	"go/types"
	"maps"
	"slices"
)

// TypeStringer renders types as they are spelled in a file of package
// pkgPath and records the imports those spellings need.
type TypeStringer struct {
	pkgPath string
	imports map[string]string // path -> package name
}

// NewTypeStringer creates a new TypeStringer for a file of package pkgPath.
func NewTypeStringer(pkgPath string) *TypeStringer {
	return &TypeStringer{
		pkgPath: pkgPath,
		imports: map[string]string{},
	}
}

// TypeString returns the spelling of t, such as "time.Duration" or "Unit"
// for a type declared in the file's own package.
func (s *TypeStringer) TypeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, s.qualify)
}

// Spell is like TypeString but records no import.
func (s *TypeStringer) Spell(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, func(pkg *types.Package) string {
		if pkg.Path() == s.pkgPath {
			return ""
		}

		return pkg.Name()
	})
}

// Import records an import needed regardless of type spellings.
func (s *TypeStringer) Import(path, name string) {
	if path != s.pkgPath {
		s.imports[path] = name
	}
}

// Imports returns the recorded import paths in lexical order.
func (s *TypeStringer) Imports() []string {
	return slices.Sorted(maps.Keys(s.imports))
}

func (s *TypeStringer) qualify(pkg *types.Package) string {
	if pkg.Path() == s.pkgPath {
		return ""
	}

	s.imports[pkg.Path()] = pkg.Name()

	return pkg.Name()
}
