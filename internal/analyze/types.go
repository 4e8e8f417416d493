package analyze

import (
	"go/types"
	"slices"
	"strings"

	"record-mapper/diagnostic"
	"record-mapper/mapping"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string `json:"package" yaml:"package"` // e.g., "record-mapper/examples/basic"
	Name    string `json:"name"    yaml:"name"`    // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// MappedField is a field that takes part in mapping.
type MappedField struct {
	mapping.Descriptor `yaml:",inline"`

	GoType types.Type `json:"-" yaml:"-"`
}

// TypeInfo describes one record type.
type TypeInfo struct {
	ID          TypeID                 `json:"id"          yaml:"id"`
	Mapped      []MappedField          `json:"fields"      yaml:"fields"`
	Diagnostics diagnostic.Diagnostics `json:"diagnostics" yaml:"diagnostics"`
	GoType      types.Type             `json:"-"           yaml:"-"`
}

// MaxIndex returns the highest source index read, or -1 without mapped fields.
func (t *TypeInfo) MaxIndex() int {
	maxIndex := -1
	for _, f := range t.Mapped {
		maxIndex = max(maxIndex, f.SourceIndex)
	}

	return maxIndex
}

// TypeGraph holds all record types of the loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all record types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageTypes returns the record types of a package ordered by name.
func (g *TypeGraph) PackageTypes(pkgPath string) []*TypeInfo {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	infos := make([]*TypeInfo, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		if info := g.Types[id]; info != nil {
			infos = append(infos, info)
		}
	}

	slices.SortFunc(infos, func(a, b *TypeInfo) int {
		return strings.Compare(a.ID.Name, b.ID.Name)
	})

	return infos
}

// SortedPackages returns the loaded package paths in lexical order.
func (g *TypeGraph) SortedPackages() []string {
	paths := make([]string, 0, len(g.Packages))
	for path := range g.Packages {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	return paths
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Record types defined in this package
}
