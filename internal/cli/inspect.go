package cli

import (
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"record-mapper/internal/analyze"
)

// Inspect prints the record types of packages with their mapped fields and
// diagnostics.
type Inspect struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format." short:"f"`

	Patterns []string `arg:"" help:"Package patterns, such as ./examples/basic." name:"pattern"`
}

// Run executes the inspect command.
func (i *Inspect) Run(cli *CLI, stdout io.Writer) error {
	graph, err := analyze.NewAnalyzer(cli.Dir).LoadPackages(i.Patterns...)
	if err != nil {
		return err
	}

	infos := []*analyze.TypeInfo{}
	for _, path := range graph.SortedPackages() {
		infos = append(infos, graph.PackageTypes(path)...)
	}

	if i.Format == "json" {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}

		_, err = stdout.Write(append(data, '\n'))

		return err
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)

	if err := enc.Encode(infos); err != nil {
		return err
	}

	return enc.Close()
}
