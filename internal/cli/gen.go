package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"record-mapper/diagnostic"
	"record-mapper/internal/analyze"
	"record-mapper/internal/config"
	"record-mapper/internal/gen"
	"record-mapper/internal/log"
)

var (
	ErrNoTargets    = errors.New("no packages to generate for")
	ErrTypeNotFound = errors.New("record type not found")
)

// Gen generates a parser file next to the record types of every target.
type Gen struct {
	Config     string   `help:"Manifest listing the generation targets." placeholder:"FILE" short:"c" type:"existingfile"`
	Types      []string `help:"Generate only the named record types."   name:"type"         short:"t"`
	Output     string   `default:"${output}"                             help:"Name of the generated file." short:"o"`
	NoRegister bool     `help:"Do not register the parsers with parser.Default."`
	DryRun     bool     `help:"Print the generated code instead of writing it." short:"n"`

	Patterns []string `arg:"" help:"Package patterns, such as ./examples/basic." name:"pattern" optional:""`
}

// output is one file produced for one package.
type output struct {
	path string
	file *gen.GeneratedFile
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context, cli *CLI, stdout io.Writer) error {
	targets, err := g.targets()
	if err != nil {
		return err
	}

	results := make([][]output, len(targets))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, target := range targets {
		group.Go(func() error {
			outs, err := generate(gctx, cli.Dir, target)
			if err != nil {
				return fmt.Errorf("target %s: %w", target.Package, err)
			}

			results[i] = outs

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	outs := slices.Concat(results...)

	for _, out := range outs {
		if g.DryRun {
			if len(outs) > 1 {
				fmt.Fprintf(stdout, "// %s\n", out.path)
			}

			if _, err := stdout.Write(out.file.Content); err != nil {
				return err
			}

			continue
		}

		path, changed, err := gen.WriteFile(out.file, filepath.Dir(out.path))
		if err != nil {
			return err
		}

		if !changed {
			log.DebugContext(ctx, "parsers unchanged", slog.String("file", path))
			continue
		}

		log.InfoContext(ctx, "parsers generated", slog.String("file", path))
	}

	return nil
}

// targets merges the manifest targets with the ones given on the command
// line and validates the result.
func (g *Gen) targets() ([]config.Target, error) {
	var targets []config.Target

	if g.Config != "" {
		m, err := config.LoadFile(g.Config)
		if err != nil {
			return nil, err
		}

		targets = m.Targets
	}

	register := !g.NoRegister
	for _, pattern := range g.Patterns {
		targets = append(targets, config.Target{
			Package:  pattern,
			Types:    g.Types,
			Output:   g.Output,
			Register: &register,
		})
	}

	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	m := config.Manifest{Version: config.Version, Targets: targets}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return targets, nil
}

// generate analyzes the packages of target and renders one file per package
// holding selected record types.
func generate(ctx context.Context, dir string, target config.Target) ([]output, error) {
	graph, err := analyze.NewAnalyzer(dir).LoadPackages(target.Package)
	if err != nil {
		return nil, err
	}

	var (
		outs  []output
		found = map[string]bool{}
	)

	for _, path := range graph.SortedPackages() {
		pkg := graph.Packages[path]

		var infos []*analyze.TypeInfo
		for _, info := range graph.PackageTypes(path) {
			if len(target.Types) > 0 && !slices.Contains(target.Types, info.ID.Name) {
				continue
			}

			found[info.ID.Name] = true
			infos = append(infos, info)

			reportDiagnostics(ctx, info.Diagnostics)
		}

		if len(infos) == 0 {
			log.DebugContext(ctx, "no record types", slog.String("package", path))
			continue
		}

		generator := gen.NewGenerator(gen.GeneratorConfig{
			OutputDir: pkg.Dir,
			Filename:  target.Output,
			Register:  target.ShouldRegister(),
		})

		file, err := generator.Generate(pkg, infos)
		if err != nil {
			return nil, err
		}

		for _, field := range file.Skipped {
			log.WarnContext(ctx, "field skipped",
				slog.String("package", path),
				slog.String("field", field),
			)
		}

		outs = append(outs, output{
			path: filepath.Join(pkg.Dir, file.Filename),
			file: file,
		})
	}

	var errs []error
	for _, name := range target.Types {
		if !found[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrTypeNotFound, name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return outs, nil
}

func reportDiagnostics(ctx context.Context, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		log.WarnContext(ctx, d.Message,
			slog.String("type", d.Type),
			slog.String("field", d.Field),
			slog.String("code", d.Code),
		)
	}
}
