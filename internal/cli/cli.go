package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"record-mapper/internal/config"
)

// Name of the command.
const Name = "record-mapper"

// CLI is the top-level command-line interface of record-mapper.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Dir string `help:"Resolve package patterns relative to this directory." placeholder:"DIR" short:"C" type:"existingdir"`

	Gen     Gen     `cmd:"" help:"Generate parser code for record types."`
	Inspect Inspect `cmd:"" help:"Print the field mapping of record types."`
}

// Run executes the record-mapper CLI with the given context and arguments.
// Command output goes to stdout. The exit function is called by the parser
// for --help and usage errors.
func Run(
	ctx context.Context,
	stdout io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"output": config.DefaultOutput,
	}.
		CloneWith(cli.Log.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description("Generate and inspect parsers mapping token records onto structs."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, os.Stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group()}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.BindTo(stdout, (*io.Writer)(nil)),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	return ktx.Run(&cli)
}
