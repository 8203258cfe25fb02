package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dfprop/cli/cmd"
	"github.com/ardnew/dfprop/pkg"
	"github.com/ardnew/dfprop/resolve"
)

// CLI is the top-level command-line interface for dfprop.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Get  cmd.Get  `cmd:"" help:"Resolve a document and print it"`
	Eval cmd.Eval `cmd:"" help:"Evaluate an expression over a resolved document"`
	Tree cmd.Tree `cmd:"" help:"Print a resolved document as a tree"`
	Repl cmd.Repl `cmd:"" help:"Explore a resolved document interactively"`
	Fmt  cmd.Fmt  `cmd:"" help:"Reformat a document"`
	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
}

// Run executes the dfprop CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
//
// Values attached to ctx, such as the streams installed by [cmd.WithStdio],
// are visible to the selected command.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":            strings.TrimSpace(pkg.Version),
		cmd.ConfigIdentifier: configFile(),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		cmd.ExtIdentifier:    resolve.DefaultExtension,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadConfig, configFile()),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}
