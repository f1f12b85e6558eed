package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sambeau/brine/config"
	"github.com/sambeau/brine/pkg/brine/brine"
	"github.com/sambeau/brine/pkg/brine/format"
)

// app carries what every command needs: the process streams, the loaded
// configuration and a logger that is silent unless --verbose is given.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	cfgFile string
	verbose bool
	color   string

	cfg    *config.Config
	logger brine.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "brine",
		Short: "brine - a parser for the Brine language",
		Long: `brine reads Brine source (.brn) and prints its syntax tree, its tokens or
its diagnostics.

Configuration is read from --config, $BRINE_CONFIG, ./brine.yaml,
./brine.toml or ~/.config/brine/brine.yaml, in that order.`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetVersionTemplate("brine version {{.Version}}\n")

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: search brine.yaml, brine.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colour diagnostics: auto, always or never (default from config)")

	root.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newTokensCmd(a),
		newFmtCmd(a),
		newReplCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration and applies the global flags to it
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadWithPath(a.cfgFile, a.getenv)
	if err != nil {
		return err
	}
	if a.color != "" {
		cfg.Output.Color = a.color
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.logger = brine.NopLogger()
	if a.verbose {
		a.logger = brine.WriterLogger(a.stderr)
	}
	if path != "" {
		a.logger.LogLine("config:", path)
	}
	for _, w := range config.Warnings(cfg) {
		fmt.Fprintf(a.stderr, "warning: %s\n", w)
	}
	return nil
}

// diagnosticOptions resolves the configured colour mode for output going
// to w
func (a *app) diagnosticOptions(w io.Writer) format.DiagnosticOptions {
	mode, err := format.ParseColorMode(a.cfg.Output.Color)
	if err != nil {
		mode = format.ColorAuto
	}
	return a.cfg.DiagnosticOptions(format.UseColor(mode, w))
}

func (a *app) diagnostics(w io.Writer) *format.DiagnosticPrinter {
	return format.NewDiagnosticPrinter(a.diagnosticOptions(w))
}

// parse reads and parses one input; "-" is standard input
func (a *app) parse(name string) (*brine.Unit, error) {
	if name == "-" {
		src, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return brine.Parse(string(src), brine.WithFilename("<stdin>"), brine.WithLogger(a.logger)), nil
	}
	return brine.ParseFile(name, brine.WithLogger(a.logger))
}

// report prints a unit's diagnostics to stderr, returning errSyntax if
// there were any.
func (a *app) report(u *brine.Unit) error {
	if !u.HasErrors() {
		return nil
	}
	if err := a.diagnostics(a.stderr).Print(a.stderr, u.Source, u.Errors); err != nil {
		return err
	}
	return errSyntax
}

// inputs defaults an empty argument list to standard input
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
