// Package cli implements the exparse command line: parse, check and watch
// Ex scripts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/exparse/internal/config"
	"github.com/aledsdavies/exparse/runtime/linesource"
	"github.com/aledsdavies/exparse/runtime/parser"
)

// options holds the global flags and what PersistentPreRunE derives from them.
type options struct {
	configPath  string
	format      string
	debug       bool
	noColor     bool
	earlyReturn bool
	noStarRange bool
	noMagic     bool
	stats       bool

	cfg    *config.Config
	logger *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the exparse command tree reading and writing the
// given streams.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &options{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "exparse",
		Short:         "Parse Ex command-line scripts into command trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to the config file (default ./"+config.FileName+")")
	flags.StringVar(&o.format, "format", "", "Output format: tree, yaml or cbor (default from config)")
	flags.BoolVar(&o.debug, "debug", os.Getenv("EXPARSE_DEBUG") != "", "Enable debug output (env EXPARSE_DEBUG)")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&o.earlyReturn, "early-return", false, "Stop after the first complete top-level command")
	flags.BoolVar(&o.noStarRange, "no-star-range", false, `Treat a leading "*" as the :* command instead of '<,'>`)
	flags.BoolVar(&o.noMagic, "nomagic", false, "Scan patterns as with 'nomagic'")
	flags.BoolVar(&o.stats, "stats", false, "Collect parse telemetry (shown in yaml and cbor reports)")

	rootCmd.AddCommand(newParseCommand(o), newCheckCommand(o), newWatchCommand(o))
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	FormatError(os.Stderr, err, ShouldUseColor(os.Stderr, false, true))
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// setup loads the config file and applies the flags that override it.
func (o *options) setup(cmd *cobra.Command) error {
	o.logger = newLogger(o.stderr, o.debug)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return &CLIError{Type: "config", Message: "cannot load configuration", Details: err.Error()}
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = o.format
	}
	if o.noStarRange {
		cfg.Parser.StarRange = false
	}
	if o.noMagic {
		cfg.Parser.Magic = false
	}
	if err := cfg.Validate(); err != nil {
		return &CLIError{Type: "config", Message: "invalid option", Details: err.Error(), Hint: "use --format tree, yaml or cbor"}
	}
	o.cfg = cfg
	o.logger.Debug("configuration loaded", "path", o.configPath, "format", cfg.Output.Format)
	return nil
}

// newLogger builds the debug logger: a text handler without time or level.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (o *options) useColor() bool {
	return ShouldUseColor(o.stdout, o.noColor, o.cfg.Output.Color)
}

func (o *options) parserOptions() []parser.ParserOpt {
	opts := o.cfg.ParserOptions()
	opts = append(opts, parser.WithLogger(o.logger))
	if o.earlyReturn {
		opts = append(opts, parser.WithEarlyReturn())
	}
	if o.stats {
		opts = append(opts, parser.WithTelemetryTiming())
	}
	return opts
}

// parseFile parses name, or standard input for "-".
func (o *options) parseFile(name string) (*parser.ParseTree, error) {
	var r io.Reader = o.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, &CLIError{Type: "input", Message: fmt.Sprintf("cannot open %s", name), Details: err.Error()}
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	src := linesource.FromReader(r)
	tree, err := parser.Parse(src, o.parserOptions()...)
	if err != nil {
		return nil, parseFailure(name, err)
	}
	if err := src.Err(); err != nil {
		return nil, parseFailure(name, err)
	}
	o.logger.Debug("parsed", "file", name, "lines", len(tree.Lines), "errors", len(tree.Errors))
	return tree, nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}
