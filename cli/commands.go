package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/exparse/internal/config"
	"github.com/aledsdavies/exparse/internal/render"
	"github.com/aledsdavies/exparse/internal/watch"
)

func newParseCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Print the command tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := o.parseFile(args[0])
			if err != nil {
				return err
			}
			name := displayName(args[0])
			if o.cfg.Output.Format == config.FormatTree {
				render.FormatTree(o.stdout, name, tree, o.useColor())
				return nil
			}
			return o.writeReports(render.NewReport(name, tree))
		},
	}
}

func newCheckCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report the syntax errors of scripts",
		Long:  "Report the syntax errors of scripts. Exits with status 1 when any file has errors.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			var reports []*render.Report
			for _, file := range args {
				report, bad, err := o.check(file)
				if err != nil {
					return err
				}
				failed = failed || bad
				if report != nil {
					reports = append(reports, report)
				}
			}
			if len(reports) > 0 {
				if err := o.writeReports(reports...); err != nil {
					return err
				}
			}
			if failed {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

// check parses file and prints its diagnostics, or returns its report in
// the yaml and cbor formats. bad reports whether the file has syntax errors.
func (o *options) check(file string) (report *render.Report, bad bool, err error) {
	tree, err := o.parseFile(file)
	if err != nil {
		return nil, false, err
	}
	if err := tree.Validate(); err != nil {
		return nil, false, &CLIError{
			Type:    "parse",
			Message: fmt.Sprintf("internal error: invalid tree for %s", file),
			Details: err.Error(),
			Hint:    "please report this with the input file",
		}
	}
	name := displayName(file)
	if o.cfg.Output.Format != config.FormatTree {
		return render.NewReport(name, tree), tree.HasErrors(), nil
	}
	render.FormatDiagnostics(o.stdout, name, tree, o.useColor())
	return nil, tree.HasErrors(), nil
}

func newWatchCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Check scripts again whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := watch.New(args, watch.WithLogger(o.logger))
			if err != nil {
				return &CLIError{Type: "input", Message: "cannot watch files", Details: err.Error()}
			}
			defer func() { _ = w.Close() }()

			recheck := func(file string) {
				report, _, err := o.check(file)
				if err == nil && report != nil {
					err = o.writeReports(report)
				}
				if err != nil {
					FormatError(o.stderr, err, o.useColor())
				}
			}
			for _, file := range w.Files() {
				recheck(file)
			}

			o.logger.Debug("watching", "files", len(args))
			err = w.Run(cmd.Context(), recheck)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// writeReports writes reports in the configured machine format.
func (o *options) writeReports(reports ...*render.Report) error {
	if o.cfg.Output.Format == config.FormatCBOR {
		return render.WriteCBOR(o.stdout, reports...)
	}
	return render.WriteYAML(o.stdout, reports...)
}
