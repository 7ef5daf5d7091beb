package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierroute/scenario"
)

var errScenariosFailed = errors.New("scenarios failed")

func scenariosCmd(a *app) *cobra.Command {
	var (
		file  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Check a scenario file against the classifier",
		Long: `Load a scenario file (JSON or YAML) listing routine, moderate and complex
tasks plus edge cases with an explicit expected tier, classify each one and
report mismatches. Exits non-zero when any scenario fails.

With --watch the file is checked again every time it changes, until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			check := func() error { return a.checkScenarios(out, file) }

			if !watch {
				return check()
			}

			if err := check(); err != nil {
				a.logger.Warn("scenario check failed", "file", file, "error", err)
			}
			a.logger.Info("watching scenario file", "file", file)
			return scenario.Watch(cmd.Context(), file, check, scenario.WithLogger(a.logger))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file (required)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check whenever the file changes")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) checkScenarios(w io.Writer, path string) error {
	f, err := scenario.Load(path)
	if err != nil {
		return err
	}
	report := scenario.Run(a.cfg.Classifier(), f.Cases())
	printReport(w, report)
	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", errScenariosFailed, report.Failed, len(report.Results))
	}
	return nil
}

func printReport(w io.Writer, r *scenario.Report) {
	for _, res := range r.Failures() {
		d := res.Decision
		fmt.Fprintf(w, "FAIL  %-14s %q: got tier %d (%s", res.Case.Group, res.Case.Description, d.Tier, d.Rule)
		if d.Signal != "" {
			fmt.Fprintf(w, " %q", d.Signal)
		}
		fmt.Fprintf(w, "), want %d\n", res.Case.Expected)
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", r.Passed, r.Failed)
}
