package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierroute/model"
	"github.com/randalmurphal/tierroute/route"
)

func classifyCmd(a *app) *cobra.Command {
	var (
		failed   bool
		tokens   float64
		override string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a task and show its tier, model and estimated cost",
		Long: `Classify a task description into a tier. The words of the description may
be quoted or given as separate arguments.

Without --tokens the expected output size is estimated from the description.
--model replaces the chosen model for every tier; the tier and its price
are unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := route.FromConfig(a.cfg, route.WithLogger(a.logger))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if override != "" {
				ctx = model.NewContext(ctx, a.cfg.Selector().WithGlobal(model.ModelName(override)))
			}

			d, err := r.Route(ctx, route.Task{
				Description:    strings.Join(args, " "),
				PreviousFailed: failed,
				Tokens:         tokens,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			return printDecision(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().BoolVar(&failed, "failed", false, "a previous attempt at this task failed")
	cmd.Flags().Float64Var(&tokens, "tokens", 0, "expected output tokens (default: estimated)")
	cmd.Flags().StringVar(&override, "model", "", "use this model whatever the tier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decision as JSON")
	return cmd
}

func printDecision(w io.Writer, d route.Decision) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tier:\t%d (%s)\n", d.Tier, d.Tier)
	fmt.Fprintf(tw, "Rule:\t%s\n", d.Rule)
	if d.Signal != "" {
		fmt.Fprintf(tw, "Signal:\t%q\n", d.Signal)
	}
	fmt.Fprintf(tw, "Model:\t%s\n", d.Model)
	fmt.Fprintf(tw, "Tokens:\t%s\n", formatTokens(d.Tokens))
	fmt.Fprintf(tw, "Cost:\t%s\n", formatUSD(d.Cost))
	fmt.Fprintf(tw, "Premium cost:\t%s\n", formatUSD(d.PremiumCost))
	return tw.Flush()
}
