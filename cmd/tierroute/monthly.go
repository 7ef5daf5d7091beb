package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierroute/model"
)

func monthlyCmd(a *app) *cobra.Command {
	var (
		dailyTokens float64
		mix         model.Mix
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Project monthly spend for tiered routing against premium-only",
		Long: `Project a month (30 days) of output tokens split across tiers by the
workload mix and compare it with sending everything to the premium tier.

The daily volume and mix default to the configuration file. Mix shares are
used as given and need not sum to 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("daily-tokens") {
				dailyTokens = a.cfg.Workload.DailyTokens
			}
			m := a.cfg.Mix
			if flags.Changed("routine") {
				m.Routine = mix.Routine
			}
			if flags.Changed("moderate") {
				m.Moderate = mix.Moderate
			}
			if flags.Changed("complex") {
				m.Complex = mix.Complex
			}

			cmp, err := a.cfg.PricingTable().Compare(dailyTokens, m)
			if err != nil {
				return err
			}
			a.logger.Debug("monthly projection",
				"daily_tokens", dailyTokens,
				"hierarchical_usd", cmp.Hierarchical,
				"premium_usd", cmp.Premium,
			)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, cmp)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Daily tokens:\t%s\n", formatTokens(cmp.DailyTokens))
			fmt.Fprintf(tw, "Mix:\t%s routine / %s moderate / %s complex\n",
				formatPercent(m.Routine), formatPercent(m.Moderate), formatPercent(m.Complex))
			fmt.Fprintf(tw, "Tiered:\t%s/month\n", formatUSD(cmp.Hierarchical))
			fmt.Fprintf(tw, "Premium only:\t%s/month\n", formatUSD(cmp.Premium))
			fmt.Fprintf(tw, "Savings:\t%s/month\n", formatUSD(cmp.Savings))
			if cmp.Factor > 0 {
				fmt.Fprintf(tw, "Factor:\t%.1fx cheaper\n", cmp.Factor)
			}
			return tw.Flush()
		},
	}

	defaults := model.DefaultMix()
	cmd.Flags().Float64Var(&dailyTokens, "daily-tokens", 0, "output tokens per day (default from config)")
	cmd.Flags().Float64Var(&mix.Routine, "routine", defaults.Routine, "share of tokens on the routine tier")
	cmd.Flags().Float64Var(&mix.Moderate, "moderate", defaults.Moderate, "share of tokens on the moderate tier")
	cmd.Flags().Float64Var(&mix.Complex, "complex", defaults.Complex, "share of tokens on the premium tier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	return cmd
}
