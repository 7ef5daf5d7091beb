package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierroute/model"
)

func costCmd(a *app) *cobra.Command {
	var (
		tierArg string
		tokens  float64
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Price output tokens on a tier",
		Example: `  tierroute cost --tier 1
  tierroute cost --tier premium --tokens 250000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tier, err := model.ParseTier(tierArg)
			if err != nil {
				return err
			}
			c, err := a.cfg.PricingTable().Cost(tier, tokens)
			if err != nil {
				return err
			}
			m, err := a.cfg.Selector().SelectForTier(tier)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tier %d (%s, %s): %s tokens = %s\n",
				tier, tier, m, formatTokens(tokens), formatUSD(c))
			return err
		},
	}

	cmd.Flags().StringVar(&tierArg, "tier", "", "tier number or name (required)")
	cmd.Flags().Float64Var(&tokens, "tokens", model.DefaultTokens, "output tokens")
	_ = cmd.MarkFlagRequired("tier")
	return cmd
}
