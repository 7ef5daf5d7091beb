package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierroute/config"
)

// app carries global flags and the state loaded from them.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

// load reads the configuration and builds the logger. Logs go to w.
func (a *app) load(w io.Writer) error {
	cfg, err := config.LoadWithEnv(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(w)
	slog.SetDefault(a.logger)
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "tierroute",
		Short: "Route tasks to the cheapest model tier that can handle them",
		Long: `tierroute sorts task descriptions into three model tiers using keyword
signals and prices the result:

  1 routine   lookups, status checks, simple transforms
  2 moderate  writing, review, analysis (the default)
  3 premium   debugging, design, anything that already failed

Signals, prices, models and the workload mix come from the --config file
(YAML, TOML or JSON) and TIERROUTE_* environment variables.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	// Global persistent flags (available to all subcommands)
	cmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (.yaml, .toml or .json)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		classifyCmd(a),
		costCmd(a),
		monthlyCmd(a),
		scenariosCmd(a),
		schemaCmd(),
		versionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
