// Package config loads tierroute settings from YAML or TOML files.
//
// Every field has a built-in default (see Default), so a config file only
// needs the values it changes:
//
//	# tierroute.yaml
//	pricing:
//	  routine: 0.15
//	mix:
//	  routine: 0.70
//	  moderate: 0.20
//	  complex: 0.10
//	log:
//	  level: debug
//
// The loading sequence is: defaults, then the file, then TIERROUTE_*
// environment variables, then Validate.
package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/randalmurphal/tierroute/classify"
	"github.com/randalmurphal/tierroute/model"
	"github.com/randalmurphal/tierroute/tokens"
)

// Config is the complete tierroute configuration.
type Config struct {
	// Signals are the phrase lists the classifier matches, in precedence order.
	Signals classify.Signals `json:"signals" yaml:"signals" toml:"signals"`

	// Pricing is USD per million output tokens for each tier.
	Pricing PricingConfig `json:"pricing" yaml:"pricing" toml:"pricing"`

	// Models lists the models that serve each tier. The first is used.
	Models ModelsConfig `json:"models" yaml:"models" toml:"models"`

	// Mix is the assumed share of traffic per tier for monthly projections.
	// Shares are not required to sum to 1.
	Mix model.Mix `json:"mix" yaml:"mix" toml:"mix"`

	Workload   WorkloadConfig   `json:"workload" yaml:"workload" toml:"workload"`
	Escalation EscalationConfig `json:"escalation" yaml:"escalation" toml:"escalation"`
	Log        LogConfig        `json:"log" yaml:"log" toml:"log"`
}

// PricingConfig holds per-tier prices.
type PricingConfig struct {
	Routine  float64 `json:"routine" yaml:"routine" toml:"routine" jsonschema:"exclusiveMinimum=0"`
	Moderate float64 `json:"moderate" yaml:"moderate" toml:"moderate" jsonschema:"exclusiveMinimum=0"`
	Premium  float64 `json:"premium" yaml:"premium" toml:"premium" jsonschema:"exclusiveMinimum=0"`
}

// ModelsConfig holds the model list for each tier.
type ModelsConfig struct {
	Routine  []string `json:"routine" yaml:"routine" toml:"routine"`
	Moderate []string `json:"moderate" yaml:"moderate" toml:"moderate"`
	Premium  []string `json:"premium" yaml:"premium" toml:"premium"`
}

// WorkloadConfig describes the traffic being priced.
type WorkloadConfig struct {
	// DailyTokens is the output token volume per day used for projections.
	DailyTokens float64 `json:"daily_tokens" yaml:"daily_tokens" toml:"daily_tokens" jsonschema:"minimum=0"`

	// OutputRatio is output tokens per description token when estimating a task.
	OutputRatio float64 `json:"output_ratio" yaml:"output_ratio" toml:"output_ratio" jsonschema:"exclusiveMinimum=0"`

	// MinOutputTokens is the smallest per-task output estimate.
	MinOutputTokens float64 `json:"min_output_tokens" yaml:"min_output_tokens" toml:"min_output_tokens" jsonschema:"minimum=0"`
}

// EscalationConfig bounds retries after a failed attempt.
type EscalationConfig struct {
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts" jsonschema:"minimum=1"`
}

// LogConfig controls the slog handler built by NewLogger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `json:"format" yaml:"format" toml:"format" jsonschema:"enum=text,enum=json"`
}

// Default values for configuration fields.
const (
	DefaultDailyTokens = 100_000
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Default returns the built-in configuration.
func Default() *Config {
	prices := model.DefaultPricing()
	models := model.TierModels()
	return &Config{
		Signals: classify.DefaultSignals(),
		Pricing: PricingConfig{
			Routine:  prices[model.TierRoutine],
			Moderate: prices[model.TierModerate],
			Premium:  prices[model.TierPremium],
		},
		Models: ModelsConfig{
			Routine:  modelStrings(models[model.TierRoutine]),
			Moderate: modelStrings(models[model.TierModerate]),
			Premium:  modelStrings(models[model.TierPremium]),
		},
		Mix: model.DefaultMix(),
		Workload: WorkloadConfig{
			DailyTokens:     DefaultDailyTokens,
			OutputRatio:     tokens.DefaultOutputRatio,
			MinOutputTokens: tokens.DefaultFloor,
		},
		Escalation: EscalationConfig{MaxAttempts: model.DefaultEscalation.MaxAttempts},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func modelStrings(models []model.ModelName) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = string(m)
	}
	return out
}

func modelNames(names []string) []model.ModelName {
	out := make([]model.ModelName, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, model.ModelName(n))
		}
	}
	return out
}

// PricingTable returns the configured prices as a model.Pricing.
func (c *Config) PricingTable() model.Pricing {
	return model.Pricing{
		model.TierRoutine:  c.Pricing.Routine,
		model.TierModerate: c.Pricing.Moderate,
		model.TierPremium:  c.Pricing.Premium,
	}
}

// TierModels returns the configured model lists keyed by tier.
func (c *Config) TierModels() map[model.Tier][]model.ModelName {
	return map[model.Tier][]model.ModelName{
		model.TierRoutine:  modelNames(c.Models.Routine),
		model.TierModerate: modelNames(c.Models.Moderate),
		model.TierPremium:  modelNames(c.Models.Premium),
	}
}

// Classifier builds a classifier from the configured signals.
func (c *Config) Classifier() *classify.Classifier {
	return classify.New(classify.WithSignals(c.Signals))
}

// Selector builds a model selector from the configured model lists.
func (c *Config) Selector() *model.Selector {
	return model.NewSelector(model.WithTierModels(c.TierModels()))
}

// Estimator builds the per-task output token estimator.
func (c *Config) Estimator() *tokens.OutputEstimator {
	return tokens.NewOutputEstimator(
		tokens.WithOutputRatio(c.Workload.OutputRatio),
		tokens.WithFloor(c.Workload.MinOutputTokens),
	)
}

// EscalationPolicy returns the configured retry policy.
func (c *Config) EscalationPolicy() model.EscalationPolicy {
	return model.EscalationPolicy{MaxAttempts: c.Escalation.MaxAttempts}
}

// SlogLevel maps the configured level to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.ToLower(c.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
