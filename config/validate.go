package config

import (
	"fmt"
	"strings"
)

// FieldError is a validation failure for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "mix.routine").
	Field   string
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks cfg and returns a *ValidationError listing every problem,
// or nil. Mix shares are checked for sign only; they need not sum to 1.
func Validate(cfg *Config) error {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Signals.Empty() {
		add("signals", "at least one signal list must be non-empty")
	}

	if err := cfg.PricingTable().Validate(); err != nil {
		add("pricing", "%s", strings.TrimPrefix(err.Error(), "pricing: "))
	}

	for _, m := range []struct {
		field string
		list  []string
	}{
		{"models.routine", cfg.Models.Routine},
		{"models.moderate", cfg.Models.Moderate},
		{"models.premium", cfg.Models.Premium},
	} {
		if len(modelNames(m.list)) == 0 {
			add(m.field, "must list at least one model")
		}
	}

	for _, share := range []struct {
		field string
		value float64
	}{
		{"mix.routine", cfg.Mix.Routine},
		{"mix.moderate", cfg.Mix.Moderate},
		{"mix.complex", cfg.Mix.Complex},
	} {
		if share.value < 0 {
			add(share.field, "must not be negative, got %g", share.value)
		}
	}

	if cfg.Workload.DailyTokens < 0 {
		add("workload.daily_tokens", "must not be negative, got %g", cfg.Workload.DailyTokens)
	}
	if cfg.Workload.OutputRatio <= 0 {
		add("workload.output_ratio", "must be positive, got %g", cfg.Workload.OutputRatio)
	}
	if cfg.Workload.MinOutputTokens < 0 {
		add("workload.min_output_tokens", "must not be negative, got %g", cfg.Workload.MinOutputTokens)
	}

	if cfg.Escalation.MaxAttempts < 1 {
		add("escalation.max_attempts", "must be at least 1, got %d", cfg.Escalation.MaxAttempts)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("log.level", "unknown level %q", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		add("log.format", "unknown format %q", cfg.Log.Format)
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
