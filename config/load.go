package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are not YAML, TOML or JSON.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load reads a config file on top of the defaults and validates the result.
// The format is chosen by extension: .yaml/.yml, .toml or .json.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadWithEnv loads path (or only the defaults when path is empty), applies
// TIERROUTE_* environment overrides and validates the result.
// Environment variables take precedence over the file.
func LoadWithEnv(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("failed to parse config file %q: unknown keys %v", path, undecoded)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return nil
}

// Environment variable names read by ApplyEnv.
const (
	EnvDailyTokens = "TIERROUTE_DAILY_TOKENS"
	EnvMixRoutine  = "TIERROUTE_MIX_ROUTINE"
	EnvMixModerate = "TIERROUTE_MIX_MODERATE"
	EnvMixComplex  = "TIERROUTE_MIX_COMPLEX"
	EnvMaxAttempts = "TIERROUTE_MAX_ATTEMPTS"
	EnvLogLevel    = "TIERROUTE_LOG_LEVEL"
	EnvLogFormat   = "TIERROUTE_LOG_FORMAT"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg fields from environment variables.
// A variable that is set but unparseable is an error.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvDailyTokens, &cfg.Workload.DailyTokens},
		{EnvMixRoutine, &cfg.Mix.Routine},
		{EnvMixModerate, &cfg.Mix.Moderate},
		{EnvMixComplex, &cfg.Mix.Complex},
	}
	for _, f := range floats {
		val, ok := lookup(f.key)
		if !ok || val == "" {
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = v
	}

	if val, ok := lookup(EnvMaxAttempts); ok && val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxAttempts, err)
		}
		cfg.Escalation.MaxAttempts = n
	}
	if val, ok := lookup(EnvLogLevel); ok && val != "" {
		cfg.Log.Level = val
	}
	if val, ok := lookup(EnvLogFormat); ok && val != "" {
		cfg.Log.Format = val
	}
	return nil
}
