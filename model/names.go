package model

import (
	"bytes"
	"strconv"
	"strings"
)

// ModelName identifies a concrete model.
type ModelName string

// Routine tier models.
const (
	ModelDeepSeekV3   ModelName = "deepseek-v3"
	ModelGPT4oMini    ModelName = "gpt-4o-mini"
	ModelClaude3Haiku ModelName = "claude-3-haiku"
	ModelGeminiFlash  ModelName = "gemini-flash"
)

// Moderate tier models.
const (
	ModelClaudeSonnet4 ModelName = "claude-sonnet-4"
	ModelGPT4o         ModelName = "gpt-4o"
	ModelGeminiPro     ModelName = "gemini-pro"
)

// Premium tier models.
const (
	ModelClaudeOpus4 ModelName = "claude-opus-4"
	ModelGPT45       ModelName = "gpt-4.5"
	ModelO1          ModelName = "o1"
	ModelO3Mini      ModelName = "o3-mini"
)

// Tier represents a model capability tier.
type Tier int

// Tier constants, ordered from cheapest to most capable.
const (
	TierRoutine  Tier = 1
	TierModerate Tier = 2
	TierPremium  Tier = 3
)

// Tiers returns every valid tier in ascending order.
func Tiers() []Tier {
	return []Tier{TierRoutine, TierModerate, TierPremium}
}

// Valid reports whether t is one of the three defined tiers.
func (t Tier) Valid() bool {
	return t >= TierRoutine && t <= TierPremium
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierRoutine:
		return "routine"
	case TierModerate:
		return "moderate"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// UnmarshalText accepts either the tier number or its name, so scenario and
// config files may write `3` or "premium". Tiers still encode as plain numbers.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON accepts a JSON number or string. encoding/json only hands
// quoted strings to UnmarshalText.
func (t *Tier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	return t.UnmarshalText(bytes.Trim(data, `"`))
}

// ParseTier parses "1", "2", "3" or a tier name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		t := Tier(n)
		if !t.Valid() {
			return 0, &InvalidTierError{Tier: t}
		}
		return t, nil
	}
	for _, t := range Tiers() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &InvalidTierError{Tier: 0, Input: s}
}

// tierModels lists representative models for each tier. The first entry of
// each list is the one ModelForTier returns.
var tierModels = map[Tier][]ModelName{
	TierRoutine:  {ModelDeepSeekV3, ModelGPT4oMini, ModelClaude3Haiku, ModelGeminiFlash},
	TierModerate: {ModelClaudeSonnet4, ModelGPT4o, ModelGeminiPro},
	TierPremium:  {ModelClaudeOpus4, ModelGPT45, ModelO1, ModelO3Mini},
}

// TierModels returns a copy of the representative model table.
func TierModels() map[Tier][]ModelName {
	out := make(map[Tier][]ModelName, len(tierModels))
	for tier, models := range tierModels {
		out[tier] = append([]ModelName(nil), models...)
	}
	return out
}

// ModelForTier returns the representative model for a tier.
// An invalid tier yields an *InvalidTierError rather than any fallback model.
func ModelForTier(tier Tier) (ModelName, error) {
	models := tierModels[tier]
	if !tier.Valid() || len(models) == 0 {
		return "", &InvalidTierError{Tier: tier}
	}
	return models[0], nil
}

// TierForModel returns the tier a model is listed under.
func TierForModel(model ModelName) (Tier, error) {
	name := ModelName(strings.ToLower(string(model)))
	for _, tier := range Tiers() {
		for _, m := range tierModels[tier] {
			if m == name {
				return tier, nil
			}
		}
	}
	return 0, &InvalidTierError{Input: string(model)}
}
