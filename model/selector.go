package model

import (
	"context"
)

// selectorKey is the context key for the model selector.
type selectorKey struct{}

// Selector picks the model for a tier, with per-tier and global overrides.
// A Selector is not modified after construction; use Clone or WithGlobal to
// derive variants.
type Selector struct {
	models     map[Tier]ModelName
	globalOver ModelName
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// NewSelector creates a selector that starts from the representative model
// of each tier.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		models: make(map[Tier]ModelName, len(tierModels)),
	}
	for tier, models := range tierModels {
		if len(models) > 0 {
			s.models[tier] = models[0]
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTierModel sets the model used for a tier. Invalid tiers are ignored.
func WithTierModel(tier Tier, model ModelName) SelectorOption {
	return func(s *Selector) {
		if tier.Valid() && model != "" {
			s.models[tier] = model
		}
	}
}

// WithTierModels sets the first model of each list as that tier's model.
func WithTierModels(models map[Tier][]ModelName) SelectorOption {
	return func(s *Selector) {
		for tier, list := range models {
			if tier.Valid() && len(list) > 0 {
				s.models[tier] = list[0]
			}
		}
	}
}

// WithGlobalOverride sets a model that overrides every selection.
func WithGlobalOverride(model ModelName) SelectorOption {
	return func(s *Selector) {
		s.globalOver = model
	}
}

// SelectForTier returns the model for a tier.
// Priority order: global override > tier model. The tier must be valid even
// when a global override is set.
func (s *Selector) SelectForTier(tier Tier) (ModelName, error) {
	if !tier.Valid() {
		return "", &InvalidTierError{Tier: tier}
	}
	if s.globalOver != "" {
		return s.globalOver, nil
	}
	model, ok := s.models[tier]
	if !ok {
		return "", &InvalidTierError{Tier: tier}
	}
	return model, nil
}

// Clone returns a copy of the selector with the same configuration.
func (s *Selector) Clone() *Selector {
	models := make(map[Tier]ModelName, len(s.models))
	for k, v := range s.models {
		models[k] = v
	}
	return &Selector{
		models:     models,
		globalOver: s.globalOver,
	}
}

// WithGlobal returns a new selector with a global override applied.
func (s *Selector) WithGlobal(model ModelName) *Selector {
	clone := s.Clone()
	clone.globalOver = model
	return clone
}

// NewContext returns a new context with the selector attached.
func NewContext(ctx context.Context, selector *Selector) context.Context {
	return context.WithValue(ctx, selectorKey{}, selector)
}

// FromContext retrieves the selector attached with NewContext, if any.
func FromContext(ctx context.Context) (*Selector, bool) {
	s, ok := ctx.Value(selectorKey{}).(*Selector)
	return s, ok && s != nil
}
