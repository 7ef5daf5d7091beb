// Package model provides the tier hierarchy, model selection, pricing, and
// escalation state.
//
// The package implements a three-tier model hierarchy:
//   - Routine tier (1): Lookups, status checks, simple transforms
//   - Moderate tier (2): Writing, review, summarization, general tasks
//   - Premium tier (3): Debugging, architecture, security, prior failures
//
// Which tier a task needs is decided by the classify package; this package
// answers what that tier runs on and what it costs.
//
// # Model Selection
//
//	m, err := model.ModelForTier(model.TierModerate) // "claude-sonnet-4"
//
//	selector := model.NewSelector(
//	    model.WithTierModel(model.TierRoutine, model.ModelGPT4oMini),
//	)
//	m, err = selector.SelectForTier(model.TierRoutine)
//
// # Pricing
//
//	usd, err := model.Cost(model.TierPremium, model.DefaultTokens)
//	monthly := model.MonthlyCost(100_000, model.DefaultMix())
//
// Tiers outside {1, 2, 3} fail with *InvalidTierError; use
// errors.Is(err, model.ErrInvalidTier) to test for it.
//
// # Escalation
//
//	state := model.NewEscalationState(nil, tier)
//	for !state.Exhausted() {
//	    if err := try(state.CurrentTier); err == nil {
//	        break
//	    } else if !state.RecordFailure(err) {
//	        break
//	    }
//	}
package model
