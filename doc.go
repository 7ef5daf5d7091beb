// Package tierroute routes tasks to the cheapest model tier that can handle
// them and estimates what that saves over sending everything to a premium
// model.
//
// The module is a set of packages that can be used on their own:
//
//   - classify: keyword classifier mapping a task description to tier 1, 2 or 3
//   - model: tiers, representative models, pricing, usage tracking, escalation
//   - tokens: token counting and output-size estimation
//   - route: classification, model choice and pricing in one call, with retry
//   - config: YAML/TOML/JSON configuration with env overrides and a JSON Schema
//   - scenario: fixture files of tasks with expected tiers, and a file watcher
//
// # Quick Start
//
// Classification:
//
//	import "github.com/randalmurphal/tierroute/classify"
//	tier := classify.Classify("Debug the race condition", false) // model.TierPremium
//
// Pricing:
//
//	import "github.com/randalmurphal/tierroute/model"
//	cost, _ := model.Cost(model.TierRoutine, model.DefaultTokens) // 0.00028
//	monthly := model.MonthlyCost(100_000, model.DefaultMix())    // 18.672
//
// Routing with escalation:
//
//	import "github.com/randalmurphal/tierroute/route"
//	r, _ := route.New()
//	d, err := r.Run(ctx, route.Task{Description: desc}, func(ctx context.Context, d route.Decision) error {
//		return callModel(ctx, d.Model, desc)
//	})
//
// The tierroute command in cmd/tierroute exposes the same operations.
package tierroute
