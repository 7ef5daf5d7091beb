// Package classify routes a free-text task description to a model tier.
//
// Classification is a fixed precedence chain of substring tests against four
// signal lists. The first rule that matches decides the tier:
//
//  1. previousFailed is true: premium
//  2. an Escalation phrase is present: premium
//  3. a Complex phrase is present: premium
//  4. a Moderate phrase is present: moderate
//  5. a Routine phrase is present: routine
//  6. nothing matched: moderate
//
// Matching lower-cases the description and tests plain substring containment.
// There is no tokenization, so a phrase also matches inside a longer word
// ("get" matches "target").
//
// # Usage
//
//	tier := classify.Classify("Run the heartbeat check", false) // model.TierRoutine
//
//	c := classify.New(classify.WithSignals(custom))
//	d := c.Explain("Review this code for security vulnerabilities", false)
//	// d.Tier == model.TierPremium, d.Rule == classify.RuleComplex, d.Signal == "security"
//
// A Classifier holds no mutable state and is safe for concurrent use.
package classify
