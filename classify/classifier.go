package classify

import (
	"strings"

	"github.com/randalmurphal/tierroute/model"
)

// Rule names the precedence step that decided a classification.
type Rule string

// Rules in precedence order.
const (
	RulePreviousFailure Rule = "previous_failure"
	RuleEscalation      Rule = "escalation"
	RuleComplex         Rule = "complex"
	RuleModerate        Rule = "moderate"
	RuleRoutine         Rule = "routine"
	RuleDefault         Rule = "default"
)

// Decision is the outcome of a classification with the reason for it.
type Decision struct {
	Tier model.Tier `json:"tier"`
	Rule Rule       `json:"rule"`
	// Signal is the phrase that matched; empty for RulePreviousFailure and RuleDefault.
	Signal string `json:"signal,omitempty"`
}

// Classifier maps task descriptions to tiers.
type Classifier struct {
	signals Signals
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSignals replaces the built-in signal lists. Phrases are lower-cased.
func WithSignals(s Signals) Option {
	return func(c *Classifier) {
		c.signals = s
	}
}

// New creates a classifier using DefaultSignals unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{signals: DefaultSignals()}
	for _, opt := range opts {
		opt(c)
	}
	c.signals = c.signals.normalize()
	return c
}

var defaultClassifier = New()

// Default returns the shared classifier built from DefaultSignals.
func Default() *Classifier {
	return defaultClassifier
}

// Signals returns a copy of the classifier's signal lists.
func (c *Classifier) Signals() Signals {
	return Signals{
		Escalation: append(SignalSet(nil), c.signals.Escalation...),
		Complex:    append(SignalSet(nil), c.signals.Complex...),
		Moderate:   append(SignalSet(nil), c.signals.Moderate...),
		Routine:    append(SignalSet(nil), c.signals.Routine...),
	}
}

// Classify returns the tier for description.
func (c *Classifier) Classify(description string, previousFailed bool) model.Tier {
	return c.Explain(description, previousFailed).Tier
}

// Explain classifies description and reports which rule fired.
func (c *Classifier) Explain(description string, previousFailed bool) Decision {
	if previousFailed {
		return Decision{Tier: model.TierPremium, Rule: RulePreviousFailure}
	}

	lowered := strings.ToLower(description)

	checks := []struct {
		set  SignalSet
		rule Rule
		tier model.Tier
	}{
		{c.signals.Escalation, RuleEscalation, model.TierPremium},
		{c.signals.Complex, RuleComplex, model.TierPremium},
		{c.signals.Moderate, RuleModerate, model.TierModerate},
		{c.signals.Routine, RuleRoutine, model.TierRoutine},
	}
	for _, check := range checks {
		if phrase, ok := check.set.Match(lowered); ok {
			return Decision{Tier: check.tier, Rule: check.rule, Signal: phrase}
		}
	}

	// Unknown work goes to the middle tier, never the cheapest.
	return Decision{Tier: model.TierModerate, Rule: RuleDefault}
}

// Classify classifies description with the default classifier.
func Classify(description string, previousFailed bool) model.Tier {
	return defaultClassifier.Classify(description, previousFailed)
}

// Explain explains description with the default classifier.
func Explain(description string, previousFailed bool) Decision {
	return defaultClassifier.Explain(description, previousFailed)
}
