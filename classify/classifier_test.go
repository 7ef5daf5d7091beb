package classify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/tierroute/model"
)

func TestClassify_RealWorldScenarios(t *testing.T) {
	tests := []struct {
		description string
		want        model.Tier
	}{
		{"Run the heartbeat check", model.TierRoutine},
		{"Check if services are healthy", model.TierRoutine},
		{"Ping the server status", model.TierRoutine},
		{"Review this pull request for style issues", model.TierModerate},
		{"Format this Python code", model.TierModerate},
		{"Review this code for security vulnerabilities", model.TierPremium},
		{"Design the system architecture", model.TierPremium},
		{"Architect a solution for this problem", model.TierPremium},
		{"Evaluate the tradeoffs between microservices and monolith", model.TierPremium},
		{"I tried three approaches and none work", model.TierPremium},
		{"The previous model couldn't figure this out", model.TierPremium},
		{"Still not working after multiple attempts", model.TierPremium},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description, false))
		})
	}
}

func TestClassify_PreviousFailureOverride(t *testing.T) {
	for _, desc := range []string{
		"Read the config file",
		"",
		"Do something with the thing",
		"Summarize this article",
	} {
		assert.Equal(t, model.TierPremium, Classify(desc, true), "description %q", desc)
	}

	d := Explain("Read the config file", true)
	assert.Equal(t, RulePreviousFailure, d.Rule)
	assert.Empty(t, d.Signal)
}

func TestClassify_DefaultsToModerate(t *testing.T) {
	for _, desc := range []string{"Do something with the thing", "", "   "} {
		d := Explain(desc, false)
		assert.Equal(t, model.TierModerate, d.Tier, "description %q", desc)
		assert.Equal(t, RuleDefault, d.Rule)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, model.TierPremium, Classify("DEBUG this", false))
	assert.Equal(t, model.TierPremium, Classify("debug this", false))
	assert.Equal(t, Classify("LIST FILES", false), Classify("list files", false))
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantTier    model.Tier
		wantRule    Rule
		wantSignal  string
	}{
		{"complex beats routine", "Read the logs and debug the crash", model.TierPremium, RuleComplex, "debug"},
		{"complex beats moderate", "Review this code for security vulnerabilities", model.TierPremium, RuleComplex, "security"},
		{"escalation beats complex", "Still stuck on the design", model.TierPremium, RuleEscalation, "stuck"},
		{"moderate beats routine", "List the files then summarize them", model.TierModerate, RuleModerate, "summarize"},
		{"routine alone", "Sort these numbers", model.TierRoutine, RuleRoutine, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Explain(tt.description, false)
			assert.Equal(t, tt.wantTier, d.Tier)
			assert.Equal(t, tt.wantRule, d.Rule)
			assert.Equal(t, tt.wantSignal, d.Signal)
		})
	}
}

func TestClassify_EveryEscalationOrComplexSignalIsPremium(t *testing.T) {
	signals := DefaultSignals()
	for _, set := range []SignalSet{signals.Escalation, signals.Complex} {
		for _, phrase := range set {
			desc := fmt.Sprintf("Please read and summarize the status, then %s", phrase)
			assert.Equal(t, model.TierPremium, Classify(desc, false), "phrase %q", phrase)
		}
	}
}

func TestClassify_SignalDetection(t *testing.T) {
	signals := DefaultSignals()

	for _, signal := range signals.Routine[:5] {
		t.Run("routine "+signal, func(t *testing.T) {
			tier := Classify(fmt.Sprintf("Please %s the data", signal), false)
			assert.Contains(t, []model.Tier{model.TierRoutine, model.TierModerate}, tier)
		})
	}

	for _, signal := range signals.Complex[:5] {
		t.Run("complex "+signal, func(t *testing.T) {
			assert.Equal(t, model.TierPremium, Classify(fmt.Sprintf("Need to %s this system", signal), false))
		})
	}
}

func TestClassify_SubstringMatching(t *testing.T) {
	// "get" matches inside "target".
	d := Explain("Aim for the target", false)
	assert.Equal(t, model.TierRoutine, d.Tier)
	assert.Equal(t, "get", d.Signal)
}

func TestClassify_Deterministic(t *testing.T) {
	c := New()
	first := c.Explain("Migrate the billing service", false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, c.Explain("Migrate the billing service", false))
		}()
	}
	wg.Wait()
}

func TestNew_WithSignals(t *testing.T) {
	c := New(WithSignals(Signals{
		Complex: SignalSet{"Kubernetes"},
		Routine: SignalSet{"HELLO", ""},
	}))

	d := c.Explain("hello world", false)
	assert.Equal(t, model.TierRoutine, d.Tier)
	assert.Equal(t, "hello", d.Signal)

	assert.Equal(t, model.TierPremium, c.Classify("Scale the KUBERNETES cluster", false))
	assert.Equal(t, model.TierModerate, c.Classify("debug this", false), "built-in lists are replaced")
	assert.Equal(t, SignalSet{"hello"}, c.Signals().Routine)
}

func TestNew_EmptySignalsAlwaysDefault(t *testing.T) {
	c := New(WithSignals(Signals{}))
	assert.Equal(t, model.TierModerate, c.Classify("Run the heartbeat check", false))
	assert.Equal(t, model.TierPremium, c.Classify("Run the heartbeat check", true))
}

func TestDefaultSignalsIsCopy(t *testing.T) {
	s := DefaultSignals()
	s.Routine[0] = "mutated"
	assert.Equal(t, "read", DefaultSignals().Routine[0])
	assert.Equal(t, model.TierRoutine, Classify("Read the config file", false))
}

func TestSignalsEmpty(t *testing.T) {
	assert.True(t, Signals{}.Empty())
	assert.False(t, DefaultSignals().Empty())
}
