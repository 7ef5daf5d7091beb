package scenario

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tierroute/classify"
	"github.com/randalmurphal/tierroute/model"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Fixture(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "scenarios.json"))
	require.NoError(t, err)

	assert.Len(t, f.RoutineTasks, 9)
	assert.Len(t, f.ModerateTasks, 6)
	assert.Len(t, f.ComplexTasks, 7)
	assert.Len(t, f.EdgeCases, 7)

	cases := f.Cases()
	require.Len(t, cases, 29)
	assert.Equal(t, Case{Group: GroupRoutine, Description: "Read the config file", Expected: model.TierRoutine}, cases[0])

	last := cases[len(cases)-1]
	assert.Equal(t, GroupEdge, last.Group)
	assert.Equal(t, model.TierPremium, last.Expected)
	assert.True(t, last.PreviousFailed)
}

func TestRun_FixturePassesWithDefaultClassifier(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "scenarios.json"))
	require.NoError(t, err)

	report := Run(classify.Default(), f.Cases())
	for _, res := range report.Failures() {
		t.Errorf("%s: %q classified as %d (rule %s, signal %q), want %d",
			res.Case.Group, res.Case.Description, res.Decision.Tier, res.Decision.Rule, res.Decision.Signal, res.Case.Expected)
	}
	assert.True(t, report.OK())
	assert.Equal(t, 29, report.Passed)
}

func TestRun_ReportsFailures(t *testing.T) {
	cases := []Case{
		{Group: GroupRoutine, Description: "Run the heartbeat check", Expected: model.TierRoutine},
		{Group: GroupRoutine, Description: "Summarize the heartbeat", Expected: model.TierRoutine},
	}

	report := Run(classify.Default(), cases)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, model.TierModerate, failures[0].Decision.Tier)
	assert.Equal(t, classify.RuleModerate, failures[0].Decision.Rule)
}

func TestLoad_YAML(t *testing.T) {
	path := writeScenario(t, "s.yaml", `
routine_tasks:
  - description: Ping the server status
edge_cases:
  - description: Read the config file
    expected_tier: premium
    previous_failed: true
  - description: Do something with the thing
    expected_tier: 2
`)

	f, err := Load(path)
	require.NoError(t, err)

	cases := f.Cases()
	require.Len(t, cases, 3)
	assert.Equal(t, model.TierPremium, cases[1].Expected)
	assert.Equal(t, model.TierModerate, cases[2].Expected)
	assert.True(t, Run(classify.Default(), cases).OK())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"edge case without tier", "s.json", `{"edge_cases": [{"description": "x"}]}`},
		{"edge case out of range", "s.json", `{"edge_cases": [{"description": "x", "expected_tier": 4}]}`},
		{"group tier conflict", "s.json", `{"routine_tasks": [{"description": "x", "expected_tier": 3}]}`},
		{"empty description", "s.yaml", "complex_tasks:\n  - description: '  '\n"},
		{"unknown field", "s.json", `{"routine": []}`},
		{"unknown yaml field", "s.yaml", "routine_tasks:\n  - description: Ping the server\n    expected_teir: 1\n"},
		{"unknown yaml group", "s.yml", "routine:\n  - description: Ping the server\n"},
		{"bad extension", "s.txt", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeScenario(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("invalid scenario sentinel", func(t *testing.T) {
		_, err := Load(writeScenario(t, "s.json", `{"routine_tasks": [{"description": ""}]}`))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad_EmptyYAML(t *testing.T) {
	f, err := Load(writeScenario(t, "s.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, f.Cases())
}

func TestWatch(t *testing.T) {
	path := writeScenario(t, "s.json", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() error {
			calls.Add(1)
			return nil
		}, WithDebounce(20*time.Millisecond))
	}()

	// The watcher may not be registered yet; keep writing until it notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("onChange was not called")
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(`{"routine_tasks": []}`), 0o644))
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	path := writeScenario(t, "s.json", `{}`)
	other := filepath.Join(filepath.Dir(path), "other.json")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var calls atomic.Int32
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(other, []byte(`{}`), 0o644)
	}()

	err := Watch(ctx, path, func() error {
		calls.Add(1)
		return nil
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}
