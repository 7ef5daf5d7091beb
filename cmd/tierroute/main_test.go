package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tierroute/classify"
	"github.com/randalmurphal/tierroute/model"
	"github.com/randalmurphal/tierroute/route"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_Structure(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "tierroute", cmd.Use)

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range []string{"classify", "cost", "monthly", "scenarios", "schema", "version"} {
		assert.True(t, subcommands[name], "should have %s subcommand", name)
	}

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestClassifyCmd_JSON(t *testing.T) {
	out, err := run(t, "classify", "--json", "Summarize this article")
	require.NoError(t, err)

	var d route.Decision
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, model.TierModerate, d.Tier)
	assert.Equal(t, classify.RuleModerate, d.Rule)
	assert.Equal(t, "summarize", d.Signal)
	assert.Equal(t, model.ModelClaudeSonnet4, d.Model)
	assert.Equal(t, 1000.0, d.Tokens)
	assert.NotEmpty(t, d.ID)
}

func TestClassifyCmd_Text(t *testing.T) {
	out, err := run(t, "classify", "Check", "the", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "1 (routine)")
	assert.Contains(t, out, `"check"`)
	assert.Contains(t, out, "deepseek-v3")
	assert.Contains(t, out, "1,000")
}

func TestClassifyCmd_Failed(t *testing.T) {
	out, err := run(t, "classify", "--failed", "--json", "--tokens", "5000", "Read the config file")
	require.NoError(t, err)

	var d route.Decision
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, model.TierPremium, d.Tier)
	assert.Equal(t, classify.RulePreviousFailure, d.Rule)
	assert.Equal(t, 5000.0, d.Tokens)
	assert.InDelta(t, 0.375, d.Cost, 1e-12)
}

func TestClassifyCmd_ModelOverride(t *testing.T) {
	out, err := run(t, "classify", "--json", "--model", "gpt-4o-mini", "Debug the race condition")
	require.NoError(t, err)

	var d route.Decision
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, model.TierPremium, d.Tier)
	assert.Equal(t, model.ModelGPT4oMini, d.Model)
	assert.InDelta(t, 0.075, d.Cost, 1e-12)
}

func TestClassifyCmd_RequiresDescription(t *testing.T) {
	_, err := run(t, "classify")
	assert.Error(t, err)
}

func TestCostCmd(t *testing.T) {
	out, err := run(t, "cost", "--tier", "premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Tier 3 (premium, claude-opus-4)")
	assert.Contains(t, out, "$0.075")

	out, err = run(t, "cost", "--tier", "1", "--tokens", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "1,000,000 tokens")
	assert.Contains(t, out, "$0.28")
}

func TestCostCmd_Errors(t *testing.T) {
	_, err := run(t, "cost", "--tier", "7")
	assert.ErrorIs(t, err, model.ErrInvalidTier)

	_, err = run(t, "cost")
	assert.Error(t, err)
}

func TestMonthlyCmd_Defaults(t *testing.T) {
	out, err := run(t, "monthly", "--json")
	require.NoError(t, err)

	var cmp model.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, 100_000.0, cmp.DailyTokens)
	assert.InDelta(t, 18.672, cmp.Hierarchical, 1e-9)
	assert.InDelta(t, 225.0, cmp.Premium, 1e-9)
	assert.InDelta(t, 225.0-18.672, cmp.Savings, 1e-9)
}

func TestMonthlyCmd_MixFlags(t *testing.T) {
	out, err := run(t, "monthly", "--json", "--daily-tokens", "100000", "--routine", "1", "--moderate", "0", "--complex", "0")
	require.NoError(t, err)

	var cmp model.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.InDelta(t, 0.84, cmp.Hierarchical, 1e-9)
	assert.Equal(t, model.Mix{Routine: 1}, cmp.Mix)
}

func TestMonthlyCmd_Text(t *testing.T) {
	out, err := run(t, "monthly")
	require.NoError(t, err)
	assert.Contains(t, out, "100,000")
	assert.Contains(t, out, "80% routine / 15% moderate / 5% complex")
	assert.Contains(t, out, "Premium only:")
}

func TestMonthlyCmd_ConfigAndEnv(t *testing.T) {
	path := writeFile(t, "tierroute.yaml", "workload:\n  daily_tokens: 200000\n")

	out, err := run(t, "--config", path, "monthly", "--json")
	require.NoError(t, err)
	var cmp model.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, 200_000.0, cmp.DailyTokens)

	t.Setenv("TIERROUTE_DAILY_TOKENS", "50000")
	out, err = run(t, "--config", path, "monthly", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, 50_000.0, cmp.DailyTokens)
}

func TestBadConfig(t *testing.T) {
	path := writeFile(t, "tierroute.yaml", "pricing:\n  routine: 100\n")
	_, err := run(t, "--config", path, "classify", "anything")
	assert.Error(t, err)
}

func TestScenariosCmd_Fixture(t *testing.T) {
	out, err := run(t, "scenarios", "--file", filepath.Join("..", "..", "scenario", "testdata", "scenarios.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "29 passed, 0 failed")
	assert.NotContains(t, out, "FAIL")
}

func TestScenariosCmd_Failure(t *testing.T) {
	path := writeFile(t, "s.json", `{"routine_tasks": [{"description": "Summarize the heartbeat"}, {"description": "Ping the server"}]}`)

	out, err := run(t, "scenarios", "--file", path)
	assert.ErrorIs(t, err, errScenariosFailed)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, `"Summarize the heartbeat"`)
	assert.Contains(t, out, "1 passed, 1 failed")
}

func TestScenariosCmd_RequiresFile(t *testing.T) {
	_, err := run(t, "scenarios")
	assert.Error(t, err)
}

func TestSchemaCmd(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "signals")
	assert.Contains(t, props, "pricing")
}

func TestVersionCmd(t *testing.T) {
	// A broken config must not matter for version.
	path := writeFile(t, "broken.yaml", "nope: [")
	out, err := run(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tierroute "+Version)
}
