// Package scenario loads labelled task descriptions and checks a classifier
// against them.
//
// A scenario file groups descriptions by the tier they must land on, plus a
// list of edge cases that carry their own expected tier:
//
//	{
//	  "routine_tasks":  [{"description": "Run the heartbeat check"}],
//	  "moderate_tasks": [{"description": "Summarize this article"}],
//	  "complex_tasks":  [{"description": "Debug the race condition"}],
//	  "edge_cases": [
//	    {"description": "Format this Python code", "expected_tier": 2},
//	    {"description": "Read the config file", "expected_tier": 3, "previous_failed": true}
//	  ]
//	}
//
// JSON and YAML files use the same keys.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/tierroute/classify"
	"github.com/randalmurphal/tierroute/model"
)

// Group names for Case.Group.
const (
	GroupRoutine  = "routine_tasks"
	GroupModerate = "moderate_tasks"
	GroupComplex  = "complex_tasks"
	GroupEdge     = "edge_cases"
)

// ErrInvalidScenario is wrapped by every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Task is one labelled description in a scenario file.
type Task struct {
	Description string `json:"description" yaml:"description"`
	// ExpectedTier is required for edge cases. In the tier groups it may be
	// omitted; if present it must agree with the group.
	ExpectedTier   model.Tier `json:"expected_tier,omitempty" yaml:"expected_tier,omitempty"`
	PreviousFailed bool       `json:"previous_failed,omitempty" yaml:"previous_failed,omitempty"`
}

// File is the decoded content of a scenario file.
type File struct {
	RoutineTasks  []Task `json:"routine_tasks" yaml:"routine_tasks"`
	ModerateTasks []Task `json:"moderate_tasks" yaml:"moderate_tasks"`
	ComplexTasks  []Task `json:"complex_tasks" yaml:"complex_tasks"`
	EdgeCases     []Task `json:"edge_cases" yaml:"edge_cases"`
}

// Case is a single classification expectation.
type Case struct {
	Group          string     `json:"group"`
	Description    string     `json:"description"`
	Expected       model.Tier `json:"expected_tier"`
	PreviousFailed bool       `json:"previous_failed,omitempty"`
}

// Load reads and validates a .json, .yaml or .yml scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %q: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&f); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("scenario file %q: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %q: %w", path, err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("scenario file %q: %w", path, err)
	}
	return &f, nil
}

// Validate checks that every task has a description and a consistent tier.
func (f *File) Validate() error {
	groups := []struct {
		name  string
		tier  model.Tier
		tasks []Task
	}{
		{GroupRoutine, model.TierRoutine, f.RoutineTasks},
		{GroupModerate, model.TierModerate, f.ModerateTasks},
		{GroupComplex, model.TierPremium, f.ComplexTasks},
		{GroupEdge, 0, f.EdgeCases},
	}
	for _, g := range groups {
		for i, t := range g.tasks {
			if strings.TrimSpace(t.Description) == "" {
				return fmt.Errorf("%w: %s[%d]: empty description", ErrInvalidScenario, g.name, i)
			}
			switch {
			case g.tier == 0 && !t.ExpectedTier.Valid():
				return fmt.Errorf("%w: %s[%d]: %w", ErrInvalidScenario, g.name, i, &model.InvalidTierError{Tier: t.ExpectedTier})
			case g.tier != 0 && t.ExpectedTier != 0 && t.ExpectedTier != g.tier:
				return fmt.Errorf("%w: %s[%d]: expected_tier %d conflicts with group tier %d",
					ErrInvalidScenario, g.name, i, t.ExpectedTier, g.tier)
			}
		}
	}
	return nil
}

// Cases flattens the file into cases in file order: routine, moderate,
// complex, then edge cases.
func (f *File) Cases() []Case {
	var cases []Case
	add := func(group string, tier model.Tier, tasks []Task) {
		for _, t := range tasks {
			expected := tier
			if expected == 0 {
				expected = t.ExpectedTier
			}
			cases = append(cases, Case{
				Group:          group,
				Description:    t.Description,
				Expected:       expected,
				PreviousFailed: t.PreviousFailed,
			})
		}
	}
	add(GroupRoutine, model.TierRoutine, f.RoutineTasks)
	add(GroupModerate, model.TierModerate, f.ModerateTasks)
	add(GroupComplex, model.TierPremium, f.ComplexTasks)
	add(GroupEdge, 0, f.EdgeCases)
	return cases
}

// Classifier is the part of classify.Classifier that Run needs.
type Classifier interface {
	Explain(description string, previousFailed bool) classify.Decision
}

// Result is the outcome of one case.
type Result struct {
	Case     Case              `json:"case"`
	Decision classify.Decision `json:"decision"`
	Pass     bool              `json:"pass"`
}

// Report summarizes a run.
type Report struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Failures returns only the failing results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Pass {
			out = append(out, res)
		}
	}
	return out
}

// Run classifies every case and compares against the expected tier.
func Run(c Classifier, cases []Case) *Report {
	report := &Report{Results: make([]Result, 0, len(cases))}
	for _, tc := range cases {
		d := c.Explain(tc.Description, tc.PreviousFailed)
		res := Result{Case: tc, Decision: d, Pass: d.Tier == tc.Expected}
		if res.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}
	return report
}
