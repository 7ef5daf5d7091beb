package classify

import "strings"

// SignalSet is an ordered list of lower-case phrases for one priority class.
type SignalSet []string

// Match returns the first phrase contained in lowered.
// lowered must already be lower-cased.
func (s SignalSet) Match(lowered string) (string, bool) {
	for _, phrase := range s {
		if phrase != "" && strings.Contains(lowered, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// normalize lower-cases every phrase and returns a new set.
func (s SignalSet) normalize() SignalSet {
	out := make(SignalSet, 0, len(s))
	for _, phrase := range s {
		if p := strings.ToLower(phrase); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Signals holds the four signal lists in precedence order.
type Signals struct {
	Escalation SignalSet `json:"escalation" yaml:"escalation" toml:"escalation"`
	Complex    SignalSet `json:"complex" yaml:"complex" toml:"complex"`
	Moderate   SignalSet `json:"moderate" yaml:"moderate" toml:"moderate"`
	Routine    SignalSet `json:"routine" yaml:"routine" toml:"routine"`
}

// Lookups, status checks and simple transforms.
var routineSignals = SignalSet{
	"read", "fetch", "check", "list", "format", "status", "get",
	"filter", "sort", "convert", "parse", "health", "ping", "time",
	"date", "lookup", "find file", "show", "display",
}

// Writing, review and analysis work.
var moderateSignals = SignalSet{
	"write", "code", "summarize", "draft", "analyze", "create",
	"generate", "review", "refactor", "transform", "search",
	"research", "explain", "describe", "compare",
}

// Debugging, design and anything that sounds hard.
var complexSignals = SignalSet{
	"debug", "architect", "design", "security", "why does",
	"why is", "tradeoff", "evaluate", "doesn't work", "failed",
	"tried", "race condition", "vulnerability", "migrate",
	"behaves differently", "under load", "production",
}

// Evidence that an earlier attempt went wrong.
var escalationSignals = SignalSet{
	"previous", "couldn't", "failed", "try again", "still not working",
	"none of these work", "stuck",
}

// DefaultSignals returns a copy of the built-in signal lists.
func DefaultSignals() Signals {
	return Signals{
		Escalation: append(SignalSet(nil), escalationSignals...),
		Complex:    append(SignalSet(nil), complexSignals...),
		Moderate:   append(SignalSet(nil), moderateSignals...),
		Routine:    append(SignalSet(nil), routineSignals...),
	}
}

// Empty reports whether every list is empty.
func (s Signals) Empty() bool {
	return len(s.Escalation) == 0 && len(s.Complex) == 0 &&
		len(s.Moderate) == 0 && len(s.Routine) == 0
}

func (s Signals) normalize() Signals {
	return Signals{
		Escalation: s.Escalation.normalize(),
		Complex:    s.Complex.normalize(),
		Moderate:   s.Moderate.normalize(),
		Routine:    s.Routine.normalize(),
	}
}
