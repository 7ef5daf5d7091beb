package model

// EscalationPolicy bounds how many times a task is attempted.
type EscalationPolicy struct {
	// MaxAttempts is the maximum total attempts, including the first.
	MaxAttempts int
}

// DefaultEscalation allows one attempt at the classified tier and two at
// the premium tier.
var DefaultEscalation = EscalationPolicy{MaxAttempts: 3}

// NoRetry allows a single attempt.
var NoRetry = EscalationPolicy{MaxAttempts: 1}

// Next returns the tier for the attempt after a failure at current.
// Any failure moves straight to the premium tier. Returns (0, false) once
// attempt has reached MaxAttempts.
func (p *EscalationPolicy) Next(current Tier, attempt int) (Tier, bool) {
	if attempt >= p.MaxAttempts {
		return 0, false
	}
	return TierPremium, true
}

// CanEscalate reports whether a failure at current would move to a more
// capable tier.
func (p *EscalationPolicy) CanEscalate(current Tier) bool {
	return p.MaxAttempts > 1 && current < TierPremium
}

// EscalationState tracks the attempts made for one task.
type EscalationState struct {
	Policy      *EscalationPolicy
	CurrentTier Tier
	Attempt     int
	LastError   error
}

// NewEscalationState creates a new escalation state starting at the given tier.
func NewEscalationState(policy *EscalationPolicy, start Tier) *EscalationState {
	if policy == nil {
		policy = &DefaultEscalation
	}
	return &EscalationState{
		Policy:      policy,
		CurrentTier: start,
	}
}

// RecordFailure records a failed attempt and escalates if possible.
// Returns true if there are more attempts available.
func (s *EscalationState) RecordFailure(err error) bool {
	s.Attempt++
	s.LastError = err

	next, ok := s.Policy.Next(s.CurrentTier, s.Attempt)
	if !ok {
		return false
	}
	s.CurrentTier = next
	return true
}

// Failed reports whether at least one attempt has failed.
func (s *EscalationState) Failed() bool {
	return s.Attempt > 0
}

// Exhausted returns true if all attempts have been used.
func (s *EscalationState) Exhausted() bool {
	return s.Attempt >= s.Policy.MaxAttempts
}
