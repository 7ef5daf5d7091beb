package model

import (
	"errors"
	"fmt"
)

// ErrInvalidTier is matched by every *InvalidTierError via errors.Is.
var ErrInvalidTier = errors.New("invalid tier")

// InvalidTierError reports a tier outside {1, 2, 3}, or a name that does not
// resolve to one.
type InvalidTierError struct {
	Tier  Tier   // Offending tier value, zero when Input is set
	Input string // Unparseable tier or model name, if any
}

// Error implements the error interface.
func (e *InvalidTierError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%v: %q", ErrInvalidTier, e.Input)
	}
	return fmt.Sprintf("%v: %d", ErrInvalidTier, int(e.Tier))
}

// Is reports whether target is ErrInvalidTier.
func (e *InvalidTierError) Is(target error) bool {
	return target == ErrInvalidTier
}
