package netparams

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation is the sentinel matched by every
	// *InvariantViolation. It signals a corrupted or incompatible build
	// and must abort startup.
	ErrInvariantViolation = errors.New("network parameter invariant " +
		"violated")

	// ErrUnknownNetwork is returned when selecting a network that is not
	// part of the closed set this package knows about. It indicates a
	// programming error in the caller.
	ErrUnknownNetwork = errors.New("unknown network")
)

// InvariantViolation describes a hardcoded network constant that did not
// match the value recomputed from its recipe.
type InvariantViolation struct {
	// Net is the network whose parameters failed verification.
	Net NetworkID

	// Field names the checked value, e.g. "genesis hash".
	Field string

	// Want is the hardcoded expected value.
	Want string

	// Got is the recomputed value.
	Got string
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%v: %s mismatch: want %s, got %s", e.Net,
		e.Field, e.Want, e.Got)
}

// Is allows errors.Is to match any violation against
// ErrInvariantViolation.
func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariantViolation
}
