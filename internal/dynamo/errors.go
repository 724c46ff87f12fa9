package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidInput indicates a non-finite or out-of-domain input rejected before integration.
	ErrInvalidInput = errors.New("dynamo: invalid input")

	// ErrUnstable indicates the integration produced a non-finite state.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates the solver used up its step attempts before reaching the end of the span.
	ErrStepBudget = errors.New("dynamo: step budget exhausted before end of time span")

	// ErrStepRejected is returned by an adaptive step whose error estimate exceeds tolerance.
	ErrStepRejected = errors.New("dynamo: step rejected")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// IntegrationError reports a solver that could not reach the end of its
// time span. LastTime is the last time at which an accepted, finite state
// exists; no samples are produced beyond it.
type IntegrationError struct {
	LastTime float64
	Steps    int
	State    State
	Err      error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at t=%.6g after %d steps: %v", e.LastTime, e.Steps, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// Invalid wraps ErrInvalidInput with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
