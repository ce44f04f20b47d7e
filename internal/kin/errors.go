package kin

import (
	"errors"
	"fmt"
)

// Domain errors for model and solver operations.
var (
	// ErrInvalidState indicates the integrator produced NaN or Inf values.
	ErrInvalidState = errors.New("kin: invalid state (NaN or Inf detected)")

	// ErrStepBudget indicates the solver exhausted its internal step budget.
	ErrStepBudget = errors.New("kin: solver step budget exhausted")

	// ErrNotSetUp indicates a run or reset was requested before setup.
	ErrNotSetUp = errors.New("kin: model not set up")

	// ErrSealed indicates a reaction was appended after setup.
	ErrSealed = errors.New("kin: model already set up, reset before composing")

	// ErrBinding indicates a mechanism with a malformed species or
	// parameter binding.
	ErrBinding = errors.New("kin: malformed reaction binding")
)

// IntegrationError carries the offending time and state of a failed run.
type IntegrationError struct {
	Time    float64
	Step    int
	State   State
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
