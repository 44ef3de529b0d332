package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNonPositiveMass indicates a body violating the mass > 0 precondition.
	ErrNonPositiveMass = errors.New("dynamo: body mass must be positive")

	// ErrInvalidState indicates a population holding NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrEmptyPopulation indicates a driver was handed no bodies where it needs some.
	ErrEmptyPopulation = errors.New("dynamo: empty population")

	// ErrInvalidConfig indicates a run configuration outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SimulationError wraps an error with the tick it occurred on.
type SimulationError struct {
	Tick    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
