package allocator

import (
	"errors"
	"fmt"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

// ErrInfeasible is returned when the solver proves no assignment fills every mission exactly
var ErrInfeasible = errors.New("no feasible assignment")

// ConfigurationError is raised before model construction when the run inputs are unusable
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SolverError wraps a failure of the solver backend itself
type SolverError struct {
	Backend string
	Status  solver.Status
	Err     error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver %s failed (status %s): %v", e.Backend, e.Status, e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
