package solver

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by New
const (
	BackendSimplex = "simplex"
	BackendMaxSAT  = "maxsat"
)

// DefaultTimeLimit is used when Options.TimeLimit is zero
const DefaultTimeLimit = 30 * time.Second

// Status is the terminal state reported by a solve
type Status int

const (
	StatusOptimal Status = iota
	// StatusTimeLimited means optimality was not proven: the time limit was reached, or
	// the backend had to round the objective. Values holds the incumbent when one exists.
	StatusTimeLimited
	StatusInfeasible
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusTimeLimited:
		return "time-limited"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "error"
	}
}

// Options controls a single solve
type Options struct {
	// TimeLimit bounds the wall-clock time of the solve
	TimeLimit time.Duration
}

// Solution is the result of a solve.
// Values is nil unless the status is optimal or a time-limited incumbent exists.
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
	Elapsed   time.Duration
}

// HasValues reports whether the solution carries a variable assignment
func (s *Solution) HasValues() bool {
	return s != nil && s.Values != nil
}

// Solver solves a Model within the time limit in opts.
// Infeasibility and timeouts are reported through Solution.Status; the error return is
// reserved for failures of the solver itself.
type Solver interface {
	Name() string
	Solve(ctx context.Context, model *Model, opts Options) (*Solution, error)
}

// BackendOptions configures backend construction
type BackendOptions struct {
	// MaxSATPrecision is the largest number of decimal digits used when scaling objective
	// coefficients to integer weights
	MaxSATPrecision int
}

// New returns the solver backend with the given name
func New(backend string, opts BackendOptions) (Solver, error) {
	switch backend {
	case "", BackendSimplex:
		return NewSimplex(), nil
	case BackendMaxSAT:
		return NewMaxSAT(opts.MaxSATPrecision), nil
	default:
		return nil, fmt.Errorf("unknown solver backend %q", backend)
	}
}

// withTimeLimit derives the solve context from the time limit in opts
func withTimeLimit(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	return context.WithTimeout(ctx, limit)
}
