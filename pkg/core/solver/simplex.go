package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTolerance  = 1e-7
	integralTolerance = 1e-6
)

// Simplex solves models with gonum's simplex implementation on the LP relaxation.
// Binary variables are relaxed to [0, 1] and the returned vertex must be integral,
// which holds for totally unimodular models such as the participant/mission assignment.
// A fractional vertex is reported as a solver failure rather than rounded.
type Simplex struct {
	solve func(c []float64, a mat.Matrix, b []float64, tol float64, initialBasic []int) (float64, []float64, error)
}

// NewSimplex returns the simplex backend
func NewSimplex() *Simplex {
	return &Simplex{solve: lp.Simplex}
}

// Name returns the backend name
func (s *Simplex) Name() string {
	return BackendSimplex
}

type simplexResult struct {
	x   []float64
	err error
}

// Solve runs the simplex method and maps its outcome to a Solution.
// gonum's simplex cannot be interrupted, so on timeout the worker goroutine keeps running
// until lp.Simplex returns and its result is discarded.
func (s *Simplex) Solve(ctx context.Context, model *Model, opts Options) (*Solution, error) {
	start := time.Now()

	if err := model.checkFinite(); err != nil {
		return &Solution{Status: StatusError}, err
	}

	c, a, b := standardForm(model)

	ctx, cancel := withTimeLimit(ctx, opts)
	defer cancel()

	// Buffered so the worker can always finish even after a timeout
	results := make(chan simplexResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- simplexResult{err: fmt.Errorf("simplex panicked: %v", r)}
			}
		}()
		_, x, err := s.solve(c, a, b, simplexTolerance, nil)
		results <- simplexResult{x: x, err: err}
	}()

	var res simplexResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return &Solution{Status: StatusTimeLimited, Elapsed: time.Since(start)}, nil
	}

	elapsed := time.Since(start)

	if res.err != nil {
		if errors.Is(res.err, lp.ErrInfeasible) {
			return &Solution{Status: StatusInfeasible, Elapsed: elapsed}, nil
		}
		return &Solution{Status: StatusError, Elapsed: elapsed}, fmt.Errorf("simplex failed: %w", res.err)
	}

	values := make([]float64, len(model.Variables))
	for i, v := range model.Variables {
		x := res.x[i]
		if v.Binary {
			rounded := math.Round(x)
			if math.Abs(x-rounded) > integralTolerance {
				return &Solution{Status: StatusError, Elapsed: elapsed},
					fmt.Errorf("simplex returned fractional value %g for binary variable %s", x, v.Name)
			}
			x = rounded
		}
		values[i] = x
	}

	return &Solution{
		Status:    StatusOptimal,
		Values:    values,
		Objective: model.Evaluate(values),
		Elapsed:   elapsed,
	}, nil
}

// standardForm converts the model into minimize cᵀx subject to Ax = b, x >= 0.
// Inequality rows and binary upper bounds each receive their own slack column,
// and rows are negated where needed so that b >= 0.
func standardForm(model *Model) ([]float64, *mat.Dense, []float64) {
	n := len(model.Variables)

	slacks := 0
	for _, con := range model.Constraints {
		if con.Relation != Equal {
			slacks++
		}
	}
	for _, v := range model.Variables {
		if v.Binary {
			slacks++
		}
	}

	rows := len(model.Constraints)
	for _, v := range model.Variables {
		if v.Binary {
			rows++
		}
	}
	cols := n + slacks

	c := make([]float64, cols)
	for i, coeff := range model.Objective {
		if model.Sense == Maximize {
			c[i] = -coeff
		} else {
			c[i] = coeff
		}
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)

	row := 0
	slack := n
	for _, con := range model.Constraints {
		for _, term := range con.Terms {
			a.Set(row, term.Var, a.At(row, term.Var)+term.Coeff)
		}
		switch con.Relation {
		case LessOrEqual:
			a.Set(row, slack, 1)
			slack++
		case GreaterOrEqual:
			a.Set(row, slack, -1)
			slack++
		}
		b[row] = con.RHS
		if b[row] < 0 {
			negateRow(a, row)
			b[row] = -b[row]
		}
		row++
	}

	for i, v := range model.Variables {
		if !v.Binary {
			continue
		}
		a.Set(row, i, 1)
		a.Set(row, slack, 1)
		b[row] = 1
		slack++
		row++
	}

	return c, a, b
}

func negateRow(a *mat.Dense, row int) {
	_, cols := a.Dims()
	for j := 0; j < cols; j++ {
		if v := a.At(row, j); v != 0 {
			a.Set(row, j, -v)
		}
	}
}
