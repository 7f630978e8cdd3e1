package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/crillab/gophersat/maxsat"
)

// DefaultMaxSATPrecision is the largest number of decimal digits used when objective
// coefficients are scaled to integer clause weights
const DefaultMaxSATPrecision = 6

// maxTotalWeight bounds the sum of soft clause weights so gophersat's integer costs cannot overflow
const maxTotalWeight = 1 << 52

// MaxSAT solves pure-binary models exactly as a weighted pseudo-boolean problem with gophersat.
// Constraints must have integer coefficients. Objective coefficients are scaled by the smallest
// power of ten, at most 10^precision, that makes every one of them an integer. When no such
// scale exists the weights are rounded and the solution is reported as StatusTimeLimited:
// feasible, but not proven optimal.
type MaxSAT struct {
	precision int
}

// NewMaxSAT returns the MaxSAT backend; a negative precision selects the default
func NewMaxSAT(precision int) *MaxSAT {
	if precision < 0 {
		precision = DefaultMaxSATPrecision
	}
	return &MaxSAT{precision: precision}
}

// Name returns the backend name
func (s *MaxSAT) Name() string {
	return BackendMaxSAT
}

type maxsatResult struct {
	model maxsat.Model
	err   error
}

// Solve encodes the model, runs gophersat and maps its outcome to a Solution.
// gophersat cannot be interrupted, so on timeout the search keeps running in the
// background until it finishes and its result is discarded.
func (s *MaxSAT) Solve(ctx context.Context, model *Model, opts Options) (*Solution, error) {
	start := time.Now()

	constrs, exact, err := s.encode(model)
	if err != nil {
		return &Solution{Status: StatusError}, err
	}

	ctx, cancel := withTimeLimit(ctx, opts)
	defer cancel()

	results := make(chan maxsatResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- maxsatResult{err: fmt.Errorf("maxsat panicked: %v", r)}
			}
		}()
		found, _ := maxsat.New(constrs...).Solve()
		results <- maxsatResult{model: found}
	}()

	var res maxsatResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return &Solution{Status: StatusTimeLimited, Elapsed: time.Since(start)}, nil
	}

	elapsed := time.Since(start)

	if res.err != nil {
		return &Solution{Status: StatusError, Elapsed: elapsed}, res.err
	}
	if res.model == nil {
		return &Solution{Status: StatusInfeasible, Elapsed: elapsed}, nil
	}

	values := make([]float64, len(model.Variables))
	for i, v := range model.Variables {
		if res.model[v.Name] {
			values[i] = 1
		}
	}

	status := StatusOptimal
	if !exact {
		status = StatusTimeLimited
	}

	return &Solution{
		Status:    status,
		Values:    values,
		Objective: model.Evaluate(values),
		Elapsed:   elapsed,
	}, nil
}

// encode translates the model into gophersat constraints.
// Every linear row becomes one or two hard "at least" PB constraints over positive
// coefficients, and every non-zero objective coefficient becomes a weighted unit clause.
// exact is false when the clause weights are rounded objective coefficients.
func (s *MaxSAT) encode(model *Model) (constrs []maxsat.Constr, exact bool, err error) {
	if err := model.checkFinite(); err != nil {
		return nil, false, err
	}

	seen := make(map[string]bool, len(model.Variables))
	for _, v := range model.Variables {
		if !v.Binary {
			return nil, false, fmt.Errorf("maxsat backend only supports binary variables, %s is continuous", v.Name)
		}
		if seen[v.Name] {
			return nil, false, fmt.Errorf("duplicate variable name %s", v.Name)
		}
		seen[v.Name] = true
	}

	for _, con := range model.Constraints {
		coeffs := make([]int, len(con.Terms))
		for i, term := range con.Terms {
			if term.Coeff != math.Trunc(term.Coeff) {
				return nil, false, fmt.Errorf("constraint %s has non-integer coefficient %g", con.Name, term.Coeff)
			}
			coeffs[i] = int(term.Coeff)
		}
		if con.RHS != math.Trunc(con.RHS) {
			return nil, false, fmt.Errorf("constraint %s has non-integer right-hand side %g", con.Name, con.RHS)
		}
		rhs := int(con.RHS)

		if con.Relation == Equal || con.Relation == GreaterOrEqual {
			if c, ok := atLeast(model, con.Terms, coeffs, rhs, 1); ok {
				constrs = append(constrs, c)
			}
		}
		if con.Relation == Equal || con.Relation == LessOrEqual {
			if c, ok := atLeast(model, con.Terms, coeffs, -rhs, -1); ok {
				constrs = append(constrs, c)
			}
		}
	}

	objective := make([]float64, len(model.Objective))
	for i, coeff := range model.Objective {
		if model.Sense == Minimize {
			coeff = -coeff
		}
		objective[i] = coeff
	}

	scale, exact, ok := objectiveScale(objective, s.precision)
	if !ok {
		return nil, false, fmt.Errorf("objective coefficients of %s are too large for integer weights", model.Name)
	}

	soft := 0
	for i, coeff := range objective {
		weight := int(math.Round(coeff * scale))
		name := model.Variables[i].Name
		switch {
		case weight > 0:
			// Penalised when the variable is false
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(name)}, weight))
			soft++
		case weight < 0:
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(name)}, -weight))
			soft++
		}
	}

	// gophersat needs at least one soft clause to optimise; a tautology costs nothing
	if soft == 0 && len(model.Variables) > 0 {
		name := model.Variables[0].Name
		constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(name), maxsat.Not(name)}, 1))
	}

	return constrs, exact, nil
}

// objectiveScale returns the smallest power of ten up to 10^precision that turns every
// coefficient into an integer. If none does, it returns the largest scale whose total
// weight still fits and exact is false. ok is false when even a scale of 1 overflows.
func objectiveScale(coeffs []float64, precision int) (scale float64, exact bool, ok bool) {
	var total float64
	for _, c := range coeffs {
		total += math.Abs(c)
	}

	for d := 0; d <= precision; d++ {
		next := math.Pow10(d)
		if total*next > maxTotalWeight {
			break
		}
		scale, ok = next, true
		if allIntegral(coeffs, next) {
			return scale, true, true
		}
	}
	return scale, false, ok
}

func allIntegral(coeffs []float64, scale float64) bool {
	for _, c := range coeffs {
		v := c * scale
		if math.Abs(v-math.Round(v)) > 1e-9*math.Max(1, math.Abs(v)) {
			return false
		}
	}
	return true
}

// atLeast builds sign*sum(coeffs*x) >= bound as a PB constraint over positive coefficients.
// Negative coefficients are rewritten through the negated literal: a*x = a + (-a)*¬x.
// ok is false when the constraint is trivially satisfied.
func atLeast(model *Model, terms []Term, coeffs []int, bound int, sign int) (maxsat.Constr, bool) {
	lits := make([]maxsat.Lit, 0, len(terms))
	weights := make([]int, 0, len(terms))

	for i, term := range terms {
		coeff := sign * coeffs[i]
		name := model.Variables[term.Var].Name
		switch {
		case coeff > 0:
			lits = append(lits, maxsat.Var(name))
			weights = append(weights, coeff)
		case coeff < 0:
			lits = append(lits, maxsat.Not(name))
			weights = append(weights, -coeff)
			bound -= coeff
		}
	}

	if bound <= 0 {
		return maxsat.Constr{}, false
	}
	return maxsat.HardPBConstr(lits, weights, bound), true
}
