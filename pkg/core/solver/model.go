package solver

import (
	"fmt"
	"math"
)

// Sense is the optimisation direction of a model
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Relation is the comparison operator of a linear constraint
type Relation int

const (
	Equal Relation = iota
	LessOrEqual
	GreaterOrEqual
)

func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	default:
		return "=="
	}
}

// Variable is a single decision variable of a model
type Variable struct {
	Name   string
	Binary bool
}

// Term is one coefficient * variable product of a linear expression
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is a named linear row: sum(Terms) <Relation> RHS
type Constraint struct {
	Name     string
	Terms    []Term
	Relation Relation
	RHS      float64
}

// Model is a linear (integer) program handed to a Solver.
// Objective holds one coefficient per variable, in variable order.
type Model struct {
	Name        string
	Sense       Sense
	Variables   []Variable
	Constraints []Constraint
	Objective   []float64
}

// NewModel creates an empty model with the given name and sense
func NewModel(name string, sense Sense) *Model {
	return &Model{
		Name:  name,
		Sense: sense,
	}
}

// AddBinary appends a binary variable and returns its index
func (m *Model) AddBinary(name string) int {
	m.Variables = append(m.Variables, Variable{Name: name, Binary: true})
	m.Objective = append(m.Objective, 0)
	return len(m.Variables) - 1
}

// AddConstraint appends a constraint after checking that every term references a known variable
func (m *Model) AddConstraint(c Constraint) error {
	if len(c.Terms) == 0 {
		return fmt.Errorf("constraint %s has no terms", c.Name)
	}
	for _, term := range c.Terms {
		if term.Var < 0 || term.Var >= len(m.Variables) {
			return fmt.Errorf("constraint %s references unknown variable %d", c.Name, term.Var)
		}
	}
	m.Constraints = append(m.Constraints, c)
	return nil
}

// SetObjectiveCoeff sets the objective coefficient of a variable
func (m *Model) SetObjectiveCoeff(v int, coeff float64) {
	m.Objective[v] = coeff
}

// Evaluate returns the objective value of the given variable values
func (m *Model) Evaluate(values []float64) float64 {
	var total float64
	for i, coeff := range m.Objective {
		if i < len(values) {
			total += coeff * values[i]
		}
	}
	return total
}

// checkFinite rejects NaN and infinite coefficients and right-hand sides
func (m *Model) checkFinite() error {
	for i, coeff := range m.Objective {
		if !isFinite(coeff) {
			return fmt.Errorf("objective coefficient of %s is %g", m.Variables[i].Name, coeff)
		}
	}
	for _, con := range m.Constraints {
		if !isFinite(con.RHS) {
			return fmt.Errorf("constraint %s has right-hand side %g", con.Name, con.RHS)
		}
		for _, term := range con.Terms {
			if !isFinite(term.Coeff) {
				return fmt.Errorf("constraint %s has coefficient %g", con.Name, term.Coeff)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Violation describes one constraint or bound that a set of values breaks
type Violation struct {
	Name     string
	Activity float64
	Relation Relation
	RHS      float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %g %s %g", v.Name, v.Activity, v.Relation, v.RHS)
}

// Violations checks values against every constraint and binary bound.
// An empty result means the values are feasible within tol.
func (m *Model) Violations(values []float64, tol float64) []Violation {
	var violations []Violation

	if len(values) != len(m.Variables) {
		return []Violation{{
			Name:     "dimension",
			Activity: float64(len(values)),
			Relation: Equal,
			RHS:      float64(len(m.Variables)),
		}}
	}

	for i, v := range m.Variables {
		if !v.Binary {
			continue
		}
		if math.Abs(values[i]) > tol && math.Abs(values[i]-1) > tol {
			violations = append(violations, Violation{Name: v.Name, Activity: values[i], Relation: Equal, RHS: 1})
		}
	}

	for _, c := range m.Constraints {
		var activity float64
		for _, term := range c.Terms {
			activity += term.Coeff * values[term.Var]
		}

		broken := false
		switch c.Relation {
		case Equal:
			broken = math.Abs(activity-c.RHS) > tol
		case LessOrEqual:
			broken = activity > c.RHS+tol
		case GreaterOrEqual:
			broken = activity < c.RHS-tol
		}
		if broken {
			violations = append(violations, Violation{Name: c.Name, Activity: activity, Relation: c.Relation, RHS: c.RHS})
		}
	}

	return violations
}
