package allocator

import (
	"fmt"
	"math"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

// ModelName is the name given to every assignment model
const ModelName = "SCC_Solver"

// AssignmentModel is the binary program for one run together with its variable grid
type AssignmentModel struct {
	Model *solver.Model

	// Vars[i][j] is the model variable index of x[i][j]
	Vars [][]int
}

// BuildModel constructs the assignment program:
//
//	x[i][j] binary for every participant i and mission j
//	sum_i x[i][j] == capacity[j]   for every mission (every seat is filled)
//	sum_j x[i][j] <= 1             for every participant
//	maximize sum_ij x[i][j] * preference[i][j] * score[i]
func BuildModel(participants []model.Participant, missions []model.Mission, prefs []PreferenceVector) (*AssignmentModel, error) {
	if err := validateProblem(participants, missions); err != nil {
		return nil, err
	}
	if len(prefs) != len(participants) {
		return nil, configErrorf("preferences", "got %d vectors for %d participants", len(prefs), len(participants))
	}

	m := solver.NewModel(ModelName, solver.Maximize)

	vars := make([][]int, len(participants))
	for i, p := range participants {
		if len(prefs[i]) != len(missions) {
			return nil, configErrorf("preferences", "vector for %s has %d entries for %d missions", p.Name, len(prefs[i]), len(missions))
		}
		vars[i] = make([]int, len(missions))
		for j := range missions {
			v := m.AddBinary(fmt.Sprintf("x_%d_%d", i, j))
			vars[i][j] = v
			m.SetObjectiveCoeff(v, float64(prefs[i][j])*p.Score)
		}
	}

	for j, mission := range missions {
		terms := make([]solver.Term, len(participants))
		for i := range participants {
			terms[i] = solver.Term{Var: vars[i][j], Coeff: 1}
		}
		err := m.AddConstraint(solver.Constraint{
			Name:     fmt.Sprintf("MaxParticipants_%d", j),
			Terms:    terms,
			Relation: solver.Equal,
			RHS:      float64(mission.Capacity),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add capacity constraint for %s: %w", mission.Name, err)
		}
	}

	for i, p := range participants {
		terms := make([]solver.Term, len(missions))
		for j := range missions {
			terms[j] = solver.Term{Var: vars[i][j], Coeff: 1}
		}
		err := m.AddConstraint(solver.Constraint{
			Name:     fmt.Sprintf("OneSlot_%d", i),
			Terms:    terms,
			Relation: solver.LessOrEqual,
			RHS:      1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add exclusivity constraint for %s: %w", p.Name, err)
		}
	}

	return &AssignmentModel{Model: m, Vars: vars}, nil
}

// validateProblem rejects inputs that cannot form an assignment model
func validateProblem(participants []model.Participant, missions []model.Mission) error {
	if len(participants) == 0 {
		return configErrorf("participants", "no participants")
	}
	if len(missions) == 0 {
		return configErrorf("missions", "mission list is empty")
	}

	seenMissions := make(map[string]bool, len(missions))
	for _, m := range missions {
		if m.Name == "" {
			return configErrorf("missions", "mission name is empty")
		}
		if seenMissions[m.Name] {
			return configErrorf("missions", "duplicate mission %q", m.Name)
		}
		seenMissions[m.Name] = true
		if m.Capacity <= 0 {
			return configErrorf("capacity", "mission %q has non-positive capacity %d", m.Name, m.Capacity)
		}
	}

	seenParticipants := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seenParticipants[p.Name] {
			return configErrorf("participants", "duplicate participant %q", p.Name)
		}
		seenParticipants[p.Name] = true
		if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
			return configErrorf("score", "participant %q has non-finite score %g", p.Name, p.Score)
		}
	}

	return nil
}
