package allocator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

// feasibilityTolerance is the slack allowed when re-checking solver values against the model
const feasibilityTolerance = 1e-6

// Allocate runs one assignment: encode preferences, build the model, solve it and extract the views.
//
// Infeasible models return ErrInfeasible and no outcome. A time-limited incumbent is returned with
// Status StatusTimeLimited and Optimal false; time-limited runs without an incumbent, solver
// failures and assignments that break the model return a *SolverError.
func Allocate(ctx context.Context, config AllocationConfig) (*AllocationOutcome, error) {
	if config.Table == nil {
		return nil, configErrorf("participants", "no participant table")
	}
	if config.Solver == nil {
		return nil, configErrorf("solver", "no solver backend")
	}

	participants := orderParticipants(config.Table.Participants, config.OrderByScore)
	if err := validateProblem(participants, config.Missions); err != nil {
		return nil, err
	}

	// Encode preferences and build a fresh model for this run
	prefs := EncodeAll(participants, config.Missions)
	am, err := BuildModel(participants, config.Missions, prefs)
	if err != nil {
		return nil, err
	}

	sol, err := config.Solver.Solve(ctx, am.Model, solver.Options{TimeLimit: config.TimeLimit})
	if err != nil {
		status := solver.StatusError
		if sol != nil {
			status = sol.Status
		}
		return nil, &SolverError{Backend: config.Solver.Name(), Status: status, Err: err}
	}

	switch sol.Status {
	case solver.StatusInfeasible:
		return nil, fmt.Errorf("%w: %d seats across %d missions for %d participants",
			ErrInfeasible, totalCapacity(config.Missions), len(config.Missions), len(participants))
	case solver.StatusTimeLimited:
		if !sol.HasValues() {
			cause := errors.New("time limit reached before a feasible assignment was found")
			if ctx.Err() != nil {
				cause = ctx.Err()
			}
			return nil, &SolverError{Backend: config.Solver.Name(), Status: sol.Status, Err: cause}
		}
	case solver.StatusOptimal:
	default:
		return nil, &SolverError{Backend: config.Solver.Name(), Status: sol.Status, Err: errors.New("solver reported an error")}
	}

	if violations := am.Model.Violations(sol.Values, feasibilityTolerance); len(violations) > 0 {
		return nil, &SolverError{
			Backend: config.Solver.Name(),
			Status:  sol.Status,
			Err:     fmt.Errorf("returned assignment breaks %d constraints, first: %s", len(violations), violations[0]),
		}
	}

	outcome := &AllocationOutcome{
		Status:       sol.Status,
		Optimal:      sol.Status == solver.StatusOptimal,
		Objective:    am.Model.Evaluate(sol.Values),
		Elapsed:      sol.Elapsed,
		Backend:      config.Solver.Name(),
		Participants: participants,
		Missions:     config.Missions,
		Preferences:  prefs,
		Grid:         extractGrid(am, sol.Values),
	}

	if errs := ValidateGrid(outcome.Grid, participants, config.Missions); len(errs) > 0 {
		return nil, &SolverError{Backend: config.Solver.Name(), Status: sol.Status, Err: errs[0]}
	}

	extractViews(outcome, config.Table, config.NotGranted)

	return outcome, nil
}

// orderParticipants returns the participants in model order without touching the input slice
func orderParticipants(participants []model.Participant, byScore bool) []model.Participant {
	ordered := slices.Clone(participants)
	if byScore {
		slices.SortStableFunc(ordered, func(a, b model.Participant) int {
			return cmp.Compare(b.Score, a.Score)
		})
	}
	return ordered
}

func totalCapacity(missions []model.Mission) int {
	total := 0
	for _, m := range missions {
		total += m.Capacity
	}
	return total
}
