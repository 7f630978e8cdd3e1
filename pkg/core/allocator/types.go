package allocator

import (
	"time"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

// PreferenceWeights maps a choice rank (0 = first choice) to its objective weight.
// Ranks beyond the schedule weigh 0.
var PreferenceWeights = []int{4, 2, 1}

// Unlisted is the rank reported for an assignment to a mission the participant did not choose
const Unlisted = -1

// PreferenceVector holds one weight per active mission, in mission order
type PreferenceVector []int

// AllocationConfig contains everything needed for one assignment run.
// A fresh model is built on every call; nothing is shared between runs.
type AllocationConfig struct {
	// Table is the participant sheet; its participants are never mutated
	Table *model.ParticipantTable

	// Missions are the active missions with their exact capacities, in configured order
	Missions []model.Mission

	// Solver is the integer programming backend
	Solver solver.Solver

	// TimeLimit bounds the solve; zero selects solver.DefaultTimeLimit
	TimeLimit time.Duration

	// OrderByScore sorts participants by descending score (stable) before modelling
	OrderByScore bool

	// NotGranted replaces redacted choice cells in the annotated roster
	NotGranted string
}

// Assignment is one row of the participant -> mission view
type Assignment struct {
	Participant string
	Mission     string

	// Rank is the choice rank the mission was listed at (0 = first), or Unlisted
	Rank int
}

// MissionRoster lists the participants assigned to one mission, in participant order
type MissionRoster struct {
	Mission      string
	Participants []string
}

// ChoiceStats counts, for one mission, how many assignees listed it at each rank
type ChoiceStats struct {
	Mission  string
	ByRank   []int
	Unlisted int
}

// AllocationOutcome represents the result of an assignment run
type AllocationOutcome struct {
	// Status is optimal, or time-limited when the best incumbent is returned unproven
	Status solver.Status

	// Optimal is false when optimality was not proven within the time limit
	Optimal bool

	// Objective is sum(x[i][j] * weight[i][j] * score[i]) of the returned assignment
	Objective float64

	Elapsed time.Duration
	Backend string

	// Participants in model order (index i of the variable grid)
	Participants []model.Participant
	Missions     []model.Mission
	Preferences  []PreferenceVector

	// Grid is the solved x[i][j]
	Grid [][]bool

	// Assignments has one row per assigned participant, in participant order
	Assignments []Assignment

	// Rosters has one entry per mission, in mission order
	Rosters []MissionRoster

	// Unassigned participants in participant order
	Unassigned []string

	// AnnotatedRoster is the participant sheet with ungranted choices redacted
	AnnotatedRoster model.Table

	ChoiceStats []ChoiceStats
}
