package allocator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

func solvedOutcome(t *testing.T) *AllocationOutcome {
	t.Helper()

	table := newTestTable(t,
		testParticipant{name: "Ana", score: 9, choices: []string{"Alpha", "Beta"}},
		testParticipant{name: "Ben", score: 7, choices: []string{"Alpha", "Beta"}},
		testParticipant{name: "Cleo", score: 6, choices: []string{"Beta", "Alpha"}},
		testParticipant{name: "Dan", score: 2, choices: []string{"Gamma"}},
	)
	outcome, err := Allocate(context.Background(), AllocationConfig{
		Table:        table,
		Missions:     missions("Alpha", 1, "Beta", 2, "Gamma", 1),
		Solver:       solver.NewSimplex(),
		OrderByScore: true,
		NotGranted:   "X",
	})
	require.NoError(t, err)
	return outcome
}

func TestExtractViews(t *testing.T) {
	outcome := solvedOutcome(t)

	assert.Equal(t, []Assignment{
		{Participant: "Ana", Mission: "Alpha", Rank: 0},
		{Participant: "Ben", Mission: "Beta", Rank: 1},
		{Participant: "Cleo", Mission: "Beta", Rank: 0},
		{Participant: "Dan", Mission: "Gamma", Rank: 0},
	}, outcome.Assignments)
	assert.Empty(t, outcome.Unassigned)

	assert.Equal(t, []ChoiceStats{
		{Mission: "Alpha", ByRank: []int{1, 0, 0}},
		{Mission: "Beta", ByRank: []int{1, 1, 0}},
		{Mission: "Gamma", ByRank: []int{1, 0, 0}},
	}, outcome.ChoiceStats)
}

func TestExtractViews_UnlistedAssignment(t *testing.T) {
	table := newTestTable(t,
		testParticipant{name: "Ana", score: 3, choices: []string{"Alpha"}},
		testParticipant{name: "Ben", score: 1, choices: []string{"Alpha"}},
	)
	outcome, err := Allocate(context.Background(), AllocationConfig{
		Table:      table,
		Missions:   missions("Alpha", 1, "Beta", 1),
		Solver:     solver.NewSimplex(),
		NotGranted: "X",
	})
	require.NoError(t, err)

	require.Len(t, outcome.Assignments, 2)
	assert.Equal(t, Assignment{Participant: "Ben", Mission: "Beta", Rank: Unlisted}, outcome.Assignments[1])
	assert.Equal(t, 1, outcome.ChoiceStats[1].Unlisted)
	assert.Equal(t, []string{"Ben", "X", "X", "X", "notes Ben"}, outcome.AnnotatedRoster.Rows[1])
}

func TestOutcomeTables(t *testing.T) {
	outcome := solvedOutcome(t)

	tables := outcome.Tables()
	require.Len(t, tables, 3)

	assert.Equal(t, model.Table{
		Name:   TableParticipantMission,
		Header: []string{"Participant", "Mission"},
		Rows: [][]string{
			{"Ana", "Alpha"},
			{"Ben", "Beta"},
			{"Cleo", "Beta"},
			{"Dan", "Gamma"},
		},
	}, tables[0])

	assert.Equal(t, model.Table{
		Name:   TableMissionRoster,
		Header: []string{"Mission", "Participants"},
		Rows: [][]string{
			{"Alpha", "Ana"},
			{"Beta", "Ben, Cleo"},
			{"Gamma", "Dan"},
		},
	}, tables[1])

	annotated := tables[2]
	assert.Equal(t, TableAnnotatedRoster, annotated.Name)
	assert.NotContains(t, annotated.Header, "Score")
	assert.NotContains(t, annotated.Header, "University")
	assert.Equal(t, [][]string{
		{"Ana", "Alpha", "X", "X", "notes Ana"},
		{"Ben", "X", "Beta", "X", "notes Ben"},
		{"Cleo", "Beta", "X", "X", "notes Cleo"},
		{"Dan", "Gamma", "X", "X", "notes Dan"},
	}, annotated.Rows)
}

func TestMissionRosterTable_EmptyRoster(t *testing.T) {
	outcome := &AllocationOutcome{Rosters: []MissionRoster{{Mission: "Alpha", Participants: []string{}}}}

	assert.Equal(t, [][]string{{"Alpha", ""}}, outcome.MissionRosterTable().Rows)
}
