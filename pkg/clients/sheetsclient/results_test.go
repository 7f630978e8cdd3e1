package sheetsclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

func TestResultPublisher_WriteTables(t *testing.T) {
	fake := newFakeSheets()
	fake.addTab("Mission_teams", [][]interface{}{
		{"stale", "data"},
		{"from", "last run"},
	})
	client := newTestClient(t, fake)

	publisher := NewResultPublisher(client, "results456")
	assert.Equal(t, "sheet results456", publisher.Name())

	tables := []model.Table{
		{
			Name:   "Participant_mission",
			Header: []string{"Participant", "Mission"},
			Rows:   [][]string{{"Ana", "Alpha"}},
		},
		{
			Name:   "Mission_teams",
			Header: []string{"Mission", "Participants"},
			Rows:   [][]string{{"Alpha", "Ana"}},
		},
	}

	require.NoError(t, publisher.WriteTables(context.Background(), tables))

	assert.Equal(t, []string{"Mission_teams", "Participant_mission"}, fake.titles)
	assert.Equal(t, [][]interface{}{
		{"Participant", "Mission"},
		{"Ana", "Alpha"},
	}, fake.tabs["Participant_mission"])
	assert.Equal(t, [][]interface{}{
		{"Mission", "Participants"},
		{"Alpha", "Ana"},
	}, fake.tabs["Mission_teams"])

	assert.Contains(t, fake.calls, "POST results456:batchUpdate", "missing tab is created")
	assert.Contains(t, fake.calls, "POST results456/values/Mission_teams:clear", "existing tab is cleared")
}

func TestTableValues(t *testing.T) {
	values := tableValues(model.Table{
		Header: []string{"Mission", "Participants"},
		Rows:   [][]string{{"Alpha", "Ana, Ben"}, {"Beta", ""}},
	})

	assert.Equal(t, [][]interface{}{
		{"Mission", "Participants"},
		{"Alpha", "Ana, Ben"},
		{"Beta", ""},
	}, values)
}
