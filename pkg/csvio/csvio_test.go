package csvio

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

func TestParticipantFile_LoadParticipants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Participants.csv")
	content := "\ufeffCandidate Name,Score,University,1st choice,2nd choice,3rd choice\n" +
		"Ana,\"9,5\",Uni A,Alpha,Beta,\n" +
		",,,,,\n" +
		"Ben,7,Uni B,Beta\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	source := NewParticipantFile(path, model.DefaultColumnSpec())
	assert.Equal(t, "file "+path, source.Describe())

	table, err := source.LoadParticipants(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Candidate Name", table.Header[0])
	require.Len(t, table.Participants, 2)
	assert.Equal(t, 9.5, table.Participants[0].Score)
	assert.Equal(t, []string{"Alpha", "Beta", ""}, table.Participants[0].Choices)
	assert.Equal(t, "Ben", table.Participants[1].Name)
}

func TestParticipantFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewParticipantFile(filepath.Join(dir, "missing.csv"), model.DefaultColumnSpec()).
		LoadParticipants(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open participant file")

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Candidate Name,Score,1st choice,2nd choice,3rd choice\nAna,high,A,B,C\n"), 0644))

	_, err = NewParticipantFile(bad, model.DefaultColumnSpec()).LoadParticipants(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid score")
}

func TestDirectory_WriteTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewDirectory(dir)
	assert.Equal(t, "directory "+dir, sink.Name())

	tables := []model.Table{
		{
			Name:   "Mission_teams",
			Header: []string{"Mission", "Participants"},
			Rows:   [][]string{{"Alpha", "Ana, Ben"}, {"Beta", ""}},
		},
		{
			Name:   "Result",
			Header: []string{"Candidate Name", "1st choice"},
			Rows:   [][]string{{"Ana", "Alpha"}, {"Ben", "X"}},
		},
	}
	require.NoError(t, sink.WriteTables(context.Background(), tables))

	for _, table := range tables {
		f, err := os.Open(sink.Path(table.Name))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)

		assert.Equal(t, append([][]string{table.Header}, table.Rows...), records, table.Name)
	}

	// a second run replaces the files
	tables[0].Rows = [][]string{{"Alpha", "Cleo"}, {"Beta", "Dan"}}
	require.NoError(t, sink.WriteTables(context.Background(), tables[:1]))

	data, err := os.ReadFile(filepath.Join(dir, "Mission_teams.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Mission,Participants\nAlpha,Cleo\nBeta,Dan\n", string(data))
}

func TestDirectory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewDirectory(t.TempDir()).WriteTables(ctx, []model.Table{{Name: "Result"}})
	assert.ErrorIs(t, err, context.Canceled)
}
