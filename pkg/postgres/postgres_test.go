package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/db"
)

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)

	require.NotEmpty(t, files)
	assert.Equal(t, []string{"001_init.sql", "002_assignment_order.sql"}, files)
	assert.IsIncreasing(t, files)
}

// TestRunHistory needs a scratch database: SCC_TEST_POSTGRES_URL=postgres://... go test ./pkg/postgres
func TestRunHistory(t *testing.T) {
	connString := os.Getenv("SCC_TEST_POSTGRES_URL")
	if connString == "" {
		t.Skip("SCC_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	store, err := NewDB(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.RunMigrations(ctx))
	require.NoError(t, store.RunMigrations(ctx), "migrations are applied once")

	var _ db.RunStore = store

	run := &db.Run{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano),
		Backend:          "simplex",
		Status:           "optimal",
		Objective:        72,
		ParticipantCount: 3,
		MissionCount:     2,
	}
	// Model order, not alphabetical
	assignments := []db.Assignment{
		{ID: uuid.NewString(), RunID: run.ID, Participant: "Zoe", Mission: "Alpha", Rank: 0},
		{ID: uuid.NewString(), RunID: run.ID, Participant: "Ana", Mission: "Beta", Rank: -1},
		{ID: uuid.NewString(), RunID: run.ID, Participant: "Max", Mission: "Beta", Rank: 1},
	}
	require.NoError(t, store.InsertRun(ctx, run, assignments))

	runs, err := store.GetRuns(ctx)
	require.NoError(t, err)
	assert.Contains(t, runs, *run)

	got, err := store.GetAssignments(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, assignments, got)

	err = store.InsertRun(ctx, &db.Run{ID: uuid.NewString(), CreatedAt: "yesterday"}, nil)
	assert.Error(t, err)
}
