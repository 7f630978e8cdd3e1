package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/pkg/db"
)

// ListRunsStore defines the database operations needed to list runs
type ListRunsStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
}

// ListRuns returns every recorded run, newest first
func ListRuns(ctx context.Context, store ListRunsStore, logger *zap.Logger) ([]db.Run, error) {
	logger.Debug("Fetching runs")

	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	slices.SortStableFunc(runs, func(a, b db.Run) int {
		return cmp.Compare(parseCreatedAt(b.CreatedAt), parseCreatedAt(a.CreatedAt))
	})

	logger.Debug("Found runs", zap.Int("count", len(runs)))
	return runs, nil
}

// parseCreatedAt returns Unix nanoseconds, sorting unparseable timestamps last
func parseCreatedAt(s string) int64 {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0
	}
	return t.UnixNano()
}
