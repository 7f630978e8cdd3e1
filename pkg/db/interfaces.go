package db

import "context"

// RunStore records solves and lists them back.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
type RunStore interface {
	InsertRun(ctx context.Context, run *Run, assignments []Assignment) error
	GetRuns(ctx context.Context) ([]Run, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
}
