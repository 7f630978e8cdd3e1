package db

import (
	"context"
	"fmt"

	"github.com/DiegoRubas/SCC-Solver/pkg/sheetssql"
)

// DB provides run history operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{ssql: ssql}
}

// Open opens the run history spreadsheet, creating its tables when missing
func Open(ctx context.Context, client sheetssql.SheetsClient, spreadsheetID string) (*DB, error) {
	schema, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(ctx, client, spreadsheetID, schema)
	if err != nil {
		return nil, err
	}

	return NewDB(ssql), nil
}

// InsertRun appends the run row and then its assignment rows.
// Sheets has no transactions, so a failure between the two leaves a run without assignments.
func (db *DB) InsertRun(ctx context.Context, run *Run, assignments []Assignment) error {
	if err := sheetssql.InsertModel(ctx, db.ssql, *run); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := sheetssql.InsertModels(ctx, db.ssql, assignments); err != nil {
		return fmt.Errorf("failed to insert assignments for run %s: %w", run.ID, err)
	}

	return nil
}

// GetRuns retrieves all run records in insertion order
func (db *DB) GetRuns(ctx context.Context) ([]Run, error) {
	runs, err := sheetssql.GetTableAs[Run](ctx, db.ssql, "run")
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	return runs, nil
}

// GetAssignments retrieves the assignments recorded for one run
func (db *DB) GetAssignments(ctx context.Context, runID string) ([]Assignment, error) {
	all, err := sheetssql.GetTableAs[Assignment](ctx, db.ssql, "assignment")
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	assignments := make([]Assignment, 0)
	for _, a := range all {
		if a.RunID == runID {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}
