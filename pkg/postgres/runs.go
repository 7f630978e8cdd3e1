package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/DiegoRubas/SCC-Solver/pkg/db"
)

// InsertRun stores a run and its assignments in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error {
	createdAt, err := time.Parse(time.RFC3339Nano, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at for run %s: %w", run.ID, err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO run (id, created_at, backend, status, objective, participant_count, mission_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, createdAt.UTC(), run.Backend, run.Status, run.Objective, run.ParticipantCount, run.MissionCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if len(assignments) > 0 {
		batch := &pgx.Batch{}
		for _, a := range assignments {
			batch.Queue(`
				INSERT INTO assignment (id, run_id, participant, mission, rank)
				VALUES ($1, $2, $3, $4, $5)
			`, a.ID, a.RunID, a.Participant, a.Mission, a.Rank)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert assignments for run %s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	return nil
}

// GetRuns retrieves all run records, oldest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, backend, status, objective, participant_count, mission_count
		FROM run
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &createdAt, &r.Backend, &r.Status, &r.Objective, &r.ParticipantCount, &r.MissionCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves the assignments recorded for one run, in insertion order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, participant, mission, rank
		FROM assignment
		WHERE run_id = $1
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Assignment, error) {
		var a db.Assignment
		err := row.Scan(&a.ID, &a.RunID, &a.Participant, &a.Mission, &a.Rank)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}

	return assignments, nil
}
