package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/internal/config"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/allocator"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
	"github.com/DiegoRubas/SCC-Solver/pkg/db"
)

// ParticipantSource provides the participant table (a sheet tab or a CSV export)
type ParticipantSource interface {
	Describe() string
	LoadParticipants(ctx context.Context) (*model.ParticipantTable, error)
}

// ResultSink receives the result tables (a directory of CSV files or a spreadsheet)
type ResultSink interface {
	Name() string
	WriteTables(ctx context.Context, tables []model.Table) error
}

// SolveAssignmentStore defines the database operations needed to record a run
type SolveAssignmentStore interface {
	InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error
}

// SolveOptions overrides configuration for a single run
type SolveOptions struct {
	// Backend overrides cfg.Solver.Backend when set
	Backend string

	// TimeLimit overrides cfg.Solver.TimeLimit when positive
	TimeLimit time.Duration

	// DryRun skips recording the run in the store
	DryRun bool
}

// SolveResult contains the outcome of a run and what was done with it
type SolveResult struct {
	RunID   string
	Outcome *allocator.AllocationOutcome
	Tables  []model.Table

	// Written lists the sinks that received every table
	Written []string

	// Recorded is true when the run was stored
	Recorded bool
}

// SolveAssignment loads the participants, assigns them to the configured missions, writes the
// result tables to every sink and records the run.
// Sink and store failures do not stop the remaining sinks; they are joined into the returned
// error, which accompanies a non-nil result so the caller can still show the assignment.
func SolveAssignment(
	ctx context.Context,
	source ParticipantSource,
	sinks []ResultSink,
	store SolveAssignmentStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts SolveOptions,
) (*SolveResult, error) {
	backend := cfg.Solver.Backend
	if opts.Backend != "" {
		backend = opts.Backend
	}
	timeLimit := cfg.Solver.TimeLimit
	if opts.TimeLimit > 0 {
		timeLimit = opts.TimeLimit
	}

	logger.Debug("Starting solveAssignment",
		zap.String("source", source.Describe()),
		zap.String("backend", backend),
		zap.Duration("time_limit", timeLimit),
		zap.Bool("dry_run", opts.DryRun))

	s, err := solver.New(backend, cfg.BackendOptions())
	if err != nil {
		return nil, &allocator.ConfigurationError{Field: "solver.backend", Reason: err.Error()}
	}

	table, err := source.LoadParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	missions := cfg.MissionList()
	logger.Debug("Loaded participants",
		zap.Int("participants", len(table.Participants)),
		zap.Int("missions", len(missions)))

	outcome, err := allocator.Allocate(ctx, allocator.AllocationConfig{
		Table:        table,
		Missions:     missions,
		Solver:       s,
		TimeLimit:    timeLimit,
		OrderByScore: cfg.ShouldOrderByScore(),
		NotGranted:   cfg.NotGranted,
	})
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	if outcome.Optimal {
		logger.Info("Assignment solved",
			zap.String("status", outcome.Status.String()),
			zap.Float64("objective", outcome.Objective),
			zap.Duration("elapsed", outcome.Elapsed))
	} else {
		logger.Warn("Optimality not proven, assignment may not be optimal",
			zap.Float64("objective", outcome.Objective),
			zap.Duration("time_limit", timeLimit))
	}

	result := &SolveResult{
		RunID:   uuid.New().String(),
		Outcome: outcome,
		Tables:  outcome.Tables(),
	}

	var errs []error
	for _, sink := range sinks {
		logger.Debug("Writing result tables", zap.String("sink", sink.Name()))
		if err := sink.WriteTables(ctx, result.Tables); err != nil {
			logger.Error("Failed to write result tables", zap.String("sink", sink.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("failed to write results to %s: %w", sink.Name(), err))
			continue
		}
		result.Written = append(result.Written, sink.Name())
	}

	switch {
	case opts.DryRun:
		logger.Info("Dry run, not recording run")
	case store == nil:
		logger.Debug("No run store configured")
	default:
		run, assignments := runRecords(result.RunID, backend, outcome, time.Now())
		if err := store.InsertRun(ctx, run, assignments); err != nil {
			errs = append(errs, fmt.Errorf("failed to record run %s: %w", result.RunID, err))
		} else {
			result.Recorded = true
			logger.Debug("Recorded run", zap.String("run_id", result.RunID), zap.Int("assignments", len(assignments)))
		}
	}

	return result, errors.Join(errs...)
}

// runRecords converts an outcome into the rows stored for it
func runRecords(runID, backend string, outcome *allocator.AllocationOutcome, now time.Time) (*db.Run, []db.Assignment) {
	run := &db.Run{
		ID:               runID,
		CreatedAt:        now.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano),
		Backend:          backend,
		Status:           outcome.Status.String(),
		Objective:        outcome.Objective,
		ParticipantCount: len(outcome.Participants),
		MissionCount:     len(outcome.Missions),
	}

	assignments := make([]db.Assignment, len(outcome.Assignments))
	for k, a := range outcome.Assignments {
		assignments[k] = db.Assignment{
			ID:          uuid.New().String(),
			RunID:       runID,
			Participant: a.Participant,
			Mission:     a.Mission,
			Rank:        a.Rank,
		}
	}

	return run, assignments
}
