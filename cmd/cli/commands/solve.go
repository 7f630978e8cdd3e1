package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/pkg/clients/sheetsclient"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/allocator"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/services"
	"github.com/DiegoRubas/SCC-Solver/pkg/csvio"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	var (
		input     string
		output    string
		publish   bool
		dryRun    bool
		backend   string
		timeLimit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Assign participants to missions and write the result tables",
		Long: `Assign participants to missions, maximising the score-weighted preference of every assignment.

Participants are read from --input (a CSV export) or from the configured participant tab.
Result tables are written as CSV files to the output directory, published to the result
spreadsheet with --publish, and the run is recorded in the configured store unless --dry-run is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("solve command",
				zap.String("input", input),
				zap.Bool("publish", publish),
				zap.Bool("dry_run", dryRun))

			source, err := app.ParticipantSource(input)
			if err != nil {
				return err
			}

			if output == "" {
				output = app.Cfg.OutputDir
			}
			files := csvio.NewDirectory(output)
			sinks := []services.ResultSink{files}

			if publish {
				if app.Cfg.ResultSheetID == "" {
					return fmt.Errorf("--publish needs result_sheet_id in the config")
				}
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				sinks = append(sinks, sheetsclient.NewResultPublisher(client, app.Cfg.ResultSheetID))
			}

			var store services.SolveAssignmentStore
			if !dryRun {
				runStore, err := app.RunStore()
				if err != nil {
					return err
				}
				if runStore != nil {
					store = runStore
				}
			}

			result, err := services.SolveAssignment(app.Ctx, source, sinks, store, app.Cfg, app.Logger, services.SolveOptions{
				Backend:   backend,
				TimeLimit: timeLimit,
				DryRun:    dryRun,
			})
			if result != nil {
				out := cmd.OutOrStdout()
				printSolveResult(out, result)
				if slices.Contains(result.Written, files.Name()) {
					for _, table := range result.Tables {
						fmt.Fprintf(out, "Wrote %s\n", files.Path(table.Name))
					}
					fmt.Fprintln(out)
				}
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Participant CSV file (defaults to the configured participant tab)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for the result CSV files (defaults to output_dir)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Also publish the result tables to result_sheet_id")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not record the run in the run store")
	cmd.Flags().StringVar(&backend, "backend", "", "Solver backend: simplex or maxsat (defaults to solver.backend)")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "Solver time limit, e.g. 30s (defaults to solver.time_limit)")

	return cmd
}

// printSolveResult renders the assignment summary
func printSolveResult(w io.Writer, result *services.SolveResult) {
	outcome := result.Outcome

	fmt.Fprintf(w, "\n✓ Assignment found (%s, %s backend)\n\n", outcome.Status, outcome.Backend)
	if !outcome.Optimal {
		fmt.Fprintf(w, "⚠️  Optimality was not proven (time limit reached or weights rounded): this assignment may not be optimal\n\n")
	}
	fmt.Fprintf(w, "Run ID:    %s\n", result.RunID)
	fmt.Fprintf(w, "Objective: %g\n\n", outcome.Objective)

	nameWidth := len("Mission")
	for _, r := range outcome.Rosters {
		nameWidth = max(nameWidth, len(r.Mission))
	}

	fmt.Fprintf(w, "%-*s  %-5s %-5s %-5s %-8s %s\n", nameWidth, "Mission", "1st", "2nd", "3rd", "Unlisted", "Participants")
	for j, roster := range outcome.Rosters {
		stats := outcome.ChoiceStats[j]
		fmt.Fprintf(w, "%-*s  %-5d %-5d %-5d %-8d %s\n", nameWidth, roster.Mission,
			rankCount(stats, 0), rankCount(stats, 1), rankCount(stats, 2), stats.Unlisted,
			strings.Join(roster.Participants, allocator.RosterSeparator))
	}

	if len(outcome.Unassigned) > 0 {
		fmt.Fprintf(w, "\nNot assigned (%d): %s\n", len(outcome.Unassigned), strings.Join(outcome.Unassigned, allocator.RosterSeparator))
	}

	if result.Recorded {
		fmt.Fprintf(w, "\nRun recorded\n")
	}
	fmt.Fprintln(w)
}

func rankCount(stats allocator.ChoiceStats, rank int) int {
	if rank < len(stats.ByRank) {
		return stats.ByRank[rank]
	}
	return 0
}
