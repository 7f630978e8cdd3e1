package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/services"
	"github.com/DiegoRubas/SCC-Solver/pkg/db"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	var showAssignments bool

	cmd := &cobra.Command{
		Use:   "listRuns [run_id]",
		Short: "List recorded runs, or the assignments of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.RunStore()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("no run store configured: set postgres_url or database_sheet_id")
			}

			runs, err := services.ListRuns(app.Ctx, store, app.Logger)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				runs = filterRuns(runs, args[0])
				if len(runs) == 0 {
					return fmt.Errorf("run %s not found", args[0])
				}
				showAssignments = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d runs:\n\n", len(runs))
			printRuns(out, runs)

			if !showAssignments {
				return nil
			}
			for _, run := range runs {
				assignments, err := store.GetAssignments(app.Ctx, run.ID)
				if err != nil {
					return fmt.Errorf("failed to fetch assignments for run %s: %w", run.ID, err)
				}
				fmt.Fprintf(out, "Run %s:\n", run.ID)
				printRunAssignments(out, assignments)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAssignments, "assignments", "a", false, "Also print the assignments of every run")

	return cmd
}

func filterRuns(runs []db.Run, id string) []db.Run {
	for _, r := range runs {
		if r.ID == id {
			return []db.Run{r}
		}
	}
	return nil
}

func printRuns(w io.Writer, runs []db.Run) {
	for _, r := range runs {
		fmt.Fprintf(w, "- %s  %s  %-8s %-12s objective %g (%d participants, %d missions)\n",
			r.ID, r.CreatedAt, r.Backend, r.Status, r.Objective, r.ParticipantCount, r.MissionCount)
	}
	fmt.Fprintln(w)
}

func printRunAssignments(w io.Writer, assignments []db.Assignment) {
	if len(assignments) == 0 {
		fmt.Fprintf(w, "  (no assignments)\n\n")
		return
	}
	for _, a := range assignments {
		fmt.Fprintf(w, "  %-30s %-20s %s\n", a.Participant, a.Mission, rankLabel(a.Rank))
	}
	fmt.Fprintln(w)
}

// rankLabel renders a stored choice rank
func rankLabel(rank int) string {
	switch rank {
	case 0:
		return "1st choice"
	case 1:
		return "2nd choice"
	case 2:
		return "3rd choice"
	case -1:
		return "not listed"
	default:
		return fmt.Sprintf("choice %d", rank+1)
	}
}
