package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/services"
)

// ListParticipantsCmd creates the listParticipants command
func ListParticipantsCmd(app *AppContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "listParticipants",
		Short: "List participants with their scores and ranked choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listParticipants command", zap.String("input", input))

			source, err := app.ParticipantSource(input)
			if err != nil {
				return err
			}

			table, err := services.ListParticipants(app.Ctx, source, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d participants in %s:\n\n", len(table.Participants), source.Describe())
			printParticipants(out, table.Participants)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Participant CSV file (defaults to the configured participant tab)")

	return cmd
}

func printParticipants(w io.Writer, participants []model.Participant) {
	for _, p := range participants {
		choices := make([]string, 0, len(p.Choices))
		for _, c := range p.Choices {
			if c == "" {
				c = "-"
			}
			choices = append(choices, c)
		}
		fmt.Fprintf(w, "- %s (%s): %s\n", p.Name, strconv.FormatFloat(p.Score, 'f', -1, 64), strings.Join(choices, " > "))
	}
	fmt.Fprintln(w)
}
