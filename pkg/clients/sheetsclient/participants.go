package sheetsclient

import (
	"context"
	"fmt"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// ParticipantSheet reads the participant table from one tab of a spreadsheet
type ParticipantSheet struct {
	client        *Client
	spreadsheetID string
	tab           string
	columns       model.ColumnSpec
}

// NewParticipantSheet returns a participant source reading spreadsheetID!tab
func NewParticipantSheet(client *Client, spreadsheetID, tab string, columns model.ColumnSpec) *ParticipantSheet {
	return &ParticipantSheet{
		client:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
		columns:       columns,
	}
}

// Describe names the source in logs
func (s *ParticipantSheet) Describe() string {
	return fmt.Sprintf("sheet %s!%s", s.spreadsheetID, s.tab)
}

// LoadParticipants fetches and parses the participant tab. The first row must be the header.
func (s *ParticipantSheet) LoadParticipants(ctx context.Context) (*model.ParticipantTable, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participant data: %w", err)
	}

	table, err := model.ParseParticipantTable(cellsToStrings(values), s.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to parse participant tab %s: %w", s.tab, err)
	}

	return table, nil
}

// cellsToStrings converts API cell values to their text form
func cellsToStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				rows[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return rows
}
