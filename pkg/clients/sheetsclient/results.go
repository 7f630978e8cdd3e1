package sheetsclient

import (
	"context"
	"fmt"
	"slices"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// ResultPublisher writes result tables to a spreadsheet, one tab per table
type ResultPublisher struct {
	client        *Client
	spreadsheetID string
}

// NewResultPublisher returns a sink publishing to spreadsheetID
func NewResultPublisher(client *Client, spreadsheetID string) *ResultPublisher {
	return &ResultPublisher{client: client, spreadsheetID: spreadsheetID}
}

// Name describes the sink in logs and errors
func (p *ResultPublisher) Name() string {
	return "sheet " + p.spreadsheetID
}

// WriteTables publishes every table to the tab of the same name.
// Missing tabs are created; existing tabs are cleared and overwritten.
func (p *ResultPublisher) WriteTables(ctx context.Context, tables []model.Table) error {
	titles, err := p.client.SheetTitles(ctx, p.spreadsheetID)
	if err != nil {
		return err
	}

	for _, table := range tables {
		if slices.Contains(titles, table.Name) {
			if err := p.client.ClearValues(ctx, p.spreadsheetID, table.Name); err != nil {
				return fmt.Errorf("failed to clear tab %s: %w", table.Name, err)
			}
		} else {
			if _, err := p.client.CreateSheet(ctx, p.spreadsheetID, table.Name); err != nil {
				return fmt.Errorf("failed to create tab %s: %w", table.Name, err)
			}
			titles = append(titles, table.Name)
		}

		if err := p.client.UpdateValues(ctx, p.spreadsheetID, fmt.Sprintf("%s!A1", table.Name), tableValues(table)); err != nil {
			return fmt.Errorf("failed to write tab %s: %w", table.Name, err)
		}
	}

	return nil
}

// tableValues lays a table out as API rows, header first
func tableValues(table model.Table) [][]interface{} {
	values := make([][]interface{}, 0, len(table.Rows)+1)
	values = append(values, stringsToCells(table.Header))
	for _, row := range table.Rows {
		values = append(values, stringsToCells(row))
	}
	return values
}

func stringsToCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, s := range row {
		cells[i] = s
	}
	return cells
}
