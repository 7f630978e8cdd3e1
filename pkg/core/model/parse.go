package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ColumnSpec names the columns the participant sheet must provide
type ColumnSpec struct {
	Name     string
	Score    string
	Choices  []string
	Redacted []string
}

// DefaultColumnSpec returns the column layout of the original participant export
func DefaultColumnSpec() ColumnSpec {
	return ColumnSpec{
		Name:     DefaultNameColumn,
		Score:    DefaultScoreColumn,
		Choices:  slices.Clone(DefaultChoiceColumns),
		Redacted: slices.Clone(DefaultRedactedColumns),
	}
}

// ParseParticipantTable converts raw sheet rows (header first) into a ParticipantTable.
// Rows with a blank name are skipped. Redacted columns missing from the header are ignored;
// name, score and choice columns are required.
func ParseParticipantTable(raw [][]string, spec ColumnSpec) (*ParticipantTable, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	header := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		header[i] = strings.TrimSpace(cell)
	}

	indexOf := func(column string) int {
		return slices.Index(header, column)
	}

	nameIdx := indexOf(spec.Name)
	if nameIdx == -1 {
		return nil, fmt.Errorf("missing required field in header: %s", spec.Name)
	}
	scoreIdx := indexOf(spec.Score)
	if scoreIdx == -1 {
		return nil, fmt.Errorf("missing required field in header: %s", spec.Score)
	}

	table := &ParticipantTable{
		Header:         header,
		ChoiceColumns:  make([]int, 0, len(spec.Choices)),
		DroppedColumns: []int{scoreIdx},
	}

	for _, column := range spec.Choices {
		idx := indexOf(column)
		if idx == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", column)
		}
		table.ChoiceColumns = append(table.ChoiceColumns, idx)
	}

	for _, column := range spec.Redacted {
		if idx := indexOf(column); idx != -1 && !slices.Contains(table.DroppedColumns, idx) {
			table.DroppedColumns = append(table.DroppedColumns, idx)
		}
	}
	slices.Sort(table.DroppedColumns)

	seen := make(map[string]int)
	for i := 1; i < len(raw); i++ {
		cells := make([]string, len(header))
		for j := range header {
			if j < len(raw[i]) {
				cells[j] = strings.TrimSpace(raw[i][j])
			}
		}

		name := cells[nameIdx]
		// Skip empty rows (rows with no name)
		if name == "" {
			continue
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate participant %q in rows %d and %d", name, prev, i)
		}
		seen[name] = i

		score, err := parseScore(cells[scoreIdx])
		if err != nil {
			return nil, fmt.Errorf("invalid score for participant %q in row %d: %w", name, i, err)
		}

		choices := make([]string, len(table.ChoiceColumns))
		for k, idx := range table.ChoiceColumns {
			choices[k] = cells[idx]
		}

		table.Participants = append(table.Participants, Participant{
			Name:    name,
			Score:   score,
			Choices: choices,
			Cells:   cells,
		})
	}

	return table, nil
}

// parseScore accepts plain numbers, and numbers written with a decimal comma.
// NaN and infinities are rejected.
func parseScore(cell string) (float64, error) {
	if cell == "" {
		return 0, fmt.Errorf("score is empty")
	}
	score, err := strconv.ParseFloat(cell, 64)
	if err != nil && strings.Count(cell, ",") == 1 && !strings.Contains(cell, ".") {
		score, err = strconv.ParseFloat(strings.Replace(cell, ",", ".", 1), 64)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("score %q must be finite", cell)
	}
	return score, nil
}
