package allocator

import (
	"fmt"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// ValidationError describes one broken invariant of a solved grid
type ValidationError struct {
	// Constraint is "capacity" or "exclusivity"
	Constraint  string
	Index       int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Constraint, e.Index, e.Description)
}

// ValidateGrid checks a solved grid against the hard constraints.
// Every mission must hold exactly its capacity and no participant may hold more than one mission.
// An empty slice indicates the grid is valid.
func ValidateGrid(grid [][]bool, participants []model.Participant, missions []model.Mission) []ValidationError {
	var errors []ValidationError

	for j, mission := range missions {
		count := 0
		for i := range grid {
			if j < len(grid[i]) && grid[i][j] {
				count++
			}
		}
		if count != mission.Capacity {
			errors = append(errors, ValidationError{
				Constraint:  "capacity",
				Index:       j,
				Description: fmt.Sprintf("mission %s has %d participants, capacity is %d", mission.Name, count, mission.Capacity),
			})
		}
	}

	for i, row := range grid {
		count := 0
		for _, assigned := range row {
			if assigned {
				count++
			}
		}
		if count > 1 {
			name := ""
			if i < len(participants) {
				name = participants[i].Name
			}
			errors = append(errors, ValidationError{
				Constraint:  "exclusivity",
				Index:       i,
				Description: fmt.Sprintf("participant %s is assigned to %d missions", name, count),
			})
		}
	}

	return errors
}
