package allocator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

var testHeader = []string{"Candidate Name", "Score", "University", "1st choice", "2nd choice", "3rd choice", "Notes"}

type testParticipant struct {
	name    string
	score   float64
	choices []string
}

// newTestTable builds a participant table shaped like the real sheet
func newTestTable(t *testing.T, participants ...testParticipant) *model.ParticipantTable {
	t.Helper()

	raw := [][]string{testHeader}
	for _, p := range participants {
		row := []string{p.name, formatScore(p.score), "Uni " + p.name}
		for k := 0; k < 3; k++ {
			if k < len(p.choices) {
				row = append(row, p.choices[k])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, "notes "+p.name)
		raw = append(raw, row)
	}

	spec := model.DefaultColumnSpec()
	table, err := model.ParseParticipantTable(raw, spec)
	require.NoError(t, err)
	return table
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func missions(pairs ...any) []model.Mission {
	var out []model.Mission
	for k := 0; k+1 < len(pairs); k += 2 {
		out = append(out, model.Mission{Name: pairs[k].(string), Capacity: pairs[k+1].(int)})
	}
	return out
}

func testBackends() []solver.Solver {
	return []solver.Solver{solver.NewSimplex(), solver.NewMaxSAT(solver.DefaultMaxSATPrecision)}
}

// bruteForceOptimum enumerates every assignment satisfying both constraint families and
// returns the best objective, or ok=false when none exists
func bruteForceOptimum(participants []model.Participant, ms []model.Mission) (best float64, ok bool) {
	prefs := EncodeAll(participants, ms)
	choice := make([]int, len(participants))
	for i := range choice {
		choice[i] = -1
	}

	var walk func(i int)
	walk = func(i int) {
		if i == len(participants) {
			counts := make([]int, len(ms))
			var objective float64
			for p, j := range choice {
				if j >= 0 {
					counts[j]++
					objective += float64(prefs[p][j]) * participants[p].Score
				}
			}
			for j, m := range ms {
				if counts[j] != m.Capacity {
					return
				}
			}
			if !ok || objective > best {
				best = objective
				ok = true
			}
			return
		}
		for j := -1; j < len(ms); j++ {
			choice[i] = j
			walk(i + 1)
		}
		choice[i] = -1
	}
	walk(0)

	return best, ok
}
