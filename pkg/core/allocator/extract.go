package allocator

import (
	"slices"
	"strings"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// Result table names, also used as file and tab names by the output sinks
const (
	TableAnnotatedRoster    = "Result"
	TableParticipantMission = "Participant_mission"
	TableMissionRoster      = "Mission_teams"
)

// RosterSeparator joins participant names in the list-valued roster cell
const RosterSeparator = ", "

// extractGrid reads x[i][j] from solved variable values
func extractGrid(am *AssignmentModel, values []float64) [][]bool {
	grid := make([][]bool, len(am.Vars))
	for i, row := range am.Vars {
		grid[i] = make([]bool, len(row))
		for j, v := range row {
			grid[i][j] = values[v] > 0.5
		}
	}
	return grid
}

// extractViews fills the participant, mission and roster views of outcome from its grid.
// The grid is walked participant-major so roster membership follows participant order.
func extractViews(outcome *AllocationOutcome, table *model.ParticipantTable, notGranted string) {
	missions := outcome.Missions

	outcome.Rosters = make([]MissionRoster, len(missions))
	outcome.ChoiceStats = make([]ChoiceStats, len(missions))
	for j, m := range missions {
		outcome.Rosters[j] = MissionRoster{Mission: m.Name, Participants: []string{}}
		outcome.ChoiceStats[j] = ChoiceStats{Mission: m.Name, ByRank: make([]int, len(PreferenceWeights))}
	}
	outcome.Assignments = []Assignment{}
	outcome.Unassigned = []string{}

	assigned := make([]int, len(outcome.Participants))
	for i, p := range outcome.Participants {
		assigned[i] = -1
		for j, m := range missions {
			if !outcome.Grid[i][j] {
				continue
			}
			assigned[i] = j

			rank := choiceRank(p.Choices, m.Name)
			outcome.Assignments = append(outcome.Assignments, Assignment{
				Participant: p.Name,
				Mission:     m.Name,
				Rank:        rank,
			})
			outcome.Rosters[j].Participants = append(outcome.Rosters[j].Participants, p.Name)

			if rank == Unlisted {
				outcome.ChoiceStats[j].Unlisted++
			} else {
				outcome.ChoiceStats[j].ByRank[rank]++
			}
		}
		if assigned[i] == -1 {
			outcome.Unassigned = append(outcome.Unassigned, p.Name)
		}
	}

	outcome.AnnotatedRoster = annotateRoster(table, outcome.Participants, missions, assigned, notGranted)
}

// annotateRoster copies the participant sheet without its dropped columns and replaces every
// choice cell with notGranted unless it names the mission the participant was assigned to.
func annotateRoster(table *model.ParticipantTable, participants []model.Participant, missions []model.Mission, assigned []int, notGranted string) model.Table {
	kept := make([]int, 0, len(table.Header))
	for c := range table.Header {
		if !slices.Contains(table.DroppedColumns, c) {
			kept = append(kept, c)
		}
	}

	header := make([]string, len(kept))
	for k, c := range kept {
		header[k] = table.Header[c]
	}

	rows := make([][]string, len(participants))
	for i, p := range participants {
		grantedMission := ""
		if assigned[i] >= 0 {
			grantedMission = missions[assigned[i]].Name
		}

		row := make([]string, len(kept))
		for k, c := range kept {
			cell := ""
			if c < len(p.Cells) {
				cell = p.Cells[c]
			}
			if slices.Contains(table.ChoiceColumns, c) && (grantedMission == "" || cell != grantedMission) {
				cell = notGranted
			}
			row[k] = cell
		}
		rows[i] = row
	}

	return model.Table{
		Name:   TableAnnotatedRoster,
		Header: header,
		Rows:   rows,
	}
}

// ParticipantMissionTable returns the [Participant, Mission] view
func (o *AllocationOutcome) ParticipantMissionTable() model.Table {
	rows := make([][]string, len(o.Assignments))
	for k, a := range o.Assignments {
		rows[k] = []string{a.Participant, a.Mission}
	}
	return model.Table{
		Name:   TableParticipantMission,
		Header: []string{"Participant", "Mission"},
		Rows:   rows,
	}
}

// MissionRosterTable returns the [Mission, Participants] view with a list-valued second cell
func (o *AllocationOutcome) MissionRosterTable() model.Table {
	rows := make([][]string, len(o.Rosters))
	for k, r := range o.Rosters {
		rows[k] = []string{r.Mission, strings.Join(r.Participants, RosterSeparator)}
	}
	return model.Table{
		Name:   TableMissionRoster,
		Header: []string{"Mission", "Participants"},
		Rows:   rows,
	}
}

// Tables returns the three result views in the order sinks write them
func (o *AllocationOutcome) Tables() []model.Table {
	return []model.Table{
		o.ParticipantMissionTable(),
		o.MissionRosterTable(),
		o.AnnotatedRoster,
	}
}
