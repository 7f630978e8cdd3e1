package db

import "github.com/DiegoRubas/SCC-Solver/pkg/sheetssql"

// Run is one recorded solve
type Run struct {
	ID               string  `ssql_header:"id" ssql_type:"uuid"`
	CreatedAt        string  `ssql_header:"created_at" ssql_type:"timestamp"` // RFC3339 with microseconds, UTC
	Backend          string  `ssql_header:"backend" ssql_type:"text"`
	Status           string  `ssql_header:"status" ssql_type:"text"`
	Objective        float64 `ssql_header:"objective" ssql_type:"float"`
	ParticipantCount int     `ssql_header:"participant_count" ssql_type:"int"`
	MissionCount     int     `ssql_header:"mission_count" ssql_type:"int"`
}

// Assignment is one participant placed on a mission by a run
type Assignment struct {
	ID          string `ssql_header:"id" ssql_type:"uuid"`
	RunID       string `ssql_header:"run_id" ssql_type:"uuid"`
	Participant string `ssql_header:"participant" ssql_type:"text"`
	Mission     string `ssql_header:"mission" ssql_type:"text"`
	Rank        int    `ssql_header:"rank" ssql_type:"int"` // 0 = first choice, -1 = unlisted
}

// Schema returns the SheetsSQL schema of the run history tables
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(Run{}, Assignment{})
}
