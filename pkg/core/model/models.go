package model

// Default column names of the participant sheet
const (
	DefaultNameColumn  = "Candidate Name"
	DefaultScoreColumn = "Score"
	DefaultNotGranted  = "X"
)

// DefaultChoiceColumns are the ranked choice columns, best first
var DefaultChoiceColumns = []string{"1st choice", "2nd choice", "3rd choice"}

// DefaultRedactedColumns are demographic columns excluded from the annotated roster
var DefaultRedactedColumns = []string{"University", "Gender", "Year", "Degree", "Exchange"}

// Participant is one row of the participant sheet
type Participant struct {
	Name  string
	Score float64

	// Choices are the ranked mission choices, best first. Blank cells are kept as ""
	Choices []string

	// Cells holds the full source row aligned with ParticipantTable.Header
	Cells []string
}

// Mission is a capacity-limited project participants are assigned to
type Mission struct {
	Name     string
	Capacity int
}

// ParticipantTable is the participant sheet with its column roles resolved
type ParticipantTable struct {
	Header []string

	// ChoiceColumns are header indexes of the ranked choice columns, best first
	ChoiceColumns []int

	// DroppedColumns are header indexes excluded from the annotated roster (score and demographics)
	DroppedColumns []int

	Participants []Participant
}

// Table is a row-oriented result table handed to output sinks
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}
