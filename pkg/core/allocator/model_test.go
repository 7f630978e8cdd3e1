package allocator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

func TestBuildModel_Shape(t *testing.T) {
	participants := []model.Participant{
		{Name: "P1", Score: 10, Choices: []string{"Alpha"}},
		{Name: "P2", Score: 5, Choices: []string{"Beta", "Alpha"}},
		{Name: "P3", Score: 8},
	}
	ms := missions("Alpha", 1, "Beta", 2)
	prefs := EncodeAll(participants, ms)

	am, err := BuildModel(participants, ms, prefs)
	require.NoError(t, err)

	m := am.Model
	assert.Equal(t, ModelName, m.Name)
	assert.Equal(t, solver.Maximize, m.Sense)
	require.Len(t, m.Variables, 6)
	require.Len(t, m.Constraints, 5)

	// variables are laid out participant-major
	assert.Equal(t, "x_0_0", m.Variables[am.Vars[0][0]].Name)
	assert.Equal(t, "x_1_0", m.Variables[am.Vars[1][0]].Name)
	assert.Equal(t, "x_2_1", m.Variables[am.Vars[2][1]].Name)
	for _, v := range m.Variables {
		assert.True(t, v.Binary)
	}

	assert.Equal(t, 40.0, m.Objective[am.Vars[0][0]])
	assert.Equal(t, 0.0, m.Objective[am.Vars[0][1]])
	assert.Equal(t, 10.0, m.Objective[am.Vars[1][0]])
	assert.Equal(t, 20.0, m.Objective[am.Vars[1][1]])
	assert.Equal(t, 0.0, m.Objective[am.Vars[2][0]])

	capacity := m.Constraints[1]
	assert.Equal(t, "MaxParticipants_1", capacity.Name)
	assert.Equal(t, solver.Equal, capacity.Relation)
	assert.Equal(t, 2.0, capacity.RHS)
	assert.Len(t, capacity.Terms, 3)

	exclusivity := m.Constraints[4]
	assert.Equal(t, "OneSlot_2", exclusivity.Name)
	assert.Equal(t, solver.LessOrEqual, exclusivity.Relation)
	assert.Equal(t, 1.0, exclusivity.RHS)
	assert.Len(t, exclusivity.Terms, 2)
}

func TestBuildModel_RejectsMismatchedPreferences(t *testing.T) {
	participants := []model.Participant{{Name: "P1"}, {Name: "P2"}}
	ms := missions("Alpha", 1)

	_, err := BuildModel(participants, ms, []PreferenceVector{{4}})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "preferences", cfgErr.Field)

	_, err = BuildModel(participants, ms, []PreferenceVector{{4}, {4, 2}})
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "P2")
}

func TestValidateProblem(t *testing.T) {
	one := []model.Participant{{Name: "P1"}}

	tests := []struct {
		name         string
		participants []model.Participant
		missions     []model.Mission
		field        string
	}{
		{"valid", one, missions("Alpha", 1), ""},
		{"no participants", nil, missions("Alpha", 1), "participants"},
		{"no missions", one, nil, "missions"},
		{"blank mission name", one, missions("", 1), "missions"},
		{"duplicate mission", one, missions("Alpha", 1, "Alpha", 2), "missions"},
		{"zero capacity", one, missions("Alpha", 0), "capacity"},
		{"duplicate participant", []model.Participant{{Name: "P1"}, {Name: "P1"}}, missions("Alpha", 1), "participants"},
		{"NaN score", []model.Participant{{Name: "P1", Score: math.NaN()}}, missions("Alpha", 1), "score"},
		{"infinite score", []model.Participant{{Name: "P1", Score: math.Inf(1)}}, missions("Alpha", 1), "score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProblem(tt.participants, tt.missions)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
