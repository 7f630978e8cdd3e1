package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

func TestEncodePreferences(t *testing.T) {
	active := missions("Alpha", 1, "Beta", 1, "Gamma", 1)
	index := MissionIndex(active)

	tests := []struct {
		name     string
		choices  []string
		expected PreferenceVector
	}{
		{"three distinct choices", []string{"Beta", "Gamma", "Alpha"}, PreferenceVector{1, 4, 2}},
		{"no choices", nil, PreferenceVector{0, 0, 0}},
		{"blank choices", []string{"", "Alpha", ""}, PreferenceVector{2, 0, 0}},
		{"inactive mission is ignored", []string{"Delta", "Alpha"}, PreferenceVector{2, 0, 0}},
		{"ranks beyond the schedule weigh nothing", []string{"", "", "", "Alpha"}, PreferenceVector{0, 0, 0}},
		{"duplicate choice keeps the last rank", []string{"Alpha", "Beta", "Alpha"}, PreferenceVector{1, 2, 0}},
		{"names are case sensitive", []string{"alpha"}, PreferenceVector{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodePreferences(tt.choices, index, len(active)))
		})
	}
}

func TestEncodeAll(t *testing.T) {
	participants := []model.Participant{
		{Name: "P1", Choices: []string{"Beta"}},
		{Name: "P2", Choices: []string{"Alpha", "Beta"}},
	}

	prefs := EncodeAll(participants, missions("Alpha", 1, "Beta", 1))

	assert.Equal(t, []PreferenceVector{{0, 4}, {4, 2}}, prefs)
}

func TestChoiceRank(t *testing.T) {
	choices := []string{"Alpha", "Beta", "Alpha", "Gamma"}

	assert.Equal(t, 2, choiceRank(choices, "Alpha"))
	assert.Equal(t, 1, choiceRank(choices, "Beta"))
	assert.Equal(t, Unlisted, choiceRank(choices, "Gamma"), "fourth rank is outside the schedule")
	assert.Equal(t, Unlisted, choiceRank(choices, "Delta"))
}
