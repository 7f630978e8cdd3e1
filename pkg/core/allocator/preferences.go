package allocator

import "github.com/DiegoRubas/SCC-Solver/pkg/core/model"

// MissionIndex maps each mission name to its position in missions
func MissionIndex(missions []model.Mission) map[string]int {
	index := make(map[string]int, len(missions))
	for j, m := range missions {
		index[m.Name] = j
	}
	return index
}

// EncodePreferences converts a ranked choice list into a weight per active mission.
//
// Ranks are applied best first. A choice naming an inactive mission, a blank choice and any
// rank beyond PreferenceWeights contribute nothing. When the same mission is listed at
// several ranks, the last applied rank overwrites the earlier weight.
func EncodePreferences(choices []string, missionIndex map[string]int, missionCount int) PreferenceVector {
	vector := make(PreferenceVector, missionCount)

	for rank, choice := range choices {
		if rank >= len(PreferenceWeights) {
			break
		}
		j, ok := missionIndex[choice]
		if !ok {
			continue
		}
		vector[j] = PreferenceWeights[rank]
	}

	return vector
}

// EncodeAll encodes the preferences of every participant, in participant order
func EncodeAll(participants []model.Participant, missions []model.Mission) []PreferenceVector {
	index := MissionIndex(missions)
	prefs := make([]PreferenceVector, len(participants))
	for i, p := range participants {
		prefs[i] = EncodePreferences(p.Choices, index, len(missions))
	}
	return prefs
}

// choiceRank returns the rank whose weight the encoder kept for mission, or Unlisted.
// It mirrors EncodePreferences, so with duplicate choices the last applied rank wins.
func choiceRank(choices []string, mission string) int {
	rank := Unlisted
	for r, choice := range choices {
		if r >= len(PreferenceWeights) {
			break
		}
		if choice == mission {
			rank = r
		}
	}
	return rank
}
