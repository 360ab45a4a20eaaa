package engine

import "cosplay-server/internal/models"

// ApplyOption applies a chosen option's effects and returns the updated
// score map plus the per-ability deltas. The input map is not mutated.
//
// Each effect unit is scaled by the script's point step and the resulting
// score is clamped into [MinScore, MaxScore]. Only non-zero deltas are
// reported. Codes absent from the script's abilities are still applied so
// that newer script content keeps working against older ability lists; they
// simply carry no label in the final report.
func ApplyOption(scores map[string]int, option *models.OptionDefinition, script *models.ScriptContent) (map[string]int, map[string]int) {
	updated := make(map[string]int, len(scores)+len(option.Effects))
	for code, score := range scores {
		updated[code] = score
	}

	deltas := make(map[string]int, len(option.Effects))
	for code, units := range option.Effects {
		deltaPoints := units * script.PointStep
		start, ok := scores[code]
		if !ok {
			start = script.BaseScore
		}
		updated[code] = clampInt(start+deltaPoints, MinScore, MaxScore)
		if deltaPoints != 0 {
			deltas[code] = deltaPoints
		}
	}

	// Unaffected dimensions carry forward; anything the script declares but
	// the state never saw starts at the base score.
	for _, code := range script.AbilityCodes() {
		if _, ok := updated[code]; !ok {
			updated[code] = script.BaseScore
		}
	}

	return updated, deltas
}
