package engine

import (
	"sort"

	"cosplay-server/internal/content"
	"cosplay-server/internal/models"
)

// CompileReport assembles the final evaluation for a completed session.
// The computation is deterministic: ranking is stable with ties broken by
// ability declaration order, and route matching always resolves to some
// rule, synthesizing a generic balanced rule when the script authors none.
func CompileReport(script *content.Script, finalScores map[string]int, history []models.HistoryEntry) *models.ReportPayload {
	scores := make(map[string]int, len(finalScores))
	for code, score := range finalScores {
		scores[code] = score
	}
	for _, code := range script.AbilityCodes() {
		if _, ok := scores[code]; !ok {
			scores[code] = script.BaseScore
		}
	}

	ranked := rankDimensions(scores, script.Abilities)
	highlight := highlightDimensions(ranked, scores, script.PointStep)
	rule, routeKey := matchRoute(script, ranked, scores)

	labels := make(map[string]string, len(script.Abilities))
	descriptions := make(map[string]string)
	for _, ability := range script.Abilities {
		labels[ability.Code] = ability.Name
		if ability.Description != "" {
			descriptions[ability.Code] = ability.Description
		}
	}

	if history == nil {
		history = []models.HistoryEntry{}
	}

	return &models.ReportPayload{
		FinalScores:         scores,
		RankedDimensions:    ranked,
		HighlightDimensions: highlight,
		RouteKey:            routeKey,
		RouteName:           rule.Route,
		Summary:             rule.Summary,
		Advice:              rule.Advice,
		AbilityLabels:       labels,
		AbilityDescriptions: descriptions,
		History:             history,
	}
}

// rankDimensions sorts all scored codes by score descending. Declared
// abilities keep their declaration order on ties; undeclared codes follow in
// alphabetical order for determinism.
func rankDimensions(scores map[string]int, abilities []models.AbilityDescriptor) []string {
	declared := make(map[string]bool, len(abilities))
	codes := make([]string, 0, len(scores))
	for _, ability := range abilities {
		if _, ok := scores[ability.Code]; ok {
			codes = append(codes, ability.Code)
			declared[ability.Code] = true
		}
	}
	extra := make([]string, 0)
	for code := range scores {
		if !declared[code] {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	codes = append(codes, extra...)

	sort.SliceStable(codes, func(i, j int) bool {
		return scores[codes[i]] > scores[codes[j]]
	})
	return codes
}

// highlightDimensions picks every code whose score is within one point step
// of the maximum. A non-positive point step would select nothing, in which
// case the top-ranked code alone is highlighted.
func highlightDimensions(ranked []string, scores map[string]int, pointStep int) []string {
	if len(ranked) == 0 {
		return []string{}
	}
	max := scores[ranked[0]]
	highlight := make([]string, 0, len(ranked))
	for _, code := range ranked {
		if max-scores[code] < pointStep {
			highlight = append(highlight, code)
		}
	}
	if len(highlight) == 0 {
		highlight = []string{ranked[0]}
	}
	return highlight
}

func matchRoute(script *content.Script, ranked []string, scores map[string]int) (models.EvaluationRule, string) {
	if len(ranked) < 2 {
		return script.Rules.Balanced(), models.BalancedRuleKey
	}
	max := scores[ranked[0]]
	min := scores[ranked[len(ranked)-1]]
	if max-min < script.PointStep {
		return script.Rules.Balanced(), models.BalancedRuleKey
	}

	if rule, ok := script.Rules.Match(ranked[:2]); ok {
		return rule, content.CombinationKey(ranked[:2])
	}
	return script.Rules.Balanced(), models.BalancedRuleKey
}
