package content

import (
	"sort"
	"strings"

	"cosplay-server/internal/models"
)

// DefaultBalancedRule is returned when a script authors no "balanced" rule at
// all. Report compilation must never fail on missing rule data; deployments
// may override this text at startup.
var DefaultBalancedRule = models.EvaluationRule{
	Key:     models.BalancedRuleKey,
	Route:   "All-round contributor",
	Summary: "Your scores are evenly developed with no single dominant dimension.",
	Advice:  "Keep building on your balanced profile and look for chances to stretch each dimension in practice.",
}

// RulesIndex resolves evaluation rules by canonicalized key, so a rule
// authored as "T+Q" matches regardless of the ranking order of its codes.
type RulesIndex struct {
	rules map[string]models.EvaluationRule
}

// NewRulesIndex builds the immutable index. Later duplicates of the same
// canonical key win, matching a last-write-wins reading of authored lists.
func NewRulesIndex(rules []models.EvaluationRule) *RulesIndex {
	index := &RulesIndex{rules: make(map[string]models.EvaluationRule, len(rules))}
	for _, rule := range rules {
		index.rules[CanonicalKey(rule.Key)] = rule
	}
	return index
}

// CanonicalKey sorts the "+"-separated parts of a rule key alphabetically,
// so "T+Q" and "Q+T" map to the same entry. Single-part keys (including
// "balanced") pass through unchanged.
func CanonicalKey(key string) string {
	parts := strings.Split(key, "+")
	if len(parts) < 2 {
		return key
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// CombinationKey builds the canonical lookup key for a set of leading
// ability codes.
func CombinationKey(codes []string) string {
	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)
	return strings.Join(sorted, "+")
}

// Match looks up the rule for the given leading codes.
func (ix *RulesIndex) Match(codes []string) (models.EvaluationRule, bool) {
	rule, ok := ix.rules[CombinationKey(codes)]
	return rule, ok
}

// Balanced returns the authored balanced rule, falling back to
// DefaultBalancedRule when the script does not provide one.
func (ix *RulesIndex) Balanced() models.EvaluationRule {
	if rule, ok := ix.rules[models.BalancedRuleKey]; ok {
		return rule
	}
	return DefaultBalancedRule
}
