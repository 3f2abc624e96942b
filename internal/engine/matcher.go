package engine

import (
	"sort"

	"tidy-go/internal/model"
)

// SelectRule picks the single rule to apply to a file: the enabled rule
// with the highest priority whose conditions all hold. Priority ties
// resolve to the earlier rule in the input order, so the backing list's
// order is significant; the sort works on a copy and never reorders the
// input. Returns nil when no rule matches.
//
// A rule with an empty condition list matches every file. This is
// intentional: such a rule acts as a catch-all for its priority band.
func SelectRule(file model.FileInfo, rules []model.Rule) *model.Rule {
	candidates := make([]*model.Rule, 0, len(rules))
	for i := range rules {
		if rules[i].Enabled {
			candidates = append(candidates, &rules[i])
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	for _, rule := range candidates {
		if ruleMatches(*rule, file) {
			return rule
		}
	}
	return nil
}

// ruleMatches reports whether all of a rule's conditions hold for the
// file. Conditions are AND-combined.
func ruleMatches(rule model.Rule, file model.FileInfo) bool {
	for _, cond := range rule.Conditions {
		if !EvaluateCondition(cond, file) {
			return false
		}
	}
	return true
}
