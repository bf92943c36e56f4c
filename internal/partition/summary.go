package partition

import (
	"slices"
	"strings"

	"github.com/leaksplit/leaksplit/internal/model"
)

// RuleSummary holds the counts for a single detection rule.
type RuleSummary struct {
	// RuleID is the detection rule.
	RuleID string `json:"rule_id"`

	// Total is the number of findings reported by the rule.
	Total int `json:"total"`

	// Unique is the number of distinct secrets the rule reported.
	Unique int `json:"unique"`

	// Duplicates is the number of repeated reports of an already seen secret.
	Duplicates int `json:"duplicates"`
}

// Summary describes a PartitionResult in numbers.
type Summary struct {
	// Total is the number of partitioned findings.
	Total int `json:"total"`

	// Unique is the size of the unique group.
	Unique int `json:"unique"`

	// Duplicates is the size of the duplicate group.
	Duplicates int `json:"duplicates"`

	// Rules holds per-rule counts sorted by rule id.
	Rules []RuleSummary `json:"rules"`
}

// DuplicateRatio returns the share of duplicates among all findings,
// or 0 for an empty summary.
func (s Summary) DuplicateRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Duplicates) / float64(s.Total)
}

// Summarize counts the findings of result in total and per rule.
func Summarize(result model.PartitionResult) Summary {
	byRule := make(map[string]*RuleSummary)
	ruleFor := func(id string) *RuleSummary {
		rs, ok := byRule[id]
		if !ok {
			rs = &RuleSummary{RuleID: id}
			byRule[id] = rs
		}
		return rs
	}

	for _, f := range result.Unique {
		rs := ruleFor(f.RuleID)
		rs.Total++
		rs.Unique++
	}
	for _, f := range result.Duplicated {
		rs := ruleFor(f.RuleID)
		rs.Total++
		rs.Duplicates++
	}

	rules := make([]RuleSummary, 0, len(byRule))
	for _, rs := range byRule {
		rules = append(rules, *rs)
	}
	slices.SortFunc(rules, func(a, b RuleSummary) int {
		return strings.Compare(a.RuleID, b.RuleID)
	})

	return Summary{
		Total:      result.Total(),
		Unique:     len(result.Unique),
		Duplicates: len(result.Duplicated),
		Rules:      rules,
	}
}
