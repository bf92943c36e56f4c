package partition

import (
	"github.com/leaksplit/leaksplit/internal/model"
)

// Partition splits findings into unique findings and duplicates.
// The first occurrence of each (Secret, RuleID) pair wins.
// The input slice is not modified.
func Partition(findings []model.Finding) model.PartitionResult {
	result := model.PartitionResult{
		Unique:     make([]model.Finding, 0, len(findings)),
		Duplicated: make([]model.Finding, 0),
	}

	seen := make(map[model.DuplicateKey]struct{}, len(findings))
	for _, f := range findings {
		key := f.Key()
		if _, ok := seen[key]; ok {
			result.Duplicated = append(result.Duplicated, f)
			continue
		}
		seen[key] = struct{}{}
		result.Unique = append(result.Unique, f)
	}

	return result
}

// PartitionLinear produces the same result as Partition by testing each
// finding against every previously accepted unique finding in acceptance
// order. It runs in O(n*u) for n findings and u unique pairs.
func PartitionLinear(findings []model.Finding) model.PartitionResult {
	result := model.PartitionResult{
		Unique:     make([]model.Finding, 0, len(findings)),
		Duplicated: make([]model.Finding, 0),
	}

	for _, f := range findings {
		if isDuplicate(f, result.Unique) {
			result.Duplicated = append(result.Duplicated, f)
			continue
		}
		result.Unique = append(result.Unique, f)
	}

	return result
}

// isDuplicate reports whether f duplicates any accepted finding.
func isDuplicate(f model.Finding, accepted []model.Finding) bool {
	for _, other := range accepted {
		if f.IsDuplicateOf(other) {
			return true
		}
	}
	return false
}
