package model

// Finding is one reported instance of a detected secret.
//
// The JSON keys follow the gitleaks report format: PascalCase field names,
// with Match holding the matched text and RuleID the detection rule.
// Only Secret, RuleID and Fingerprint are required; the remaining fields
// are zero when the report uses the minimal three-field shape.
//
// A Finding is treated as immutable once loaded. Nothing in leaksplit
// modifies a Finding after the loader has built it.
type Finding struct {
	// Description is the human-readable description of the matching rule.
	Description string `json:"Description"`

	// StartLine is the first line of the match within File.
	StartLine int `json:"StartLine"`

	// EndLine is the last line of the match within File.
	EndLine int `json:"EndLine"`

	// StartColumn is the column at which the match begins.
	StartColumn int `json:"StartColumn"`

	// EndColumn is the column at which the match ends.
	EndColumn int `json:"EndColumn"`

	// Match is the full text matched by the rule, usually including
	// surrounding context such as the variable name.
	Match string `json:"Match"`

	// Secret is the secret value extracted from Match.
	Secret string `json:"Secret"`

	// File is the path of the file containing the finding.
	File string `json:"File"`

	// SymlinkFile is the symlink target when File is a symbolic link.
	SymlinkFile string `json:"SymlinkFile"`

	// Commit is the commit in which the secret was found.
	Commit string `json:"Commit"`

	// Entropy is the Shannon entropy of the secret.
	Entropy float64 `json:"Entropy"`

	// Author is the commit author name.
	Author string `json:"Author"`

	// Email is the commit author email.
	Email string `json:"Email"`

	// Date is the commit date as reported by gitleaks.
	Date string `json:"Date"`

	// Message is the commit message.
	Message string `json:"Message"`

	// Tags are free-form tags attached by the matching rule.
	Tags []string `json:"Tags"`

	// RuleID identifies the detection rule that matched.
	RuleID string `json:"RuleID"`

	// Fingerprint uniquely names this occurrence, typically
	// "commit:file:rule:line". It is never used for deduplication.
	Fingerprint string `json:"Fingerprint"`
}

// DuplicateKey is the composite key of the duplicate relation.
// Two findings are duplicates exactly when their keys are equal.
type DuplicateKey struct {
	Secret string
	RuleID string
}

// Key returns the duplicate key of the finding.
func (f Finding) Key() DuplicateKey {
	return DuplicateKey{Secret: f.Secret, RuleID: f.RuleID}
}

// IsDuplicateOf reports whether f and other carry the same secret for the
// same rule. The relation is reflexive and symmetric.
func (f Finding) IsDuplicateOf(other Finding) bool {
	return f.Secret == other.Secret && f.RuleID == other.RuleID
}

// PartitionResult holds the two groups produced by splitting a report.
// Every input finding appears in exactly one of the two slices, and each
// slice keeps the relative order of the input.
type PartitionResult struct {
	// Unique holds the first occurrence of every (Secret, RuleID) pair.
	Unique []Finding `json:"unique"`

	// Duplicated holds every later occurrence of an already seen pair.
	Duplicated []Finding `json:"duplicated"`
}

// Total returns the number of findings across both groups.
func (r PartitionResult) Total() int {
	return len(r.Unique) + len(r.Duplicated)
}

// Select returns the findings of the requested group.
func (r PartitionResult) Select(g Group) []Finding {
	if g == GroupUnique {
		return r.Unique
	}
	return r.Duplicated
}
