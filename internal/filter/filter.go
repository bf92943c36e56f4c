package filter

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leaksplit/leaksplit/internal/model"
)

// Filter selects findings by file path and rule.
// A finding is kept when it matches at least one include pattern of each
// non-empty include list and no exclude pattern.
type Filter struct {
	// IncludePaths keeps only findings whose File matches one of the patterns.
	IncludePaths []string `koanf:"include_paths" yaml:"include_paths,omitempty"`

	// ExcludePaths drops findings whose File matches one of the patterns.
	ExcludePaths []string `koanf:"exclude_paths" yaml:"exclude_paths,omitempty"`

	// IncludeRules keeps only findings whose RuleID matches one of the patterns.
	IncludeRules []string `koanf:"include_rules" yaml:"include_rules,omitempty"`

	// ExcludeRules drops findings whose RuleID matches one of the patterns.
	ExcludeRules []string `koanf:"exclude_rules" yaml:"exclude_rules,omitempty"`
}

// IsEmpty reports whether the filter keeps every finding.
func (f Filter) IsEmpty() bool {
	return len(f.IncludePaths) == 0 && len(f.ExcludePaths) == 0 &&
		len(f.IncludeRules) == 0 && len(f.ExcludeRules) == 0
}

// Validate checks that every pattern is a valid glob.
func (f Filter) Validate() error {
	lists := []struct {
		name     string
		patterns []string
	}{
		{"include path", f.IncludePaths},
		{"exclude path", f.ExcludePaths},
		{"include rule", f.IncludeRules},
		{"exclude rule", f.ExcludeRules},
	}
	for _, list := range lists {
		for _, p := range list.patterns {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("%w: %s %q", ErrBadPattern, list.name, p)
			}
		}
	}
	return nil
}

// Match reports whether the filter keeps fd.
func (f Filter) Match(fd model.Finding) bool {
	path := filepath.ToSlash(fd.File)

	if len(f.IncludePaths) > 0 && !matchAny(f.IncludePaths, path) {
		return false
	}
	if matchAny(f.ExcludePaths, path) {
		return false
	}
	if len(f.IncludeRules) > 0 && !matchAny(f.IncludeRules, fd.RuleID) {
		return false
	}
	return !matchAny(f.ExcludeRules, fd.RuleID)
}

// Apply returns the findings kept by the filter in input order.
// The input slice is returned unchanged when the filter is empty.
func (f Filter) Apply(findings []model.Finding) []model.Finding {
	if f.IsEmpty() {
		return findings
	}

	kept := make([]model.Finding, 0, len(findings))
	for _, fd := range findings {
		if f.Match(fd) {
			kept = append(kept, fd)
		}
	}
	return kept
}

// matchAny reports whether name matches one of the patterns.
// Invalid patterns never match; Validate reports them up front.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
