package model

import (
	"fmt"
	"strings"
)

// Group selects which side of a PartitionResult is rendered.
type Group int

const (
	// GroupDuplicates selects findings that repeat an earlier (Secret, RuleID)
	// pair. This is the default.
	GroupDuplicates Group = iota

	// GroupUnique selects the first occurrence of every (Secret, RuleID) pair.
	GroupUnique
)

// String returns the command-line name of the group.
func (g Group) String() string {
	switch g {
	case GroupDuplicates:
		return "duplicates"
	case GroupUnique:
		return "unique"
	default:
		return "unknown"
	}
}

// ParseGroup converts a group name into a Group.
// Both singular and plural spellings are accepted and case is ignored.
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "duplicates", "duplicate", "duplicated":
		return GroupDuplicates, nil
	case "unique", "uniques":
		return GroupUnique, nil
	default:
		return GroupDuplicates, fmt.Errorf("unknown group %q (expected duplicates or unique)", s)
	}
}

// Format selects how the chosen group is rendered.
type Format int

const (
	// FormatText writes one fingerprint per line, sorted by default.
	FormatText Format = iota

	// FormatJSON writes the full records as an indented JSON array in
	// input order.
	FormatJSON

	// FormatMarkdown writes a review document with summary and findings
	// tables. Secret values are replaced with a digest.
	FormatMarkdown
)

// formatNames lists the accepted format names in display order.
var formatNames = []string{"text", "json", "markdown"}

// FormatNames returns the accepted output format names.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// String returns the command-line name of the format.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat converts a format name into a Format. Case is ignored and
// "md" is accepted as an alias for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatText, fmt.Errorf("unknown format %q (expected one of %s)", s, strings.Join(formatNames, ", "))
	}
}
