// Package filter narrows a list of findings before it is partitioned.
//
// Path patterns are doublestar globs ("**/*.env", "vendor/**") matched
// against a finding's File; rule patterns are globs matched against its
// RuleID. A zero Filter keeps every finding.
package filter
