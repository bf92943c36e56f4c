// Package loader decodes gitleaks JSON reports into model.Finding values.
//
// A report is a single JSON array of finding objects. Each object must
// carry the Secret, RuleID and Fingerprint keys; the extended gitleaks
// fields (Description, StartLine, Match, File, Commit, Entropy, Tags and
// so on) are optional. Loading is all-or-nothing: a malformed document or
// element fails the whole load with an error wrapping model.ErrDecode,
// and a failure to open or read the input wraps model.ErrIO.
//
// Shape checks on each element are expressed as validator tags on an
// internal wire struct, so the rules sit next to the fields they govern.
package loader
