// Package report renders a group of findings.
//
// This package contains writers for the supported output modes:
//   - TextWriter: one fingerprint per line, sorted by fingerprint unless
//     configured to keep input order
//   - JSONWriter: the full records as an indented JSON array, in input order
//   - MarkdownWriter: a review document with count and findings tables,
//     secrets shown only as a digest
//   - SummaryWriter: a per-rule table of totals, unique findings and
//     duplicates
//
// Render selects a writer from a model.Format. Writers build their output
// in memory and hand it to the destination in a single Write call, so a
// failing destination is reported once, wrapped in model.ErrIO.
package report
