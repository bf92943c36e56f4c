package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leaksplit/leaksplit/internal/model"
	"github.com/leaksplit/leaksplit/internal/partition"
)

// commitLength is the number of commit hash characters shown in tables.
const commitLength = 8

// MarkdownWriter outputs findings as a GitHub-flavored Markdown document
// intended for review and sharing. Secret values never appear in the
// output; each row carries SecretDigest instead.
type MarkdownWriter struct {
	baseWriter

	// group is the group being rendered, used for the title.
	group model.Group

	// summary adds per-rule counts when non-nil.
	summary *partition.Summary
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithGroup sets the group named in the document title.
func WithGroup(g model.Group) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.group = g
	}
}

// WithSummary adds a summary section with per-rule counts.
func WithSummary(s partition.Summary) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.summary = &s
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs findings in Markdown format, keeping input order.
func (w *MarkdownWriter) Write(findings []model.Finding) (int, error) {
	// Built in memory first so the destination sees a single write.
	md := markdown.NewMarkdown(io.Discard)

	w.writeHeader(md, findings)
	if w.summary != nil {
		w.writeSummary(md, *w.summary)
	}
	w.writeFindings(md, findings)
	w.writeFooter(md)

	return w.write([]byte(md.String()))
}

// title returns the document title for the configured group.
func (w *MarkdownWriter) title() string {
	label := "duplicate gitleaks findings"
	if w.group == model.GroupUnique {
		label = "unique gitleaks findings"
	}
	return cases.Title(language.English).String(label)
}

// writeHeader writes the title and the basic information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, findings []model.Finding) {
	md.H1(w.title())
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Group", w.group.String()},
			{"Findings", strconv.Itoa(len(findings))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the totals and the per-rule table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s partition.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Total", "Unique", "Duplicates"},
		Rows: [][]string{
			{strconv.Itoa(s.Total), strconv.Itoa(s.Unique), strconv.Itoa(s.Duplicates)},
		},
	})
	md.PlainText("")

	if len(s.Rules) > 0 {
		rows := make([][]string, len(s.Rules))
		for i, r := range s.Rules {
			rows[i] = []string{
				"`" + escapeCell(r.RuleID) + "`",
				strconv.Itoa(r.Total),
				strconv.Itoa(r.Unique),
				strconv.Itoa(r.Duplicates),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rule", "Total", "Unique", "Duplicates"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if s.Duplicates > 0 {
		md.Warningf("%d of %d findings repeat a secret already reported by the same rule.",
			s.Duplicates, s.Total)
	} else {
		md.Tip("No duplicate findings.")
	}
	md.PlainText("")
}

// writeFindings writes the findings table.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, findings []model.Finding) {
	md.H2("Findings")
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			"`" + escapeCell(f.Fingerprint) + "`",
			escapeCell(f.RuleID),
			escapeCell(location(f)),
			escapeCell(orDash(truncateString(f.Commit, commitLength))),
			"`" + SecretDigest(f.Secret) + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Fingerprint", "Rule", "Location", "Commit", "Secret Digest"},
		Rows:   rows,
	})
	md.PlainText("")
	md.Note(fmt.Sprintf("Secrets are shown as the first %d hex digits of their SHA3-256 digest.", digestLength))
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by leaksplit*")
}

// location formats the file and line of a finding.
func location(f model.Finding) string {
	if f.File == "" {
		return "-"
	}
	if f.StartLine > 0 {
		return f.File + ":" + strconv.Itoa(f.StartLine)
	}
	return f.File
}

// escapeCell escapes pipes so that record data cannot split a table cell.
// GitHub-flavored Markdown honors the escape inside code spans too.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// orDash returns "-" for empty cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen bytes.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
