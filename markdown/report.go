// Package markdown renders crawl runs as Markdown reports.
package markdown

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/nao1215/markdown"
)

// ReportWriter writes a crawl run as a Markdown document.
type ReportWriter struct {
	output io.Writer
}

// NewReportWriter creates a ReportWriter that outputs to w.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{output: w}
}

// Write renders the run: a summary table, the visited URLs in visit
// order and a table of failures.
func (w *ReportWriter) Write(run *linkcrawl.Run) error {
	md := markdown.NewMarkdown(w.output)

	writeSummary(md, run)
	writeVisited(md, run)
	writeFailures(md, run)

	return md.Build()
}

func writeSummary(md *markdown.Markdown, run *linkcrawl.Run) {
	md.H1("Crawl Report")
	md.PlainText("")

	rows := [][]string{
		{"Seed", "`" + run.SeedURL + "`"},
		{"Scope Prefix", "`" + run.ScopePrefix + "`"},
		{"Status", string(run.Status)},
		{"Iterations", strconv.Itoa(run.Iterations)},
		{"Pages Visited", strconv.Itoa(len(run.Visited))},
		{"Failures", strconv.Itoa(len(run.Failures))},
	}
	if run.ID != "" {
		rows = append([][]string{{"Run", "`" + run.ID + "`"}}, rows...)
	}
	if !run.StartedAt.IsZero() {
		rows = append(rows,
			[]string{"Started", run.StartedAt.Format(time.RFC3339)},
			[]string{"Duration", run.Duration().Round(time.Millisecond).String()},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	switch run.Status {
	case linkcrawl.RunTruncated:
		md.Warning("Crawl stopped at the visited page limit; the frontier was not exhausted.")
		md.PlainText("")
	case linkcrawl.RunCanceled:
		md.Warning("Crawl was canceled; results are partial.")
		md.PlainText("")
	}
}

func writeVisited(md *markdown.Markdown, run *linkcrawl.Run) {
	md.H2("Visited Pages")
	md.PlainText("")

	if len(run.Visited) == 0 {
		md.PlainText("No pages visited.")
		md.PlainText("")
		return
	}

	md.OrderedList(run.Visited...)
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, run *linkcrawl.Run) {
	md.H2("Failures")
	md.PlainText("")

	if len(run.Failures) == 0 {
		md.PlainText("No failures.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(run.Failures))
	for _, f := range run.Failures {
		rows = append(rows, []string{escapeCell(f.URL), f.Code, escapeCell(f.Reason)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Code", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

// escapeCell keeps pipes in URLs and messages from splitting table columns.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
