package model

import (
	"fmt"
	"strings"
)

const (
	reportHeading  = "## Drupal dependency updates"
	listingHeading = "## Drupal outdated packages"

	tableHeader = "| Project name | Old version | Proposed version | Status | Patches | Abandoned |\n" +
		"| --- | --- | --- | --- | --- | --- |\n"
	listingHeader = "| Project name | Current version | Latest version | Status | Patches | Abandoned |\n" +
		"| --- | --- | --- | --- | --- | --- |\n"
)

// Result is one report row: a considered package and its classified outcome.
type Result struct {
	Package Package
	Outcome Outcome
}

// Report accumulates per-package results and highlight notes in processing
// order. It is built incrementally by the update driver and rendered once at
// the end of the run.
type Report struct {
	Rows       []Result
	Highlights []string
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends one row. Every considered package is added exactly once,
// whatever its outcome.
func (r *Report) Add(pkg Package, outcome Outcome) {
	r.Rows = append(r.Rows, Result{Package: pkg, Outcome: outcome})
}

// Highlightf appends a free-text note shown above the table.
func (r *Report) Highlightf(format string, args ...any) {
	r.Highlights = append(r.Highlights, fmt.Sprintf(format, args...))
}

// Counts tallies rows per outcome kind.
func (r *Report) Counts() map[OutcomeKind]int {
	counts := make(map[OutcomeKind]int, len(r.Rows))
	for _, row := range r.Rows {
		counts[row.Outcome.Kind]++
	}
	return counts
}

// Markdown renders the summary document: the fixed heading, the highlight
// bullets when present, and the fixed 6-column table with one row per
// processed package.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString(reportHeading + "\n\n")

	if len(r.Highlights) > 0 {
		for _, note := range r.Highlights {
			sb.WriteString("- " + note + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(tableHeader)
	for _, row := range r.Rows {
		sb.WriteString(row.markdownRow())
	}

	return sb.String()
}

func (res Result) markdownRow() string {
	proposed := res.Package.Latest
	if url := res.Package.ReleaseURL(); url != "" {
		proposed = fmt.Sprintf("[%s](%s)", res.Package.Latest, url)
	}

	return fmt.Sprintf("| [%s](%s) | %s | %s | %s | %d | %s |\n",
		res.Package.Name,
		res.Package.ProjectURL(),
		res.Package.Version,
		proposed,
		res.Outcome.Label(),
		len(res.Package.Patches),
		res.Package.Abandoned,
	)
}

// ListingMarkdown renders the read-only outdated listing used by check mode.
func ListingMarkdown(packages []Package) string {
	var sb strings.Builder

	sb.WriteString(listingHeading + "\n\n")
	sb.WriteString(listingHeader)
	for _, pkg := range packages {
		latest := pkg.Latest
		if url := pkg.ReleaseURL(); url != "" {
			latest = fmt.Sprintf("[%s](%s)", pkg.Latest, url)
		}
		sb.WriteString(fmt.Sprintf("| [%s](%s) | %s | %s | %s | %d | %s |\n",
			pkg.Name, pkg.ProjectURL(), pkg.Version, latest,
			pkg.LatestStatus, len(pkg.Patches), pkg.Abandoned))
	}

	return sb.String()
}
