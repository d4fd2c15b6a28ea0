package console

import (
	"fmt"
	"io"

	"github.com/NickStees/drupal-update/pkg/domain/model"
	"github.com/fatih/color"
)

// Printer renders a human-readable run summary. The Markdown report owns
// stdout, so the printer is expected to write to stderr.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new console printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

var outcomeColors = map[model.OutcomeKind]*color.Color{
	model.OutcomeSuccess:         color.New(color.FgGreen),
	model.OutcomePatchFailure:    color.New(color.FgRed),
	model.OutcomeError:           color.New(color.FgRed),
	model.OutcomeDependencyError: color.New(color.FgRed),
	model.OutcomeUnknown:         color.New(color.FgYellow),
	model.OutcomeSkipped:         color.New(color.FgHiBlack),
}

// Summarize prints an outcome tally for the run, one line per outcome kind
// that occurred, followed by the highlight bullets.
func (p *Printer) Summarize(report *model.Report) {
	counts := report.Counts()

	fmt.Fprintf(p.w, "Processed %d packages\n", len(report.Rows))
	for _, kind := range []model.OutcomeKind{
		model.OutcomeSuccess,
		model.OutcomePatchFailure,
		model.OutcomeError,
		model.OutcomeDependencyError,
		model.OutcomeUnknown,
		model.OutcomeSkipped,
	} {
		n := counts[kind]
		if n == 0 {
			continue
		}
		label := kind.Label()
		if c, ok := outcomeColors[kind]; ok {
			label = c.Sprint(label)
		}
		fmt.Fprintf(p.w, "  %s: %d\n", label, n)
	}

	for _, highlight := range report.Highlights {
		fmt.Fprintf(p.w, "  %s %s\n", color.New(color.FgRed).Sprint("!"), highlight)
	}
}
