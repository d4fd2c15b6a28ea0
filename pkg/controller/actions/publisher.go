package actions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	outputEnv  = "GITHUB_OUTPUT"
	summaryEnv = "GITHUB_STEP_SUMMARY"

	// ReportOutput is the name of the step output carrying the Markdown
	// report.
	ReportOutput = "report"
)

// Hosted reports whether the process runs inside a GitHub Actions job.
func Hosted() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Publisher writes run results to the files GitHub Actions exposes through
// the environment: step outputs and the job summary.
type Publisher struct{}

// NewPublisher creates a new Actions publisher
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish exposes the Markdown report as the "report" step output and
// appends it to the job summary.
func (p *Publisher) Publish(ctx context.Context, markdown string) error {
	logger := ctxlog.From(ctx)

	if err := p.SetOutput(ReportOutput, markdown); err != nil {
		return err
	}
	logger.Debug("Wrote step output", "name", ReportOutput, "bytes", len(markdown))

	if err := p.AppendSummary(markdown); err != nil {
		return err
	}
	logger.Debug("Appended job summary", "bytes", len(markdown))

	return nil
}

// SetOutput appends a step output to the file named by GITHUB_OUTPUT using
// the heredoc format the Actions toolkit uses for multiline values.
func (p *Publisher) SetOutput(name, value string) error {
	path := os.Getenv(outputEnv)
	if path == "" {
		return goerr.New("GITHUB_OUTPUT is not set")
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return goerr.New("step output contains the generated delimiter", goerr.V("name", name))
	}

	record := fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return appendFile(path, record)
}

// AppendSummary appends Markdown to the job summary file named by
// GITHUB_STEP_SUMMARY.
func (p *Publisher) AppendSummary(markdown string) error {
	path := os.Getenv(summaryEnv)
	if path == "" {
		return goerr.New("GITHUB_STEP_SUMMARY is not set")
	}

	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(path, markdown)
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open workflow file", goerr.V("path", path))
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return goerr.Wrap(err, "failed to write workflow file", goerr.V("path", path))
	}
	return nil
}
