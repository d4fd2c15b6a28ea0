package model

// OutcomeKind identifies how processing one package ended.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomePatchFailure
	OutcomeError
	OutcomeDependencyError
	OutcomeUnknown
	OutcomeSkipped
)

// Label returns the fixed display label used in the report table.
func (k OutcomeKind) Label() string {
	switch k {
	case OutcomeSuccess:
		return "Updated"
	case OutcomePatchFailure:
		return "Patch failure"
	case OutcomeError:
		return "Error"
	case OutcomeDependencyError:
		return "Dependency error"
	case OutcomeUnknown:
		return "Unknown"
	case OutcomeSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Outcome is the classified result of one package update attempt. Detail is
// populated only for OutcomePatchFailure and names the patch that did not
// apply. An Outcome is never mutated after creation.
type Outcome struct {
	Kind   OutcomeKind
	Detail string
}

// NewOutcome creates an outcome without detail payload.
func NewOutcome(kind OutcomeKind) Outcome {
	return Outcome{Kind: kind}
}

// NewPatchFailure creates the one outcome kind that carries a payload: the
// descriptor of the patch that failed to apply.
func NewPatchFailure(detail string) Outcome {
	return Outcome{Kind: OutcomePatchFailure, Detail: detail}
}

// Label returns the fixed display label for the table row. The patch detail is
// never shown in the table, only in the highlight notes.
func (o Outcome) Label() string {
	return o.Kind.Label()
}

// CommandResult captures the observable result of one package manager
// invocation: the process exit code and the combined stdout/stderr text.
type CommandResult struct {
	ExitCode int
	Output   string
}
