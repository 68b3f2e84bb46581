package pipeline

import (
	"eccdeploy/internal/archive"
	"eccdeploy/internal/deploy"
	"eccdeploy/internal/workspace"
)

// State is the last step a run completed.
type State string

const (
	StateStart            State = "start"
	StateInputsValidated  State = "inputs_validated"
	StateContextResolved  State = "context_resolved"
	StatePackageValidated State = "package_validated"
	StateArchived         State = "archived"
	StateUploaded         State = "uploaded"
	StateReported         State = "reported"
)

// Outcome summarizes a finished run.
type Outcome struct {
	RunID string
	// State is the last state reached before the run stopped. A run that
	// reported a response always ends in StateReported.
	State    State
	Context  workspace.ResolvedContext
	Packages []string
	Archive  archive.Result
	Result   deploy.Result
	// Message is the text passed to Notice or Fail.
	Message string
	// Err is the error that stopped the run, if any. A response with a
	// non-2xx business code fails the run without an error.
	Err    error
	Failed bool
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	if o.Failed {
		return 1
	}
	return 0
}
