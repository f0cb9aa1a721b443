// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"

	"github.com/ValentineStone/cjc/internal/interp"
	"github.com/ValentineStone/cjc/internal/payload"
)

const (
	// OutcomeCompleted means the payload was forwarded and the child exited 0.
	OutcomeCompleted Outcome = "completed"
	// OutcomeChildFailed means the payload was forwarded but the child exited
	// non-zero or was killed.
	OutcomeChildFailed Outcome = "child-failed"
	// OutcomeInterpreterNotFound means the selected interpreter does not exist.
	OutcomeInterpreterNotFound Outcome = "interpreter-not-found"
	// OutcomeSpawnFailed means the interpreter exists but could not be started.
	OutcomeSpawnFailed Outcome = "spawn-failed"
	// OutcomePayloadUnavailable means the script could not be opened or read.
	OutcomePayloadUnavailable Outcome = "payload-unavailable"
	// OutcomePipeFailed means writing to or closing the child's stdin failed.
	OutcomePipeFailed Outcome = "pipe-failed"
)

var (
	// ErrInterpreterNotFound is wrapped by LaunchError for OutcomeInterpreterNotFound.
	ErrInterpreterNotFound = errors.New("interpreter not found")
	// ErrSpawnFailed is wrapped by LaunchError for OutcomeSpawnFailed.
	ErrSpawnFailed = errors.New("failed to start interpreter")
	// ErrPayloadUnavailable is wrapped by LaunchError for OutcomePayloadUnavailable.
	ErrPayloadUnavailable = errors.New("script payload unavailable")
	// ErrPipeFailed is wrapped by LaunchError for OutcomePipeFailed.
	ErrPipeFailed = errors.New("failed to write script to interpreter")
	// ErrChildFailed is wrapped by LaunchError for OutcomeChildFailed.
	ErrChildFailed = errors.New("interpreter exited with failure")
	// ErrInvalidOutcome is returned when an Outcome value is not one of the defined outcomes.
	ErrInvalidOutcome = errors.New("invalid outcome")

	outcomeSentinels = map[Outcome]error{
		OutcomeChildFailed:         ErrChildFailed,
		OutcomeInterpreterNotFound: ErrInterpreterNotFound,
		OutcomeSpawnFailed:         ErrSpawnFailed,
		OutcomePayloadUnavailable:  ErrPayloadUnavailable,
		OutcomePipeFailed:          ErrPipeFailed,
	}
)

type (
	// Outcome classifies how a launch ended.
	Outcome string

	// LaunchError attributes a failure to an outcome and interpreter.
	// It unwraps to both the outcome's sentinel and the underlying cause.
	LaunchError struct {
		Outcome     Outcome
		Interpreter string
		Err         error
	}

	// Result is the full account of one launch.
	Result struct {
		// Outcome classifies the launch.
		Outcome Outcome
		// Interpreter is the candidate that was selected.
		Interpreter interp.Candidate
		// Fallback reports that every probe failed and the last candidate was used.
		Fallback bool
		// Started reports whether a child process was created.
		Started bool
		// ExitCode is the child's exit status when it was started and reaped.
		ExitCode ExitCode
		// Stream describes the payload bytes the child accepted.
		Stream payload.StreamStats
		// Error is nil only for OutcomeCompleted.
		Error error
	}
)

// IsValid reports whether o is one of the defined outcomes.
func (o Outcome) IsValid() bool {
	if o == OutcomeCompleted {
		return true
	}
	_, ok := outcomeSentinels[o]
	return ok
}

// String returns the outcome name.
func (o Outcome) String() string { return string(o) }

// Error implements the error interface.
func (e *LaunchError) Error() string {
	sentinel := outcomeSentinels[e.Outcome]
	if sentinel == nil {
		sentinel = ErrInvalidOutcome
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Interpreter, sentinel)
	}
	return fmt.Sprintf("%s: %s: %v", e.Interpreter, sentinel, e.Err)
}

// Unwrap returns the outcome sentinel and the underlying cause.
func (e *LaunchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel := outcomeSentinels[e.Outcome]; sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Succeeded reports whether the script ran to a zero exit.
func (r *Result) Succeeded() bool { return r.Outcome == OutcomeCompleted }

// ProcessExitCode maps the result to an exit status for strict mode:
// the child's own code when it ran, 1 for any launch failure.
func (r *Result) ProcessExitCode() ExitCode {
	switch r.Outcome {
	case OutcomeCompleted:
		return 0
	case OutcomeChildFailed:
		if r.ExitCode.IsSuccess() {
			return 1
		}
		return r.ExitCode
	default:
		return 1
	}
}

// fail records a failure outcome on the result.
func (r *Result) fail(outcome Outcome, err error) *Result {
	r.Outcome = outcome
	r.Error = &LaunchError{Outcome: outcome, Interpreter: r.Interpreter.String(), Err: err}
	return r
}
