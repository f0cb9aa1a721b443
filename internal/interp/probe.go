// SPDX-License-Identifier: MPL-2.0

package interp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrProbeFailed is returned by a Prober when a candidate cannot be invoked.
var ErrProbeFailed = errors.New("interpreter probe failed")

type (
	// Prober reports whether a candidate interpreter can be invoked.
	Prober interface {
		Probe(ctx context.Context, c Candidate) error
	}

	// ExecProber probes by running the candidate with a no-op program and
	// waiting for it. Only the ability to start and reap the process matters:
	// a non-zero exit status is not a probe failure.
	ExecProber struct {
		// Args replaces the default no-op arguments ("-c", "pass").
		Args []string
	}

	// ProbeError describes why a candidate probe failed.
	// It wraps ErrProbeFailed for errors.Is() compatibility.
	ProbeError struct {
		Candidate Candidate
		Err       error
	}
)

// DefaultProbeArgs runs an empty Python program.
func DefaultProbeArgs() []string {
	return []string{"-c", "pass"}
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %q: %v", e.Candidate.String(), e.Err)
}

// Unwrap returns both ErrProbeFailed and the underlying cause.
func (e *ProbeError) Unwrap() []error { return []error{ErrProbeFailed, e.Err} }

// Probe runs the candidate's no-op command.
func (p *ExecProber) Probe(ctx context.Context, c Candidate) error {
	probeArgs := p.Args
	if len(probeArgs) == 0 {
		probeArgs = DefaultProbeArgs()
	}

	name, args := c.Command(probeArgs...)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return &ProbeError{Candidate: c, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Exit status is not inspected.
			return nil
		}
		return &ProbeError{Candidate: c, Err: err}
	}
	return nil
}
