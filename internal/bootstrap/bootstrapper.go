// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/ValentineStone/cjc/internal/interp"
	"github.com/ValentineStone/cjc/internal/payload"

	"github.com/charmbracelet/log"
)

type (
	// Options configures a Bootstrapper. Zero fields take defaults.
	Options struct {
		// Candidates is the interpreter lookup order (default: python3, python).
		Candidates []interp.Candidate
		// Prober tests candidates before selection (default: interp.ExecProber).
		Prober interp.Prober
		// Source provides the script (default: payload.Embedded()).
		Source payload.Source
		// ChunkSize is the forwarding unit (default: payload.DefaultChunkSize).
		ChunkSize payload.ChunkSize
		// Stdout and Stderr receive the child's output (default: inherited).
		Stdout io.Writer
		Stderr io.Writer
		// Logger receives internal diagnostics (default: discarded).
		Logger *log.Logger
	}

	// Bootstrapper runs the bundled script in a host interpreter. A
	// Bootstrapper is meant to be run once per process; it holds no state
	// between runs but is not safe for concurrent use.
	Bootstrapper struct {
		candidates []interp.Candidate
		selector   *interp.Selector
		source     payload.Source
		chunkSize  payload.ChunkSize
		stdout     io.Writer
		stderr     io.Writer
		logger     *log.Logger
	}
)

// New creates a Bootstrapper, filling defaults for zero-valued options.
func New(opts Options) (*Bootstrapper, error) {
	if opts.ChunkSize == 0 {
		opts.ChunkSize = payload.DefaultChunkSize
	}
	if err := opts.ChunkSize.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Candidates) == 0 {
		opts.Candidates = interp.DefaultCandidates()
	}
	if opts.Source == nil {
		opts.Source = payload.Embedded()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Bootstrapper{
		candidates: opts.Candidates,
		selector:   interp.NewSelector(opts.Prober, opts.Logger),
		source:     opts.Source,
		chunkSize:  opts.ChunkSize,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		logger:     opts.Logger,
	}, nil
}

// Run selects an interpreter, starts it, forwards the script to its stdin,
// closes stdin and waits for the child to exit. ctx bounds the probes only:
// a started child is waited on for as long as it runs, even after ctx is
// canceled. All failures are reported in the Result.
func (b *Bootstrapper) Run(ctx context.Context) *Result {
	result := &Result{}

	sel, err := b.selector.Select(ctx, b.candidates)
	if err != nil {
		return result.fail(OutcomeInterpreterNotFound, err)
	}
	result.Interpreter = sel.Candidate
	result.Fallback = sel.Fallback
	b.logger.Debug("interpreter selected", "interpreter", sel.Candidate.String(), "fallback", sel.Fallback)

	sess, outcome, err := startSession(sel.Candidate, b.stdout, b.stderr)
	if err != nil {
		b.logger.Error("interpreter launch failed", "interpreter", sel.Candidate.String(), "outcome", outcome, "error", err)
		return result.fail(outcome, err)
	}
	result.Started = true
	defer func() { _ = sess.closeInput() }() // Idempotent; covers every return below

	stats, forwardOutcome, forwardErr := b.forward(sess)
	result.Stream = stats
	if forwardErr == nil {
		if closeErr := sess.closeInput(); closeErr != nil {
			forwardOutcome, forwardErr = OutcomePipeFailed, closeErr
		}
	}

	code, waitErr := sess.wait()
	result.ExitCode = code
	b.logger.Debug("interpreter exited", "interpreter", sel.Candidate.String(), "exit_code", code)

	switch {
	case forwardErr != nil:
		b.logger.Error("script forwarding failed", "outcome", forwardOutcome, "bytes", stats.Bytes, "error", forwardErr)
		return result.fail(forwardOutcome, forwardErr)
	case waitErr != nil:
		b.logger.Error("waiting for interpreter failed", "error", waitErr)
		return result.fail(OutcomeChildFailed, waitErr)
	case !code.IsSuccess():
		b.logger.Warn("interpreter exited with failure", "exit_code", code)
		return result.fail(OutcomeChildFailed, nil)
	}

	result.Outcome = OutcomeCompleted
	return result
}

// Probe reports which interpreter Run would select without launching anything.
func (b *Bootstrapper) Probe(ctx context.Context) (interp.Selection, error) {
	return b.selector.Select(ctx, b.candidates)
}

// Source returns the script source this Bootstrapper forwards.
func (b *Bootstrapper) Source() payload.Source { return b.source }

// forward opens the payload and streams it into the session's stdin.
func (b *Bootstrapper) forward(sess *session) (payload.StreamStats, Outcome, error) {
	r, err := b.source.Open()
	if err != nil {
		return payload.StreamStats{}, OutcomePayloadUnavailable, err
	}
	defer func() { _ = r.Close() }() // Read-only source; close error non-critical

	stats, err := payload.Stream(sess.stdin, r, b.chunkSize)
	if err != nil {
		if errors.Is(err, payload.ErrWriteFailed) {
			return stats, OutcomePipeFailed, err
		}
		return stats, OutcomePayloadUnavailable, err
	}

	b.logger.Debug("script forwarded",
		"source", b.source.Name(),
		"bytes", stats.Bytes,
		"chunks", stats.Chunks,
		"blake3", stats.Digest.String(),
	)
	return stats, "", nil
}
