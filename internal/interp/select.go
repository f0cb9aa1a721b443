// SPDX-License-Identifier: MPL-2.0

package interp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

type (
	// Attempt records one probe made during selection.
	Attempt struct {
		Candidate Candidate
		Err       error
	}

	// Selection is the outcome of Select.
	Selection struct {
		// Candidate is the interpreter chosen for the launch.
		Candidate Candidate
		// Attempts lists the probes run, in order.
		Attempts []Attempt
		// Fallback is true when the final candidate was chosen unprobed.
		Fallback bool
	}

	// Selector picks an interpreter from an ordered candidate list.
	Selector struct {
		Prober Prober
		Logger *log.Logger
	}
)

// NewSelector creates a selector that probes with prober. A nil prober uses ExecProber.
func NewSelector(prober Prober, logger *log.Logger) *Selector {
	if prober == nil {
		prober = &ExecProber{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Selector{Prober: prober, Logger: logger}
}

// Select probes candidates in order, stopping at the first that can be
// invoked. The last candidate is returned without probing when every earlier
// probe failed. Only an empty list is an error.
func (s *Selector) Select(ctx context.Context, candidates []Candidate) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, ErrNoCandidates
	}

	var sel Selection
	last := len(candidates) - 1
	for _, c := range candidates[:last] {
		err := s.Prober.Probe(ctx, c)
		sel.Attempts = append(sel.Attempts, Attempt{Candidate: c, Err: err})
		if err == nil {
			s.Logger.Debug("interpreter probe succeeded", "interpreter", c.String())
			sel.Candidate = c
			return sel, nil
		}
		s.Logger.Debug("interpreter probe failed", "interpreter", c.String(), "error", err)
	}

	sel.Candidate = candidates[last]
	sel.Fallback = last > 0
	s.Logger.Debug("using fallback interpreter", "interpreter", sel.Candidate.String())
	return sel, nil
}
