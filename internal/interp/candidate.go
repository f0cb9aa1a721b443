// SPDX-License-Identifier: MPL-2.0

package interp

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

var (
	// ErrInvalidCandidate is the sentinel error wrapped by InvalidCandidateError.
	ErrInvalidCandidate = errors.New("invalid interpreter candidate")
	// ErrNoCandidates is returned when selection is attempted with an empty list.
	ErrNoCandidates = errors.New("no interpreter candidates configured")
)

type (
	// Candidate is an interpreter command: a program name or path plus any
	// arguments that must precede the script-specific ones.
	Candidate struct {
		Name string
		Args []string
	}

	// InvalidCandidateError is returned when a candidate spec cannot be parsed
	// or names no program.
	InvalidCandidateError struct {
		Spec string
		Err  error
	}
)

// Error implements the error interface.
func (e *InvalidCandidateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid interpreter candidate %q: %v", e.Spec, e.Err)
	}
	return fmt.Sprintf("invalid interpreter candidate %q", e.Spec)
}

// Unwrap returns ErrInvalidCandidate for errors.Is() compatibility.
func (e *InvalidCandidateError) Unwrap() error { return ErrInvalidCandidate }

// DefaultCandidates returns the built-in lookup order: python3, then python.
func DefaultCandidates() []Candidate {
	return []Candidate{{Name: "python3"}, {Name: "python"}}
}

// ParseCandidate splits a spec such as "py -3" into a Candidate using shell
// word rules. Quotes are honored and $VARS expand from the environment,
// so "$HOME/.venv/bin/python" works.
func ParseCandidate(spec string) (Candidate, error) {
	if strings.TrimSpace(spec) == "" {
		return Candidate{}, &InvalidCandidateError{Spec: spec}
	}

	fields, err := shell.Fields(spec, os.Getenv)
	if err != nil {
		return Candidate{}, &InvalidCandidateError{Spec: spec, Err: err}
	}
	if len(fields) == 0 || fields[0] == "" {
		return Candidate{}, &InvalidCandidateError{Spec: spec}
	}

	return Candidate{Name: fields[0], Args: fields[1:]}, nil
}

// ParseCandidates parses each spec in order. An empty input yields the defaults.
func ParseCandidates(specs []string) ([]Candidate, error) {
	if len(specs) == 0 {
		return DefaultCandidates(), nil
	}

	out := make([]Candidate, 0, len(specs))
	for _, spec := range specs {
		c, err := ParseCandidate(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// String renders the candidate as a command line.
func (c Candidate) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Command returns the argv to execute this candidate with extra trailing args.
func (c Candidate) Command(extra ...string) (string, []string) {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	args = append(args, extra...)
	return c.Name, args
}
