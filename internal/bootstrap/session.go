// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"io"
	"io/fs"
	"os/exec"

	"github.com/ValentineStone/cjc/internal/interp"
)

// session owns a started child process together with the write end of its
// stdin pipe. closeInput is idempotent and wait always closes input first.
type session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	closed bool
	// closeErr is the result of the first closeInput call.
	closeErr error
}

// startSession starts c with no script arguments, stdin piped and the given
// output writers. Environment and working directory are inherited. The child
// is not bound to any context: once started it is never killed, and signals
// such as an interrupt are left for the child to handle.
func startSession(c interp.Candidate, stdout, stderr io.Writer) (*session, Outcome, error) {
	name, args := c.Command()
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, OutcomeSpawnFailed, err
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close() // Child never started; release both pipe ends
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, OutcomeInterpreterNotFound, err
		}
		return nil, OutcomeSpawnFailed, err
	}

	return &session{cmd: cmd, stdin: stdin}, "", nil
}

// closeInput signals end-of-input to the child.
func (s *session) closeInput() error {
	if s.closed {
		return s.closeErr
	}
	s.closed = true
	s.closeErr = s.stdin.Close()
	return s.closeErr
}

// wait closes stdin if still open and blocks until the child exits.
// It returns the child's exit code and any error other than a non-zero exit.
func (s *session) wait() (ExitCode, error) {
	_ = s.closeInput() // Error already captured for the caller via closeErr

	err := s.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return normalizeExitCode(exitErr.ExitCode()), nil
	}
	return 1, err
}
