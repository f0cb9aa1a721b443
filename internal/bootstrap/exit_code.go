// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status the interpreter child reported when it was
	// reaped, or the status cjc exits with in strict mode.
	ExitCode int

	// InvalidExitCodeError reports a status that no child process can
	// return through wait(2).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is not a process exit status (0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes outside what a reaped child can report.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the child exited cleanly.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// normalizeExitCode maps a raw wait status to the 0-255 range.
// Termination by signal reports -1 from os.ProcessState and becomes 1.
func normalizeExitCode(raw int) ExitCode {
	code := ExitCode(raw)
	if code.Validate() != nil {
		return 1
	}
	return code
}
