// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"strings"
	"testing"

	"github.com/ValentineStone/cjc/internal/interp"
)

func TestOutcome_IsValid(t *testing.T) {
	for _, o := range []Outcome{
		OutcomeCompleted, OutcomeChildFailed, OutcomeInterpreterNotFound,
		OutcomeSpawnFailed, OutcomePayloadUnavailable, OutcomePipeFailed,
	} {
		if !o.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", o)
		}
	}
	if Outcome("exploded").IsValid() {
		t.Error(`"exploded".IsValid() = true, want false`)
	}
}

func TestLaunchError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	r := &Result{Interpreter: interp.Candidate{Name: "python3"}}
	r.fail(OutcomeSpawnFailed, cause)

	if !errors.Is(r.Error, ErrSpawnFailed) {
		t.Errorf("errors.Is(ErrSpawnFailed) = false for %v", r.Error)
	}
	if !errors.Is(r.Error, cause) {
		t.Errorf("errors.Is(cause) = false for %v", r.Error)
	}
	if errors.Is(r.Error, ErrPipeFailed) {
		t.Errorf("errors.Is(ErrPipeFailed) = true for %v", r.Error)
	}
	if msg := r.Error.Error(); !strings.HasPrefix(msg, "python3: ") || !strings.HasSuffix(msg, "boom") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestResult_ProcessExitCode(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   ExitCode
	}{
		{"completed", Result{Outcome: OutcomeCompleted}, 0},
		{"child failed", Result{Outcome: OutcomeChildFailed, ExitCode: 42}, 42},
		{"child failed without code", Result{Outcome: OutcomeChildFailed}, 1},
		{"not found", Result{Outcome: OutcomeInterpreterNotFound}, 1},
		{"pipe failed after child exit 0", Result{Outcome: OutcomePipeFailed}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.ProcessExitCode(); got != tt.want {
				t.Errorf("ProcessExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if err := ExitCode(256).Validate(); !errors.Is(err, ErrInvalidExitCode) {
		t.Errorf("ExitCode(256).Validate() = %v, want ErrInvalidExitCode", err)
	}
	if err := ExitCode(255).Validate(); err != nil {
		t.Errorf("ExitCode(255).Validate() = %v, want nil", err)
	}
	if got := normalizeExitCode(-1); got != 1 {
		t.Errorf("normalizeExitCode(-1) = %d, want 1", got)
	}
	if got := normalizeExitCode(3); got != 3 {
		t.Errorf("normalizeExitCode(3) = %d, want 3", got)
	}
}
