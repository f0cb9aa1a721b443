// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/ValentineStone/cjc/internal/bootstrap"
	"github.com/ValentineStone/cjc/internal/issue"
)

var outcomeIssues = map[bootstrap.Outcome]issue.Id{
	bootstrap.OutcomeInterpreterNotFound: issue.InterpreterNotFoundId,
	bootstrap.OutcomeSpawnFailed:         issue.SpawnFailedId,
	bootstrap.OutcomePayloadUnavailable:  issue.PayloadUnavailableId,
	bootstrap.OutcomePipeFailed:          issue.PipeFailedId,
}

// runLaunch runs the bundled script. Outside strict mode every failure,
// including a panic, is logged and swallowed so the process exits 0.
func runLaunch(ctx context.Context, app *App, opts *rootOptions) (err error) {
	s := app.openSession(ctx, opts)
	defer s.close()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("launcher panicked", "panic", fmt.Sprint(r))
			err = strictExit(s, &ExitError{Code: 1})
		}
	}()

	b, buildErr := app.newBootstrapper(s)
	if buildErr != nil {
		s.logger.Error("invalid launcher settings", "error", buildErr)
		return strictExit(s, &ExitError{Code: 1, Err: issue.WrapWithOperation(buildErr, "configure launcher")})
	}

	result := b.Run(ctx)
	s.logger.Info("launch finished",
		"outcome", result.Outcome,
		"interpreter", result.Interpreter.String(),
		"bytes", result.Stream.Bytes,
		"digest", result.Stream.Digest.String(),
		"exit_code", result.ExitCode,
	)
	if result.Succeeded() || !s.cfg.Strict {
		return nil
	}

	if id, ok := outcomeIssues[result.Outcome]; ok {
		renderIssue(app.stderr, id, s.cfg)
	}
	return &ExitError{Code: result.ProcessExitCode()}
}

// strictExit returns err in strict mode and nil otherwise.
func strictExit(s *session, err error) error {
	if s.cfg.Strict {
		return err
	}
	return nil
}
