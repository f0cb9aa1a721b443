// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ValentineStone/cjc/internal/bootstrap"
	"github.com/ValentineStone/cjc/internal/config"
	"github.com/ValentineStone/cjc/internal/interp"
	"github.com/ValentineStone/cjc/internal/issue"
	"github.com/ValentineStone/cjc/internal/payload"

	"github.com/charmbracelet/log"
)

const logPrefix = "cjc"

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every command handler receives an App reference.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootOptions holds the persistent flag values shared by all commands.
	rootOptions struct {
		verbose      bool
		configPath   string
		interpreters []string
		strict       bool
		logFile      string
	}

	// session is the per-invocation state resolved from flags and configuration.
	session struct {
		cfg     *config.Config
		cfgPath string
		logger  *log.Logger
		closers []io.Closer
	}
)

// NewApp creates an App, filling production defaults for nil dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadConfig loads configuration for a command. A load failure is returned
// together with the defaults so callers can choose to continue.
func (a *App) loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, string, error) {
	res, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return config.DefaultConfig(), "", err
	}
	return res.Config, res.Path, nil
}

// openSession resolves configuration, applies flag overrides and builds the
// logger. Configuration errors never abort: they are logged, reported on
// stderr in strict mode, and the defaults apply.
func (a *App) openSession(ctx context.Context, opts *rootOptions) *session {
	cfg, path, cfgErr := a.loadConfig(ctx, opts)
	applyFlags(cfg, opts)

	s := &session{cfg: cfg, cfgPath: path}
	s.logger = a.newLogger(s)

	if cfgErr != nil {
		s.logger.Warn("using default configuration", "error", formatErrorForDisplay(cfgErr, cfg.Log.Verbose))
		if cfg.Strict {
			renderIssue(a.stderr, issue.ConfigLoadFailedId, cfg)
		}
	} else if path != "" {
		s.logger.Debug("configuration loaded", "path", path)
	}
	return s
}

// close releases the session's log file, if any.
func (s *session) close() {
	for _, c := range s.closers {
		_ = c.Close() // Log sink; nothing left to report to
	}
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func applyFlags(cfg *config.Config, opts *rootOptions) {
	if len(opts.interpreters) > 0 {
		cfg.Interpreters = opts.interpreters
	}
	if opts.strict {
		cfg.Strict = true
	}
	if opts.verbose {
		cfg.Log.Verbose = true
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
}

// newLogger builds the internal logger. Verbose mode logs to stderr at debug
// level, a log file receives the configured level, and otherwise every
// record is discarded.
func (a *App) newLogger(s *session) *log.Logger {
	level, err := s.cfg.Log.Level.Level()
	if err != nil {
		level = log.InfoLevel
	}

	var sinks []io.Writer
	var fileErr error
	if s.cfg.Log.Verbose {
		sinks = append(sinks, a.stderr)
		level = log.DebugLevel
	}
	if s.cfg.Log.File != "" {
		f, err := os.OpenFile(s.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fileErr = err
		} else {
			sinks = append(sinks, f)
			s.closers = append(s.closers, f)
		}
	}

	if len(sinks) == 0 {
		return log.New(io.Discard)
	}

	logger := log.NewWithOptions(io.MultiWriter(sinks...), log.Options{
		Prefix:          logPrefix,
		Level:           level,
		ReportTimestamp: s.cfg.Log.File != "",
	})
	if fileErr != nil {
		logger.Warn("cannot open log file", "path", s.cfg.Log.File, "error", fileErr)
	}
	return logger
}

// newBootstrapper builds a Bootstrapper from the session configuration.
func (a *App) newBootstrapper(s *session) (*bootstrap.Bootstrapper, error) {
	candidates, err := s.cfg.Candidates()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(bootstrap.Options{
		Candidates: candidates,
		Prober:     &interp.ExecProber{Args: s.cfg.ProbeArgs},
		Source:     scriptSource(s.cfg),
		ChunkSize:  payload.ChunkSize(s.cfg.ChunkSize),
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		Logger:     s.logger,
	})
}

// scriptSource returns the configured script, defaulting to the bundled one.
func scriptSource(cfg *config.Config) payload.Source {
	if cfg.ScriptPath != "" {
		return payload.FromFile(cfg.ScriptPath)
	}
	return payload.Embedded()
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their own formatting; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderIssue writes the catalog guidance for id to w.
func renderIssue(w io.Writer, id issue.Id, cfg *config.Config) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	out, err := entry.Render(cfg.UI.ColorScheme.GlamourStyle())
	if err != nil {
		out = entry.Markdown()
	}
	fmt.Fprint(w, out)
}
