// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ValentineStone/cjc/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the cjc command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cjc",
		Short: "Run the bundled Python script in a host interpreter",
		Long: TitleStyle.Render("cjc") + SubtitleStyle.Render(" - run the bundled Python script in a host interpreter") + `

Without a subcommand, cjc probes ` + "`python3 -c pass`" + `, falls back to ` + "`python`" + `,
and streams the bundled script into the interpreter's standard input. It
exits 0 and prints nothing of its own unless --strict or --verbose is given.

` + SubtitleStyle.Render("Examples:") + `
  cjc                            Run the bundled script
  cjc --interpreter "py -3"      Use a specific interpreter command
  cjc --strict                   Exit with the script's exit status
  cjc probe                      Show which interpreter would be used
  cjc script --digest            Print the BLAKE3 digest of the script
  cjc config show                Show current configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), app, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log launcher diagnostics to stderr")
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/"+config.AppName+"/config.cue)")
	flags.StringArrayVar(&opts.interpreters, "interpreter", nil, "interpreter command to try, in order (repeatable; the last is used unprobed)")
	flags.BoolVar(&opts.strict, "strict", false, "exit with the script's status, or 1 when the launch fails")
	flags.StringVar(&opts.logFile, "log-file", "", "append launcher diagnostics to this file")

	rootCmd.AddCommand(newProbeCommand(app, opts))
	rootCmd.AddCommand(newScriptCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// handleError prints errors through fang, except ExitErrors that were
// already reported.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
