// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ValentineStone/cjc/internal/interp"

	"github.com/spf13/cobra"
)

func newProbeCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Show which interpreter would run the script",
		Long: `Probe the configured interpreters in order and report which one a launch
would use. Nothing is executed beyond the probe invocations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd.Context(), app, opts)
		},
	}
}

func runProbe(ctx context.Context, app *App, opts *rootOptions) error {
	s := app.openSession(ctx, opts)
	defer s.close()

	b, err := app.newBootstrapper(s)
	if err != nil {
		return err
	}

	sel, err := b.Probe(ctx)
	if err != nil {
		return err
	}

	renderSelection(app.stdout, sel)
	return nil
}

// renderSelection prints every probe attempt followed by the chosen interpreter.
func renderSelection(w io.Writer, sel interp.Selection) {
	fmt.Fprintln(w, TitleStyle.Render("Interpreter probe"))
	for _, a := range sel.Attempts {
		if a.Err == nil {
			fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(a.Candidate.String()))
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n", ErrorStyle.Render("✗"), CmdStyle.Render(a.Candidate.String()), SubtitleStyle.Render(a.Err.Error()))
	}

	selected := CmdStyle.Render(sel.Candidate.String())
	if sel.Fallback || len(sel.Attempts) == 0 {
		selected += " " + WarningStyle.Render("(fallback, not probed)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderField("Selected:", selected))
}
