// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ValentineStone/cjc/internal/issue"
	"github.com/ValentineStone/cjc/internal/payload"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type scriptOptions struct {
	raw    bool
	digest bool
}

func newScriptCommand(app *App, opts *rootOptions) *cobra.Command {
	var sopts scriptOptions

	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Print the script that a launch forwards",
		Long: `Print the script a launch forwards to the interpreter: the bundled
` + payload.MainPath + `, or the file named by script_path in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), app, opts, sopts)
		},
	}

	scriptCmd.Flags().BoolVar(&sopts.raw, "raw", false, "print the script bytes unchanged")
	scriptCmd.Flags().BoolVar(&sopts.digest, "digest", false, "print the BLAKE3 digest and size of the script")
	scriptCmd.MarkFlagsMutuallyExclusive("raw", "digest")

	return scriptCmd
}

func runScript(ctx context.Context, app *App, opts *rootOptions, sopts scriptOptions) error {
	s := app.openSession(ctx, opts)
	defer s.close()

	src := scriptSource(s.cfg)

	if sopts.digest {
		sum, n, err := payload.DigestOf(src)
		if err != nil {
			return issue.WrapWithOperation(err, "read script")
		}
		fmt.Fprintf(app.stdout, "%s  %s (%d bytes)\n", sum, src.Name(), n)
		return nil
	}

	data, err := payload.ReadAll(src)
	if err != nil {
		return issue.WrapWithOperation(err, "read script")
	}

	if sopts.raw {
		_, err := app.stdout.Write(data)
		return err
	}

	md := "```python\n" + strings.TrimRight(string(data), "\n") + "\n```\n"
	out, err := glamour.Render(md, s.cfg.UI.ColorScheme.GlamourStyle())
	if err != nil {
		return fmt.Errorf("failed to render script: %w", err)
	}
	fmt.Fprintln(app.stdout, SubtitleStyle.Render(src.Name()))
	fmt.Fprint(app.stdout, out)
	return nil
}
