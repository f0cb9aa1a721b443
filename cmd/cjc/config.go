// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ValentineStone/cjc/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `cjc config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cjc configuration",
		Long: `Manage cjc configuration.

Configuration is stored in:
  - Linux: ~/.config/cjc/config.cue
  - macOS: ~/Library/Application Support/cjc/config.cue
  - Windows: %APPDATA%\cjc\config.cue

Every key can be overridden from the environment with the ` + config.EnvPrefix + `_ prefix,
for example ` + config.EnvPrefix + `_CHUNK_SIZE=4096 or ` + config.EnvPrefix + `_LOG_FILE=/tmp/cjc.log.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file (at --config when given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, opts)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the loaded configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, opts, config.Format(format))
		},
	}
	dumpCmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format ("+strings.Join(formatNames(), ", ")+")")
	_ = dumpCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return formatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *rootOptions) error {
	cfg, path, err := app.loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	source := SubtitleStyle.Render("(defaults)")
	if path != "" {
		source = CmdStyle.Render(path)
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	fmt.Fprintln(w, renderField("file:", source))
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderField("interpreters:", CmdStyle.Render(strings.Join(cfg.Interpreters, ", "))))
	fmt.Fprintln(w, renderField("probe_args:", strings.Join(cfg.ProbeArgs, " ")))
	fmt.Fprintln(w, renderField("chunk_size:", strconv.Itoa(cfg.ChunkSize)))
	fmt.Fprintln(w, renderField("script_path:", valueOrNone(cfg.ScriptPath)))
	fmt.Fprintln(w, renderField("strict:", strconv.FormatBool(cfg.Strict)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("log"))
	fmt.Fprintln(w, renderField("verbose:", strconv.FormatBool(cfg.Log.Verbose)))
	fmt.Fprintln(w, renderField("file:", valueOrNone(cfg.Log.File)))
	fmt.Fprintln(w, renderField("level:", string(cfg.Log.Level)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("ui"))
	fmt.Fprintln(w, renderField("color_scheme:", string(cfg.UI.ColorScheme)))
	return nil
}

func initConfig(app *App, opts *rootOptions) error {
	cfgPath, created, err := config.CreateDefaultConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintln(app.stdout, WarningStyle.Render("Config file already exists: ")+CmdStyle.Render(cfgPath))
		return nil
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Created config file: ")+CmdStyle.Render(cfgPath))
	return nil
}

func showConfigPath(app *App, opts *rootOptions) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.ConfigFilePath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	status := WarningStyle.Render("(not found)")
	if _, err := os.Stat(cfgPath); err == nil {
		status = SuccessStyle.Render("(exists)")
	}
	fmt.Fprintln(app.stdout, CmdStyle.Render(cfgPath)+" "+status)
	return nil
}

func dumpConfig(ctx context.Context, app *App, opts *rootOptions, format config.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	cfg, _, err := app.loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	out, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	_, err = app.stdout.Write(out)
	return err
}

// formatNames lists the dump formats for help text and completion.
func formatNames() []string {
	formats := config.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

func valueOrNone(s string) string {
	if s == "" {
		return SubtitleStyle.Render("(none)")
	}
	return s
}
