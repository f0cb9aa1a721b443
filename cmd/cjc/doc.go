// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for cjc.
//
// The root command runs the bundled script in a host Python interpreter and,
// unless strict mode is enabled, always exits 0 without printing anything of
// its own. Subcommands inspect the interpreter selection, the bundled script
// and the configuration.
package cmd
