// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentineStone/cjc/internal/config"
	"github.com/ValentineStone/cjc/internal/issue"
	"github.com/ValentineStone/cjc/internal/testutil"
)

func TestConfigInit(t *testing.T) {
	app := newTestApp(t)
	cfgPath := filepath.Join(app.cfgDir, "config.cue")

	if err := app.execute(t, "config", "init"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(app.stdout.String(), "Created config file") {
		t.Errorf("stdout = %q", app.stdout.String())
	}
	if got := string(testutil.MustReadFile(t, cfgPath)); got != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config file = %q", got)
	}

	app.stdout.Reset()
	if err := app.execute(t, "config", "init"); err != nil {
		t.Fatalf("second execute() error = %v", err)
	}
	if !strings.Contains(app.stdout.String(), "already exists") {
		t.Errorf("stdout = %q", app.stdout.String())
	}
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	app := newTestApp(t)
	explicit := filepath.Join(t.TempDir(), "custom.cue")

	if err := app.execute(t, "--config", explicit, "config", "init"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if out := app.stdout.String(); !strings.Contains(out, "Created config file") || !strings.Contains(out, explicit) {
		t.Errorf("stdout = %q", out)
	}
	if got := string(testutil.MustReadFile(t, explicit)); got != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config file = %q", got)
	}
	if _, err := os.Stat(filepath.Join(app.cfgDir, "config.cue")); !os.IsNotExist(err) {
		t.Error("default config file should not be written when --config is given")
	}

	app.stdout.Reset()
	if err := app.execute(t, "--config", explicit, "config", "init"); err != nil {
		t.Fatalf("second execute() error = %v", err)
	}
	if !strings.Contains(app.stdout.String(), "already exists") {
		t.Errorf("stdout = %q", app.stdout.String())
	}
}

func TestConfigPath(t *testing.T) {
	app := newTestApp(t)

	if err := app.execute(t, "config", "path"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	out := app.stdout.String()
	if !strings.Contains(out, filepath.Join(app.cfgDir, "config.cue")) || !strings.Contains(out, "(not found)") {
		t.Errorf("stdout = %q", out)
	}

	explicit := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, explicit, []byte("strict: true\n"), 0o644)
	app.stdout.Reset()
	if err := app.execute(t, "--config", explicit, "config", "path"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if out := app.stdout.String(); !strings.Contains(out, explicit) || !strings.Contains(out, "(exists)") {
		t.Errorf("stdout = %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	app := newTestApp(t)
	testutil.MustWriteFile(t, filepath.Join(app.cfgDir, "config.cue"), []byte(`interpreters: ["pypy3", "python3"]`+"\n"), 0o644)

	if err := app.execute(t, "config", "show"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	out := app.stdout.String()
	for _, want := range []string{"Configuration", "pypy3, python3", "1024", "color_scheme:"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShow_InvalidFile(t *testing.T) {
	app := newTestApp(t)
	testutil.MustWriteFile(t, filepath.Join(app.cfgDir, "config.cue"), []byte("chunk_size: -1\n"), 0o644)

	err := app.execute(t, "config", "show")
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("execute() error = %v, want *issue.ActionableError", err)
	}
}

func TestConfigDump(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"cue", "chunk_size: 2048"},
		{"yaml", "chunk_size: 2048"},
		{"toml", "chunk_size = 2048"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			app := newTestApp(t)
			testutil.MustWriteFile(t, filepath.Join(app.cfgDir, "config.cue"), []byte("chunk_size: 2048\n"), 0o644)

			if err := app.execute(t, "config", "dump", "--format", tt.format); err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if !strings.Contains(app.stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, app.stdout.String())
			}
		})
	}

	t.Run("completion", func(t *testing.T) {
		if got := strings.Join(formatNames(), ","); got != "cue,yaml,toml" {
			t.Errorf("formatNames() = %q", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		app := newTestApp(t)
		err := app.execute(t, "config", "dump", "--format", "ini")
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("execute() error = %v, want ErrInvalidFormat", err)
		}
	})
}
