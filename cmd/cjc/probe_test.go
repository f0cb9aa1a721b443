// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/ValentineStone/cjc/internal/testutil"
)

func TestProbe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping process test in short mode")
	}

	t.Run("primary available", func(t *testing.T) {
		app := newTestApp(t)
		dir := t.TempDir()
		python3 := testutil.WriteFakeInterpreter(t, dir, "python3", testutil.FakeInterpreterOptions{})
		testutil.IsolatePath(t, dir)

		if err := app.execute(t, "probe"); err != nil {
			t.Fatalf("execute() error = %v", err)
		}
		out := app.stdout.String()
		if !strings.Contains(out, "✓ python3") || !strings.Contains(out, "Selected:") {
			t.Errorf("output = %q", out)
		}
		if strings.Contains(out, "fallback") {
			t.Errorf("output = %q, want no fallback", out)
		}
		if got := python3.Invocations(t); len(got) != 1 || got[0] != "-c pass" {
			t.Errorf("python3 invocations = %q, want the probe only", got)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		app := newTestApp(t)
		testutil.IsolatePath(t, t.TempDir())

		if err := app.execute(t, "probe"); err != nil {
			t.Fatalf("execute() error = %v", err)
		}
		out := app.stdout.String()
		if !strings.Contains(out, "✗ python3") || !strings.Contains(out, "python (fallback, not probed)") {
			t.Errorf("output = %q", out)
		}
	})
}
