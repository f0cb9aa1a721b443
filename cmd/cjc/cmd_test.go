// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"testing"

	"github.com/ValentineStone/cjc/internal/config"
	"github.com/ValentineStone/cjc/internal/testutil"
)

type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cfgDir string
}

// newTestApp returns an App writing to buffers, with configuration lookups
// confined to temp directories.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)
	testutil.MustChdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Stdout: &stdout, Stderr: &stderr})
	return &testApp{App: app, stdout: &stdout, stderr: &stderr, cfgDir: cfgDir}
}

func (a *testApp) execute(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(a.App)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.ExecuteContext(t.Context())
}
