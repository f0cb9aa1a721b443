// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type (
	// FakeInterpreterOptions controls how a fake interpreter behaves.
	FakeInterpreterOptions struct {
		// ProbeExit is the exit status for `-c ...` invocations.
		ProbeExit int
		// RunExit is the exit status after stdin has been consumed.
		RunExit int
		// Stdout is printed after stdin has been consumed.
		Stdout string
		// SkipStdin makes the script exit without reading stdin.
		SkipStdin bool
	}

	// FakeInterpreter is an executable shell script standing in for a Python
	// interpreter. Every invocation appends its arguments to a log file; a
	// non-probe invocation copies stdin to a capture file.
	FakeInterpreter struct {
		Name      string
		Path      string
		LogPath   string
		StdinPath string
	}
)

// WriteFakeInterpreter creates dir/name as an executable fake interpreter.
// The test is skipped on Windows or when `cat` cannot be found.
func WriteFakeInterpreter(t testing.TB, dir, name string, opts FakeInterpreterOptions) *FakeInterpreter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are POSIX shell scripts")
	}
	catPath, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available, skipping test")
	}

	f := &FakeInterpreter{
		Name:      name,
		Path:      filepath.Join(dir, name),
		LogPath:   filepath.Join(dir, name+".log"),
		StdinPath: filepath.Join(dir, name+".stdin"),
	}

	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&sb, "printf '%%s\\n' \"$*\" >> '%s'\n", f.LogPath)
	fmt.Fprintf(&sb, "if [ \"$1\" = \"-c\" ]; then exit %d; fi\n", opts.ProbeExit)
	if !opts.SkipStdin {
		fmt.Fprintf(&sb, "'%s' > '%s'\n", catPath, f.StdinPath)
	}
	if opts.Stdout != "" {
		fmt.Fprintf(&sb, "printf '%%s\\n' '%s'\n", opts.Stdout)
	}
	fmt.Fprintf(&sb, "exit %d\n", opts.RunExit)

	MustWriteFile(t, f.Path, []byte(sb.String()), 0o755)
	return f
}

// Invocations returns the argument lists this interpreter was run with, in
// order. A launch without arguments appears as an empty string.
func (f *FakeInterpreter) Invocations(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read invocation log: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// Stdin returns what the interpreter read from standard input.
func (f *FakeInterpreter) Stdin(t testing.TB) []byte {
	t.Helper()
	return MustReadFile(t, f.StdinPath)
}

// IsolatePath replaces PATH with dirs for the rest of the test.
func IsolatePath(t testing.TB, dirs ...string) {
	t.Helper()
	t.Setenv("PATH", strings.Join(dirs, string(os.PathListSeparator)))
}
