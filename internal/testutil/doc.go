// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// FakeInterpreter writes small POSIX shell scripts that stand in for python3
// and python, so process-level behavior (probe, spawn, stdin forwarding) can
// be tested on hosts without Python installed.
package testutil
