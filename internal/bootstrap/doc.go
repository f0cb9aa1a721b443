// SPDX-License-Identifier: MPL-2.0

// Package bootstrap launches the bundled script inside a host Python interpreter.
//
// A run is strictly sequential: select an interpreter (internal/interp),
// start it with stdin piped, forward the payload (internal/payload) in fixed
// chunks, close stdin, and wait for the child to exit. The child's stdin is
// closed on every path, and a child that was started is always waited on.
//
// Run never returns a Go error. Every failure is folded into a Result whose
// Outcome names what went wrong, so the caller decides how loud to be. The
// CLI keeps the process-level contract silent and exits 0 unless strict mode
// is requested.
package bootstrap
