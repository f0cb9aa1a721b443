// SPDX-License-Identifier: MPL-2.0

// Package interp selects the interpreter that will run the bundled script.
//
// Candidates are tried in order with a throwaway probe invocation
// (`<name> -c pass`). The first candidate whose probe can be started wins.
// The final candidate is the fallback and is selected without a probe; if it
// turns out to be missing, the launch itself reports that.
package interp
