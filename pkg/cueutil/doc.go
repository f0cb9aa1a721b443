// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers: user-facing error formatting
// with JSON-path locations, and input size checks performed before parsing.
package cueutil
