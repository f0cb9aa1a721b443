// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what was attempted, on which resource, and how to fix
// it. The issue catalog holds Markdown guidance for each launcher failure,
// rendered with glamour when the user asks for diagnostics.
package issue
