// SPDX-License-Identifier: MPL-2.0

// Package payload holds the Python script bundled into the launcher binary.
//
// The script is embedded at build time and exposed through the read-only
// Source abstraction. Stream forwards a source to a writer in fixed-size
// chunks and reports what was forwarded (byte count, chunk count and a
// BLAKE3 digest), so callers can confirm the child received the payload
// byte-for-byte.
package payload
