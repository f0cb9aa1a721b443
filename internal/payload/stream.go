// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/zeebo/blake3"
)

const (
	// DefaultChunkSize is the read/write unit used when forwarding a payload.
	DefaultChunkSize ChunkSize = 1024
	// MaxChunkSize bounds the forwarding buffer.
	MaxChunkSize ChunkSize = 1 << 20
)

var (
	// ErrInvalidChunkSize is the sentinel error wrapped by InvalidChunkSizeError.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrWriteFailed is returned by Stream when the destination rejects a chunk.
	ErrWriteFailed = errors.New("payload write failed")
	// ErrReadFailed is returned by Stream when the source fails mid-read.
	ErrReadFailed = errors.New("payload read failed")
)

type (
	// ChunkSize is the number of bytes read from a source per write.
	ChunkSize int

	// InvalidChunkSizeError is returned when a ChunkSize is outside 1..MaxChunkSize.
	InvalidChunkSizeError struct {
		Value ChunkSize
	}

	// Digest is a BLAKE3-256 digest of forwarded payload bytes.
	Digest [32]byte

	// StreamStats describes what Stream forwarded.
	StreamStats struct {
		Bytes  int64
		Chunks int
		Digest Digest
	}
)

// Error implements the error interface.
func (e *InvalidChunkSizeError) Error() string {
	return fmt.Sprintf("invalid chunk size %d (must be in range 1-%d)", e.Value, MaxChunkSize)
}

// Unwrap returns ErrInvalidChunkSize for errors.Is() compatibility.
func (e *InvalidChunkSizeError) Unwrap() error { return ErrInvalidChunkSize }

// Validate returns an error if the chunk size is out of range.
func (c ChunkSize) Validate() error {
	if c < 1 || c > MaxChunkSize {
		return &InvalidChunkSizeError{Value: c}
	}
	return nil
}

// String returns the decimal representation of the chunk size.
func (c ChunkSize) String() string { return strconv.Itoa(int(c)) }

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Stream copies src to dst in chunks of at most size bytes, in order, until
// src reports io.EOF. Every byte read is written before the next read.
// The returned stats cover exactly the bytes dst accepted.
func Stream(dst io.Writer, src io.Reader, size ChunkSize) (StreamStats, error) {
	var stats StreamStats
	if err := size.Validate(); err != nil {
		return stats, err
	}

	hasher := blake3.New()
	buf := make([]byte, size)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			written, writeErr := dst.Write(buf[:n])
			if written > 0 {
				hasher.Write(buf[:written])
				stats.Bytes += int64(written)
			}
			if writeErr == nil && written < n {
				writeErr = io.ErrShortWrite
			}
			if writeErr != nil {
				stats.Digest = sum(hasher)
				return stats, fmt.Errorf("%w: %w", ErrWriteFailed, writeErr)
			}
			stats.Chunks++
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			stats.Digest = sum(hasher)
			return stats, fmt.Errorf("%w: %w", ErrReadFailed, readErr)
		}
	}

	stats.Digest = sum(hasher)
	return stats, nil
}

// DigestOf computes the BLAKE3 digest of the full contents of src.
func DigestOf(src Source) (Digest, int64, error) {
	r, err := src.Open()
	if err != nil {
		return Digest{}, 0, err
	}
	defer func() { _ = r.Close() }() // Read-only; close error non-critical

	stats, err := Stream(io.Discard, r, DefaultChunkSize)
	if err != nil {
		return Digest{}, 0, err
	}
	return stats.Digest, stats.Bytes, nil
}

func sum(h *blake3.Hasher) Digest {
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
