// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/zeebo/blake3"
)

type (
	// failingWriter accepts up to limit bytes, then fails.
	failingWriter struct {
		buf   bytes.Buffer
		limit int
		err   error
	}

	// recordingWriter records the size of every Write call.
	recordingWriter struct {
		bytes.Buffer
		sizes []int
	}
)

func (w *failingWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if room <= 0 {
		return 0, w.err
	}
	if len(p) > room {
		w.buf.Write(p[:room])
		return room, w.err
	}
	return w.buf.Write(p)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

func blake3Of(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

func TestStream_ByteExactAcrossChunkSizes(t *testing.T) {
	payload := bytes.Repeat([]byte("print(\"hi\")\n# \x00\xff padding\n"), 257)

	for _, size := range []ChunkSize{1, 7, 512, 1024, 4096, ChunkSize(len(payload)), ChunkSize(len(payload) + 1)} {
		t.Run(size.String(), func(t *testing.T) {
			var dst bytes.Buffer
			stats, err := Stream(&dst, bytes.NewReader(payload), size)
			if err != nil {
				t.Fatalf("Stream() error = %v", err)
			}
			if !bytes.Equal(dst.Bytes(), payload) {
				t.Fatalf("Stream() forwarded %d bytes that differ from the %d-byte payload", dst.Len(), len(payload))
			}
			if stats.Bytes != int64(len(payload)) {
				t.Errorf("stats.Bytes = %d, want %d", stats.Bytes, len(payload))
			}
			if stats.Digest != blake3Of(payload) {
				t.Errorf("stats.Digest = %s, want %s", stats.Digest, blake3Of(payload))
			}
		})
	}
}

func TestStream_ChunkBoundaries(t *testing.T) {
	payload := strings.Repeat("x", 2500)
	dst := &recordingWriter{}

	stats, err := Stream(dst, strings.NewReader(payload), DefaultChunkSize)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	want := []int{1024, 1024, 452}
	if len(dst.sizes) != len(want) {
		t.Fatalf("write sizes = %v, want %v", dst.sizes, want)
	}
	for i := range want {
		if dst.sizes[i] != want[i] {
			t.Errorf("write[%d] = %d, want %d", i, dst.sizes[i], want[i])
		}
	}
	if stats.Chunks != 3 {
		t.Errorf("stats.Chunks = %d, want 3", stats.Chunks)
	}
}

func TestStream_ShortReads(t *testing.T) {
	payload := []byte(strings.Repeat("abcdefgh", 300))
	var dst bytes.Buffer

	if _, err := Stream(&dst, iotest.HalfReader(bytes.NewReader(payload)), 64); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if !bytes.Equal(dst.Bytes(), payload) {
		t.Error("Stream() output differs from payload under short reads")
	}
}

func TestStream_DataWithEOF(t *testing.T) {
	payload := []byte("tail bytes delivered together with EOF")
	var dst bytes.Buffer

	if _, err := Stream(&dst, iotest.DataErrReader(bytes.NewReader(payload)), 8); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if !bytes.Equal(dst.Bytes(), payload) {
		t.Errorf("Stream() = %q, want %q", dst.Bytes(), payload)
	}
}

func TestStream_Empty(t *testing.T) {
	var dst bytes.Buffer
	stats, err := Stream(&dst, bytes.NewReader(nil), DefaultChunkSize)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if stats.Bytes != 0 || stats.Chunks != 0 {
		t.Errorf("stats = %+v, want zero bytes and chunks", stats)
	}
	if stats.Digest != blake3Of(nil) {
		t.Errorf("stats.Digest = %s, want digest of empty input", stats.Digest)
	}
}

func TestStream_WriteFailure(t *testing.T) {
	pipeErr := errors.New("broken pipe")
	dst := &failingWriter{limit: 10, err: pipeErr}

	stats, err := Stream(dst, strings.NewReader(strings.Repeat("y", 100)), 4)
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("Stream() error = %v, want ErrWriteFailed", err)
	}
	if !errors.Is(err, pipeErr) {
		t.Errorf("Stream() error = %v, want cause in chain", err)
	}
	if stats.Bytes != 10 {
		t.Errorf("stats.Bytes = %d, want 10", stats.Bytes)
	}
}

func TestStream_ReadFailure(t *testing.T) {
	readErr := errors.New("disk gone")
	src := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(readErr))
	var dst bytes.Buffer

	_, err := Stream(&dst, src, DefaultChunkSize)
	if !errors.Is(err, ErrReadFailed) {
		t.Fatalf("Stream() error = %v, want ErrReadFailed", err)
	}
	if !errors.Is(err, readErr) {
		t.Errorf("Stream() error = %v, want cause in chain", err)
	}
	if dst.String() != "partial" {
		t.Errorf("forwarded = %q, want %q", dst.String(), "partial")
	}
}

func TestChunkSize_Validate(t *testing.T) {
	tests := []struct {
		size    ChunkSize
		wantErr bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{DefaultChunkSize, false},
		{MaxChunkSize, false},
		{MaxChunkSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			err := tt.size.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidChunkSize) {
				t.Errorf("Validate() error = %v, want ErrInvalidChunkSize", err)
			}
		})
	}
}

func TestStream_RejectsInvalidChunkSize(t *testing.T) {
	var dst bytes.Buffer
	_, err := Stream(&dst, strings.NewReader("abc"), 0)
	if !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("Stream() error = %v, want ErrInvalidChunkSize", err)
	}
	if dst.Len() != 0 {
		t.Errorf("Stream() wrote %d bytes with invalid chunk size", dst.Len())
	}
}

func TestDigestOf_Embedded(t *testing.T) {
	data, err := ReadAll(Embedded())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	digest, n, err := DigestOf(Embedded())
	if err != nil {
		t.Fatalf("DigestOf() error = %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("DigestOf() size = %d, want %d", n, len(data))
	}
	if digest != blake3Of(data) {
		t.Errorf("DigestOf() = %s, want %s", digest, blake3Of(data))
	}
	if len(digest.String()) != 64 {
		t.Errorf("Digest.String() length = %d, want 64", len(digest.String()))
	}
}
