// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MainPath is the logical path of the bundled script inside the embedded filesystem.
const MainPath = "__main__.py"

// ErrSourceUnavailable is returned when a payload source cannot be opened.
var ErrSourceUnavailable = errors.New("payload source unavailable")

//go:embed __main__.py
var bundled embed.FS

type (
	// Source is a read-only byte source for a script payload.
	// Each call to Open returns an independent reader positioned at the start.
	Source interface {
		// Name identifies the source in logs and diagnostics.
		Name() string
		// Open returns a reader over the payload bytes. Callers must close it.
		Open() (io.ReadCloser, error)
	}

	// SourceError reports a failure to open a payload source.
	// It wraps ErrSourceUnavailable for errors.Is() compatibility.
	SourceError struct {
		Name string
		Err  error
	}

	fsSource struct {
		fsys fs.FS
		path string
		name string
	}
)

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable, e.Name, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// Embedded returns the script bundled into the binary.
func Embedded() Source {
	return &fsSource{fsys: bundled, path: MainPath, name: "embedded:/" + MainPath}
}

// FromFS returns a source reading path from fsys.
func FromFS(fsys fs.FS, path string) Source {
	return &fsSource{fsys: fsys, path: path, name: path}
}

// FromFile returns a source reading a script from the host filesystem.
func FromFile(path string) Source {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &fsSource{
		fsys: os.DirFS(filepath.Dir(abs)),
		path: filepath.Base(abs),
		name: abs,
	}
}

// Name returns the display name of the source.
func (s *fsSource) Name() string { return s.name }

// Open opens the payload for reading.
func (s *fsSource) Open() (io.ReadCloser, error) {
	if s.fsys == nil || strings.TrimSpace(s.path) == "" {
		return nil, &SourceError{Name: s.name, Err: fs.ErrInvalid}
	}
	f, err := s.fsys.Open(s.path)
	if err != nil {
		return nil, &SourceError{Name: s.name, Err: err}
	}
	return f, nil
}

// ReadAll returns the full contents of src.
func ReadAll(src Source) ([]byte, error) {
	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }() // Read-only; close error non-critical

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceError{Name: src.Name(), Err: err}
	}
	return data, nil
}
