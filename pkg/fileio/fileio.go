// Package fileio loads whole files into byte buffers and stores buffers back
// to disk. It is the file boundary around the codec package, which itself
// never performs I/O.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
)

// ErrFileAccess is matched by every error returned from this package.
var ErrFileAccess = &accessError{"failed to access the file"}

type accessError struct {
	message string
}

func (e *accessError) Error() string {
	return e.message
}

// FileAccessError records the failed operation and the path involved
type FileAccessError struct {
	Op   string // "load" or "store"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, ErrFileAccess.message, e.Err)
}

// Unwrap exposes both ErrFileAccess and the underlying OS error.
func (e *FileAccessError) Unwrap() []error {
	return []error{ErrFileAccess, e.Err}
}

// Load returns the full contents of the file at path.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Op: "load", Path: path, Err: err}
	}
	return data, nil
}

// Store writes buf to path, replacing any existing file. Missing parent
// directories are created.
func Store(path string, buf []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &FileAccessError{Op: "store", Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, buf, 0600); err != nil {
		return &FileAccessError{Op: "store", Path: path, Err: err}
	}
	return nil
}
