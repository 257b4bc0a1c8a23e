package filestore

import (
	"errors"
	"fmt"
)

// Sentinel errors for file store operations.
var (
	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyPath indicates an empty path was supplied.
	ErrEmptyPath = errors.New("empty path")
)

// PathError represents an error associated with a file path.
type PathError struct {
	Op   string // load or save
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}
