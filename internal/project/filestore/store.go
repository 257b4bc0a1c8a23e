// Package filestore loads and saves the raw bytes of edited files.
package filestore

import (
	"errors"
	"io/fs"

	"github.com/google/uuid"

	"github.com/dshills/hexstorm/internal/project/vfs"
)

const defaultMode fs.FileMode = 0644

// FileStore reads whole files and writes them atomically through a VFS.
type FileStore struct {
	vfs vfs.VFS

	// Maximum file size to load (0 = unlimited)
	maxFileSize int64

	// Called after every successful save with the absolute path.
	onSave []func(path string)
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithMaxFileSize sets the maximum file size.
func WithMaxFileSize(size int64) Option {
	return func(s *FileStore) {
		s.maxFileSize = size
	}
}

// WithOnSave registers a handler called after each successful save.
func WithOnSave(handler func(path string)) Option {
	return func(s *FileStore) {
		s.onSave = append(s.onSave, handler)
	}
}

// NewFileStore creates a new FileStore.
func NewFileStore(v vfs.VFS, opts ...Option) *FileStore {
	s := &FileStore{vfs: v}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Abs resolves path through the underlying VFS.
func (s *FileStore) Abs(path string) (string, error) {
	if path == "" {
		return "", &PathError{Op: "abs", Path: path, Err: ErrEmptyPath}
	}
	return s.vfs.Abs(path)
}

// Exists reports whether path exists.
func (s *FileStore) Exists(path string) bool {
	return path != "" && s.vfs.Exists(path)
}

// Load reads the whole file at path.
func (s *FileStore) Load(path string) ([]byte, error) {
	absPath, err := s.Abs(path)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Err: err}
	}

	info, err := s.vfs.Stat(absPath)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: "load", Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, &PathError{Op: "load", Path: path, Err: ErrFileTooLarge}
	}

	data, err := s.vfs.ReadFile(absPath)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Err: err}
	}
	return data, nil
}

// Save writes data to path. The bytes go to a sibling temporary file
// which is then renamed over the target, so a failed save leaves the
// previous file intact. An existing file's permissions are kept.
func (s *FileStore) Save(path string, data []byte) error {
	absPath, err := s.Abs(path)
	if err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	mode := defaultMode
	if info, err := s.vfs.Stat(absPath); err == nil {
		if info.IsDir() {
			return &PathError{Op: "save", Path: path, Err: ErrIsDirectory}
		}
		mode = info.Mode().Perm()
	}

	tmp := s.tempPath(absPath)
	if err := s.vfs.WriteFile(tmp, data, mode); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}
	if err := s.vfs.Rename(tmp, absPath); err != nil {
		if rmErr := s.vfs.Remove(tmp); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return &PathError{Op: "save", Path: path, Err: err}
	}

	for _, handler := range s.onSave {
		handler(absPath)
	}
	return nil
}

// tempPath returns "<path>.<uuid>.tmp" next to the target.
func (s *FileStore) tempPath(absPath string) string {
	name := s.vfs.Base(absPath) + "." + uuid.NewString() + ".tmp"
	return s.vfs.Join(s.vfs.Dir(absPath), name)
}
