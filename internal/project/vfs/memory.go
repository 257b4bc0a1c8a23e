package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

var errIsDir = syscall.EISDIR

// MemFS implements VFS using an in-memory file system.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool

	// failures injects errors per operation name ("read", "write", "rename", "remove").
	failures map[string]error
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:    make(map[string]*memFile),
		dirs:     map[string]bool{"/": true},
		failures: make(map[string]error),
	}
}

// Ensure MemFS implements VFS.
var _ VFS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if err := m.failures["read"]; err != nil {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: err}
	}
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to a file. The parent directory must exist.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if err := m.failures["write"]; err != nil {
		return &fs.PathError{Op: "write", Path: filePath, Err: err}
	}
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: errIsDir}
	}
	if dir := path.Dir(filePath); !m.dirs[dir] {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{content: content, mode: perm, modTime: time.Now()}
	return nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		return NewFileInfo(filePath, path.Base(filePath), int64(len(f.content)), f.mode, f.modTime, false), nil
	}
	if m.dirs[filePath] {
		return NewFileInfo(filePath, path.Base(filePath), 0, fs.ModeDir|0755, time.Time{}, true), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// Rename moves a file, replacing any file at newPath.
func (m *MemFS) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath = m.cleanPath(oldPath)
	newPath = m.cleanPath(newPath)
	if err := m.failures["rename"]; err != nil {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: err}
	}
	f, ok := m.files[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if !m.dirs[path.Dir(newPath)] {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	if m.dirs[newPath] {
		return &fs.PathError{Op: "rename", Path: newPath, Err: errIsDir}
	}

	m.files[newPath] = f
	delete(m.files, oldPath)
	return nil
}

// Remove removes a file.
func (m *MemFS) Remove(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if err := m.failures["remove"]; err != nil {
		return &fs.PathError{Op: "remove", Path: filePath, Err: err}
	}
	if _, ok := m.files[filePath]; !ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(m.files, filePath)
	return nil
}

// Abs returns the absolute path (already absolute in MemFS).
func (m *MemFS) Abs(filePath string) (string, error) {
	return m.cleanPath(filePath), nil
}

// Dir returns the directory of filePath.
func (m *MemFS) Dir(filePath string) string {
	return path.Dir(m.cleanPath(filePath))
}

// Base returns the last element of filePath.
func (m *MemFS) Base(filePath string) string {
	return path.Base(filePath)
}

// Join joins path elements.
func (m *MemFS) Join(elem ...string) string {
	return path.Join(elem...)
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	_, isFile := m.files[filePath]
	return isFile || m.dirs[filePath]
}

// cleanPath normalizes a path.
func (m *MemFS) cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// AddFile is a convenience method for adding files during setup.
// Parent directories are created as needed.
func (m *MemFS) AddFile(filePath string, content []byte) error {
	m.mu.Lock()
	for dir := path.Dir(m.cleanPath(filePath)); dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
	m.mu.Unlock()
	return m.WriteFile(filePath, content, 0644)
}

// Fail makes every subsequent op ("read", "write", "rename", "remove")
// return err. A nil err clears the failure.
func (m *MemFS) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// Files returns all file paths in the file system.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
