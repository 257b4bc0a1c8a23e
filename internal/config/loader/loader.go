// Package loader reads hexstorm configuration sources into nested maps.
//
// File loaders parse TOML or YAML; the environment loader turns
// HEXSTORM_* variables into the same shape so the sources can be merged
// with DeepMerge.
package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is the file access the file loaders need. fstest.MapFS
// satisfies it in tests.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a configuration file format.
type Format uint8

const (
	// FormatUnknown is an unrecognized extension.
	FormatUnknown Format = iota
	// FormatTOML is a .toml file.
	FormatTOML
	// FormatYAML is a .yaml or .yml file.
	FormatYAML
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// ForPath returns the file loader for path's format, or nil if the
// extension is not recognized.
func ForPath(fsys FileSystem, path string) Loader {
	switch FormatOf(path) {
	case FormatTOML:
		return NewTOMLLoaderWithFS(fsys, path)
	case FormatYAML:
		return NewYAMLLoaderWithFS(fsys, path)
	default:
		return nil
	}
}

// readFile reads path, mapping a missing file to nil data and no error.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
