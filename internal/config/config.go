package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/hexstorm/internal/config/loader"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "hexstorm.toml"

// DefaultEnvPrefix prefixes environment overrides.
const DefaultEnvPrefix = "HEXSTORM_"

// Config holds merged hexstorm settings: built-in defaults, then the
// config file, then environment variables.
type Config struct {
	mu   sync.RWMutex
	data map[string]any

	path      string
	fs        loader.FileSystem
	envPrefix string
	environ   []string
	useEnv    bool

	// configErrors stores errors encountered during section access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the config file path. The extension selects the format.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system config files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron reads overrides from environ instead of the process environment.
func WithEnviron(environ []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(c *Config) {
		c.useEnv = false
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		data:      defaultConfig(),
		fs:        loader.DefaultFS(),
		envPrefix: DefaultEnvPrefix,
		useEnv:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.path == "" {
		c.path = defaultConfigPath()
	}
	return c
}

// Load builds the configuration from defaults, the config file and the
// environment. A missing config file is not an error.
func (c *Config) Load(_ context.Context) error {
	merged := defaultConfig()

	if c.path != "" {
		l := loader.ForPath(c.fs, c.path)
		if l == nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, c.path)
		}
		fileData, err := l.Load()
		if err != nil {
			return err
		}
		merged = loader.DeepMerge(merged, fileData)
	}

	if c.useEnv {
		var env *loader.EnvLoader
		if c.environ != nil {
			env = loader.NewEnvLoaderWithEnviron(c.envPrefix, c.environ)
		} else {
			env = loader.NewEnvLoader(c.envPrefix)
		}
		envData, err := env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envData)
	}

	c.mu.Lock()
	c.data = merged
	c.configErrors = nil
	c.mu.Unlock()
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.data, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n, nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case int64:
		return val != 0, nil
	case int:
		return val != 0, nil
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
}

// GetStringSlice returns a string slice at the given path. A single
// string is a one-element slice.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case string:
		return []string{val}, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// Set overrides a value, for example from a command-line flag.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return setPath(c.data, path, value)
}

// Merged returns a deep copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.data)
}

// defaultConfigPath returns hexstorm.toml in the user config directory.
func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hexstorm", DefaultFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hexstorm", DefaultFileName)
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"formatter":     "hex",
			"bytes_per_row": 0,
			"max_undo":      1000,
			"read_only":     false,
		},
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
		"watch": map[string]any{
			"enabled":     true,
			"debounce_ms": 100,
		},
		"plugin": map[string]any{
			"scripts":    []any{},
			"dir":        "",
			"timeout_ms": 5000,
		},
		"theme": map[string]any{
			"offset": "",
			"human":  "",
			"cursor": "",
			"error":  "",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, skipping empty parts.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
