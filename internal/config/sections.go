package config

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/dshills/hexstorm/internal/engine/format"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// Formatter is the byte display format at startup.
	Formatter format.Kind

	// BytesPerRow fixes the row width. 0 fits as many bytes as the
	// terminal allows.
	BytesPerRow int

	// MaxUndo caps the number of undo records kept.
	MaxUndo int

	// ReadOnly rejects every mutation.
	ReadOnly bool
}

// LogConfig provides type-safe access to logging settings.
type LogConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string

	// File is the log file. Empty discards log output.
	File string
}

// WatchConfig provides type-safe access to external change detection.
type WatchConfig struct {
	// Enabled watches the open file for changes made by other programs.
	Enabled bool

	// Debounce coalesces bursts of file events.
	Debounce time.Duration
}

// PluginConfig provides type-safe access to scripting settings.
type PluginConfig struct {
	// Scripts are Lua files run at startup, in order.
	Scripts []string

	// Dir holds *.lua files run at startup before Scripts. Empty skips it.
	Dir string

	// Timeout bounds each script run. 0 disables the limit.
	Timeout time.Duration
}

// ThemeConfig provides type-safe access to screen colors. Values are
// color names ("red", "gray") or "#rrggbb"; empty keeps the built-in
// color.
type ThemeConfig struct {
	Offset string
	Human  string
	Cursor string
	Error  string
}

// Editor returns type-safe access to editor settings.
func (c *Config) Editor() EditorConfig {
	name := c.getStringOr("editor.formatter", "hex")
	kind, err := format.ParseKind(name)
	if err != nil {
		c.recordConfigError("editor.formatter", fmt.Errorf("%w: %v", ErrInvalidValue, err))
	}
	return EditorConfig{
		Formatter:   kind,
		BytesPerRow: c.getNonNegativeIntOr("editor.bytes_per_row", 0),
		MaxUndo:     c.getNonNegativeIntOr("editor.max_undo", 1000),
		ReadOnly:    c.getBoolOr("editor.read_only", false),
	}
}

// Log returns type-safe access to logging settings.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "info"),
		File:  c.getStringOr("log.file", ""),
	}
}

// Watch returns type-safe access to file watch settings.
func (c *Config) Watch() WatchConfig {
	ms := c.getNonNegativeIntOr("watch.debounce_ms", 100)
	return WatchConfig{
		Enabled:  c.getBoolOr("watch.enabled", true),
		Debounce: time.Duration(ms) * time.Millisecond,
	}
}

// Plugin returns type-safe access to scripting settings.
func (c *Config) Plugin() PluginConfig {
	return PluginConfig{
		Scripts: c.getStringSliceOr("plugin.scripts", nil),
		Dir:     c.getStringOr("plugin.dir", ""),
		Timeout: time.Duration(c.getNonNegativeIntOr("plugin.timeout_ms", 5000)) * time.Millisecond,
	}
}

// Theme returns type-safe access to screen colors.
func (c *Config) Theme() ThemeConfig {
	return ThemeConfig{
		Offset: c.getStringOr("theme.offset", ""),
		Human:  c.getStringOr("theme.human", ""),
		Cursor: c.getStringOr("theme.cursor", ""),
		Error:  c.getStringOr("theme.error", ""),
	}
}

// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking
// callers, but indicate a configuration problem that should be fixed.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getNonNegativeIntOr(path string, defaultValue int) int {
	v := c.getIntOr(path, defaultValue)
	if v < 0 {
		c.recordConfigError(path, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, path))
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		v = defaultValue
	}
	// Return a copy to enforce the snapshot guarantee
	return append([]string(nil), v...)
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	return maps.Clone(c.configErrors)
}
