package config

import (
	"context"
	"errors"
	"slices"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dshills/hexstorm/internal/engine/format"
)

func loadConfig(t *testing.T, files fstest.MapFS, path string, environ ...string) *Config {
	t.Helper()
	c := New(WithFileSystem(files), WithPath(path), WithEnviron(append([]string{}, environ...)))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := loadConfig(t, fstest.MapFS{}, "hexstorm.toml")

	ed := c.Editor()
	if ed.Formatter != format.Hex || ed.BytesPerRow != 0 || ed.MaxUndo != 1000 || ed.ReadOnly {
		t.Errorf("editor defaults = %+v", ed)
	}
	if lg := c.Log(); lg.Level != "info" || lg.File != "" {
		t.Errorf("log defaults = %+v", lg)
	}
	if w := c.Watch(); !w.Enabled || w.Debounce != 100*time.Millisecond {
		t.Errorf("watch defaults = %+v", w)
	}
	if p := c.Plugin(); len(p.Scripts) != 0 || p.Dir != "" || p.Timeout != 5*time.Second {
		t.Errorf("plugin defaults = %+v", p)
	}
	if errs := c.ConfigErrors(); len(errs) != 0 {
		t.Errorf("unexpected config errors: %v", errs)
	}
}

func TestLoadTOML(t *testing.T) {
	files := fstest.MapFS{
		"hexstorm.toml": {Data: []byte(`
[editor]
formatter = "dec"
bytes_per_row = 12

[log]
level = "debug"
file = "/tmp/hs.log"

[plugin]
scripts = ["init.lua"]
timeout_ms = 250

[theme]
cursor = "#ffcc00"
`)},
	}
	c := loadConfig(t, files, "hexstorm.toml")

	ed := c.Editor()
	if ed.Formatter != format.Decimal || ed.BytesPerRow != 12 {
		t.Errorf("editor = %+v", ed)
	}
	if ed.MaxUndo != 1000 {
		t.Errorf("unset max_undo lost its default: %d", ed.MaxUndo)
	}
	if lg := c.Log(); lg.Level != "debug" || lg.File != "/tmp/hs.log" {
		t.Errorf("log = %+v", lg)
	}
	if p := c.Plugin(); !slices.Equal(p.Scripts, []string{"init.lua"}) {
		t.Errorf("scripts = %q", p.Scripts)
	}
	if p := c.Plugin(); p.Timeout != 250*time.Millisecond {
		t.Errorf("plugin timeout = %v", p.Timeout)
	}
	if th := c.Theme(); th.Cursor != "#ffcc00" || th.Offset != "" {
		t.Errorf("theme = %+v", th)
	}
}

func TestLoadYAML(t *testing.T) {
	files := fstest.MapFS{
		"hexstorm.yml": {Data: []byte("watch:\n  enabled: false\n  debounce_ms: 20\n")},
	}
	c := loadConfig(t, files, "hexstorm.yml")

	if w := c.Watch(); w.Enabled || w.Debounce != 20*time.Millisecond {
		t.Errorf("watch = %+v", w)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	files := fstest.MapFS{
		"hexstorm.toml": {Data: []byte("[editor]\nformatter = \"dec\"\nmax_undo = 5\n")},
	}
	c := loadConfig(t, files, "hexstorm.toml",
		"HEXSTORM_FORMATTER=bin",
		"HEXSTORM_LOG_LEVEL=warn",
		"HEXSTORM_THEME_HUMAN=green",
	)

	ed := c.Editor()
	if ed.Formatter != format.Binary {
		t.Errorf("formatter = %v, want env override bin", ed.Formatter)
	}
	if ed.MaxUndo != 5 {
		t.Errorf("max_undo = %d, want file value 5", ed.MaxUndo)
	}
	if c.Log().Level != "warn" {
		t.Errorf("log level = %q", c.Log().Level)
	}
	if c.Theme().Human != "green" {
		t.Errorf("theme human = %q", c.Theme().Human)
	}
}

func TestWithoutEnv(t *testing.T) {
	c := New(WithFileSystem(fstest.MapFS{}), WithPath("x.toml"),
		WithEnviron([]string{"HEXSTORM_FORMATTER=bin"}), WithoutEnv())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Editor().Formatter != format.Hex {
		t.Error("environment applied despite WithoutEnv")
	}
}

func TestLoadErrors(t *testing.T) {
	c := New(WithFileSystem(fstest.MapFS{}), WithPath("hexstorm.json"), WithoutEnv())
	if err := c.Load(context.Background()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	files := fstest.MapFS{"bad.toml": {Data: []byte("editor = [")}}
	c = New(WithFileSystem(files), WithPath("bad.toml"), WithoutEnv())
	var perr *ParseError
	if err := c.Load(context.Background()); !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %v", err)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	files := fstest.MapFS{
		"hexstorm.toml": {Data: []byte(`
[editor]
formatter = "octal"
bytes_per_row = -4
read_only = "maybe"
`)},
	}
	c := loadConfig(t, files, "hexstorm.toml")

	ed := c.Editor()
	if ed.Formatter != format.Hex || ed.BytesPerRow != 0 || ed.ReadOnly {
		t.Errorf("editor = %+v, want defaults", ed)
	}

	errs := c.ConfigErrors()
	for _, path := range []string{"editor.formatter", "editor.bytes_per_row", "editor.read_only"} {
		if errs[path] == nil {
			t.Errorf("no config error recorded for %s", path)
		}
	}
	if !errors.Is(errs["editor.read_only"], ErrTypeMismatch) {
		t.Errorf("read_only error = %v", errs["editor.read_only"])
	}
	if !errors.Is(errs["editor.bytes_per_row"], ErrInvalidValue) {
		t.Errorf("bytes_per_row error = %v", errs["editor.bytes_per_row"])
	}
}

func TestGetSet(t *testing.T) {
	c := New(WithoutEnv())

	if _, err := c.GetString("editor.nothing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("expected ErrSettingNotFound, got %v", err)
	}
	if _, err := c.GetInt("editor.formatter"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}

	if err := c.Set("editor.read_only", true); err != nil {
		t.Fatal(err)
	}
	if !c.Editor().ReadOnly {
		t.Error("Set did not take effect")
	}
	if err := c.Set("editor.formatter.deep", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
	if err := c.Set("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath for empty path, got %v", err)
	}

	merged := c.Merged()
	merged["editor"].(map[string]any)["read_only"] = false
	if !c.Editor().ReadOnly {
		t.Error("Merged returned shared state")
	}
}
