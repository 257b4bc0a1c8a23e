package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dshills/hexstorm/internal/command"
	"github.com/dshills/hexstorm/internal/engine"
	hslua "github.com/dshills/hexstorm/internal/plugin/lua"
)

// ModuleName is the name scripts require and the global the module is
// bound to.
const ModuleName = "hs"

// ErrReentrant is returned when a script tries to run another script
// through the command layer.
var ErrReentrant = errors.New("plugin: script already running")

// Runtime runs Lua scripts against a shell. It implements
// command.ScriptRunner.
//
// Runtime is not safe for concurrent use.
type Runtime struct {
	state  *hslua.State
	shell  *command.Shell
	editor *engine.Editor

	timeout time.Duration
	print   func(string)
	running bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithPrint routes script print output. By default it becomes the
// editor's user message.
func WithPrint(fn func(string)) Option {
	return func(r *Runtime) {
		r.print = fn
	}
}

// NewRuntime creates a runtime bound to shell and installs itself as the
// shell's script runner.
func NewRuntime(shell *command.Shell, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		shell:   shell,
		editor:  shell.Editor(),
		timeout: hslua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.print == nil {
		r.print = r.editor.SetUserMessage
	}

	r.state = hslua.NewState(
		hslua.WithExecutionTimeout(r.timeout),
		hslua.WithPrint(r.print),
	)
	r.state.PreloadModule(ModuleName, r.loader)
	if err := r.state.DoString(ModuleName + ` = require("` + ModuleName + `")`); err != nil {
		r.state.Close()
		return nil, fmt.Errorf("plugin: install %s module: %w", ModuleName, err)
	}

	shell.SetScriptRunner(r)
	return r, nil
}

// RunFile executes the script at path.
func (r *Runtime) RunFile(path string) error {
	path = expandHome(path)
	if err := r.guard(func() error { return r.state.DoFile(path) }); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// RunString executes a Lua chunk.
func (r *Runtime) RunString(source string) error {
	return r.guard(func() error { return r.state.DoString(source) })
}

// RunDir executes every *.lua file in dir in name order. A missing
// directory is not an error. Every file is attempted; the failures are
// joined.
func (r *Runtime) RunDir(dir string) error {
	dir = expandHome(dir)
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	var errs []error
	for _, path := range matches {
		if err := r.RunFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	return r.state.Close()
}

func (r *Runtime) guard(fn func() error) error {
	if r.running {
		return ErrReentrant
	}
	r.running = true
	defer func() { r.running = false }()
	return fn()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
