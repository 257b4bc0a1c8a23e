// Package app wires the editor core, command shell, scripting, file
// watching and the terminal view into a running program.
//
// All editor state is owned by the goroutine running Run. Terminal input
// and file watch events are read on their own goroutines and delivered
// through a single channel.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/hexstorm/internal/command"
	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/plugin"
	"github.com/dshills/hexstorm/internal/project/filestore"
	"github.com/dshills/hexstorm/internal/project/vfs"
	"github.com/dshills/hexstorm/internal/project/watcher"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/hexview"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the default
	// location.
	ConfigPath string

	// Config, when set, is used as is instead of loading ConfigPath.
	Config *config.Config

	// File is opened on startup. A path that does not exist yet starts
	// an empty buffer saved to that path.
	File string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput overrides the configured log file.
	LogOutput io.Writer

	// ReadOnly rejects every edit.
	ReadOnly bool

	// FS is the file system files are loaded from and saved to.
	// Defaults to the OS file system.
	FS vfs.VFS

	// Backend is the terminal. Defaults to a tcell terminal.
	Backend backend.Backend
}

// Application is the central coordinator for all hexstorm components.
type Application struct {
	opts    Options
	config  *config.Config
	logger  *Logger
	logFile io.Closer
	metrics *Metrics
	session string

	store   *filestore.FileStore
	editor  *engine.Editor
	shell   *command.Shell
	scripts *plugin.Runtime

	backend backend.Backend
	view    *hexview.View
	watcher *watcher.FileWatcher

	// Set while Run is active.
	events chan loopEvent
	done   chan struct{}

	input   inputState
	running atomic.Bool
}

// New creates a new Application with the given options. The file is
// loaded and startup scripts run before New returns; the terminal is not
// touched until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
		session: uuid.NewString(),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	if err := app.initConfig(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	for path, err := range app.config.ConfigErrors() {
		app.logger.WithComponent("config").Warn("%s: %v", path, err)
	}

	app.initEditor()
	if err := app.openFile(); err != nil {
		return err
	}

	app.shell = command.NewShell(app.editor)
	if err := app.initScripts(); err != nil {
		return &InitError{Component: "plugin", Err: err}
	}
	return nil
}

func (app *Application) initConfig() error {
	if app.opts.Config != nil {
		app.config = app.opts.Config
		return nil
	}
	var opts []config.Option
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithPath(app.opts.ConfigPath))
	}
	app.config = config.New(opts...)
	return app.config.Load(context.Background())
}

func (app *Application) initLogger() error {
	logCfg := app.config.Log()
	level := logCfg.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	out := app.opts.LogOutput
	if out == nil && logCfg.File != "" {
		f, err := OpenLogFile(logCfg.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(level)
	cfg.Output = out
	app.logger = NewLogger(cfg).WithField("session", app.session)
	app.logger.Debug("config loaded from %s", app.config.Path())
	return nil
}

func (app *Application) initEditor() {
	fsys := app.opts.FS
	if fsys == nil {
		fsys = vfs.NewOSFS()
	}
	app.store = filestore.NewFileStore(fsys, filestore.WithOnSave(app.onSave))

	edCfg := app.config.Editor()
	app.editor = engine.New(
		engine.WithFormatter(edCfg.Formatter),
		engine.WithMaxUndoEntries(edCfg.MaxUndo),
		engine.WithReadOnly(app.opts.ReadOnly || edCfg.ReadOnly),
		engine.WithFileStore(app.store),
	)
}

// openFile loads the startup file, or remembers the path of a new one.
func (app *Application) openFile() error {
	path := app.opts.File
	if path == "" {
		return nil
	}
	if !app.store.Exists(path) {
		app.editor.SetFilePath(path)
		app.editor.SetUserMessage(fmt.Sprintf("%q [New]", path))
		app.logger.Info("new file %s", path)
		return nil
	}
	if err := app.editor.LoadFile(path); err != nil {
		return &OperationError{Op: "load", Target: path, Err: err}
	}
	app.logger.Info("loaded %s (%d bytes)", path, app.editor.Len())
	return nil
}

func (app *Application) initScripts() error {
	plugCfg := app.config.Plugin()
	rt, err := plugin.NewRuntime(app.shell, plugin.WithTimeout(plugCfg.Timeout))
	if err != nil {
		return err
	}
	app.scripts = rt

	log := app.logger.WithComponent("plugin")
	if plugCfg.Dir != "" {
		if err := rt.RunDir(plugCfg.Dir); err != nil {
			log.Warn("scripts in %s: %v", plugCfg.Dir, err)
			app.editor.SetErrorMessage(err.Error())
		}
	}
	for _, path := range plugCfg.Scripts {
		if err := rt.RunFile(path); err != nil {
			log.Warn("script %v", err)
			app.editor.SetErrorMessage(err.Error())
			continue
		}
		log.Debug("ran %s", path)
	}
	return nil
}

// onSave runs after every successful save.
func (app *Application) onSave(path string) {
	app.logger.Info("saved %s (%d bytes)", path, app.editor.Len())
	if app.watcher == nil && app.running.Load() {
		app.startWatcher()
	}
}

// Run initializes the terminal and processes events until the user quits,
// the terminal closes or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.initBackend(); err != nil {
		return err
	}
	defer app.backend.Shutdown()

	app.initView()

	app.events = make(chan loopEvent, eventQueueSize)
	app.done = make(chan struct{})
	defer close(app.done)

	app.startWatcher()
	defer app.stopWatcher()

	go app.pollInput(app.backend)

	app.logger.Info("started")
	err := app.eventLoop(ctx)
	app.logger.WithFields(app.metrics.Snapshot().Fields()).Info("stopped")
	return err
}

func (app *Application) initBackend() error {
	b := app.opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		b = term
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.backend = b
	return nil
}

func (app *Application) initView() {
	theme, err := hexview.DefaultTheme().WithColors(hexview.Colors(app.config.Theme()))
	if err != nil {
		app.logger.WithComponent("config").Warn("theme: %v", err)
		theme = hexview.DefaultTheme()
	}
	app.view = hexview.New(app.backend, app.editor,
		hexview.WithTheme(theme),
		hexview.WithBytesPerRow(app.config.Editor().BytesPerRow),
	)
	app.view.Resize(app.backend.Size())
}

// startWatcher watches the open file for changes made by other programs.
// A file that does not exist yet is watched after its first save.
func (app *Application) startWatcher() {
	watchCfg := app.config.Watch()
	path := app.editor.FilePath()
	if !watchCfg.Enabled || path == "" || app.events == nil {
		return
	}

	log := app.logger.WithComponent("watcher")
	w, err := watcher.NewFileWatcher(path, watcher.WithDebounceDelay(watchCfg.Debounce))
	if err != nil {
		if errors.Is(err, watcher.ErrPathNotExist) {
			log.Debug("not watching %s: %v", path, err)
		} else {
			log.Warn("watch %s: %v", path, err)
		}
		return
	}
	app.watcher = w
	go app.forwardFileEvents(w)
	log.Debug("watching %s", w.Path())
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	stats := app.watcher.Stats()
	if err := app.watcher.Close(); err != nil {
		app.logger.WithComponent("watcher").Warn("close: %v", err)
	}
	app.logger.WithComponent("watcher").Debug("events=%d dropped=%d errors=%d",
		stats.Events, stats.Dropped, stats.Errors)
	app.watcher = nil
}

// Close releases resources acquired by New.
func (app *Application) Close() error {
	var errs []error
	if app.scripts != nil {
		errs = append(errs, app.scripts.Close())
	}
	if app.logFile != nil {
		errs = append(errs, app.logFile.Close())
		app.logFile = nil
	}
	return errors.Join(errs...)
}

// Editor returns the editor.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Shell returns the command shell.
func (app *Application) Shell() *command.Shell {
	return app.shell
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the session id written to every log line.
func (app *Application) Session() string {
	return app.session
}
