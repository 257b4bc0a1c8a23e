package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dshills/hexstorm/internal/project/watcher"
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

const eventQueueSize = 256

type loopEventKind int

const (
	loopInput loopEventKind = iota
	loopFile
	loopFileError
)

// loopEvent is anything the event loop reacts to.
type loopEvent struct {
	kind  loopEventKind
	input backend.Event
	file  watcher.Event
	err   error
}

// pollInput forwards terminal events until the backend closes or Run
// returns. PollEvent blocks; Shutdown unblocks it.
func (app *Application) pollInput(b backend.Backend) {
	for {
		ev := b.PollEvent()
		select {
		case app.events <- loopEvent{kind: loopInput, input: ev}:
		case <-app.done:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// forwardFileEvents moves watcher output onto the event channel.
func (app *Application) forwardFileEvents(w *watcher.FileWatcher) {
	events, errs := w.Events(), w.Errors()
	for events != nil || errs != nil {
		var le loopEvent
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			le = loopEvent{kind: loopFile, file: ev}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			le = loopEvent{kind: loopFileError, err: err}
		case <-app.done:
			return
		}

		select {
		case app.events <- le:
		case <-app.done:
			return
		}
	}
}

// eventLoop handles every queued event, then redraws once.
func (app *Application) eventLoop(ctx context.Context) error {
	app.render()

	for {
		var ev loopEvent
		select {
		case ev = <-app.events:
		case <-ctx.Done():
			return nil
		}

		quit := app.handle(ev)
	drain:
		for !quit {
			select {
			case ev = <-app.events:
				quit = app.handle(ev)
			default:
				break drain
			}
		}
		if quit {
			return nil
		}
		app.render()
	}
}

// handle processes one event and reports whether the loop should stop.
func (app *Application) handle(ev loopEvent) bool {
	switch ev.kind {
	case loopInput:
		return app.handleInput(ev.input)
	case loopFile:
		app.handleFileEvent(ev.file)
	case loopFileError:
		app.logger.WithComponent("watcher").Warn("%v", ev.err)
	}
	return false
}

func (app *Application) handleInput(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventClosed:
		return true
	case backend.EventResize:
		app.view.Resize(ev.Width, ev.Height)
	case backend.EventPaste:
		app.input.pasting = ev.Start
	case backend.EventKey:
		app.metrics.RecordInput()
		return app.handleKey(ev)
	}
	return false
}

// handleFileEvent reports changes to the open file made by other
// programs. Events whose file content matches the buffer, such as those
// caused by our own save, are ignored.
func (app *Application) handleFileEvent(ev watcher.Event) {
	log := app.logger.WithComponent("watcher").WithField("op", ev.Op)
	path := app.editor.FilePath()

	if ev.Op.Gone() && !app.store.Exists(path) {
		app.metrics.RecordFileEvent()
		log.Info("%s removed", path)
		app.editor.SetErrorMessage(fmt.Sprintf("%s was removed on disk", path))
		return
	}

	data, err := app.store.Load(path)
	if err != nil {
		log.Warn("reading %s: %v", path, err)
		return
	}
	if bytes.Equal(data, app.editor.Bytes()) {
		log.Debug("%s unchanged", path)
		return
	}

	app.metrics.RecordFileEvent()
	log.Info("%s changed on disk (%d bytes)", path, len(data))
	app.editor.SetUserMessage(fmt.Sprintf("%s changed on disk", path))
}

func (app *Application) render() {
	t := StartTimer()
	app.view.Render(app.status())
	app.metrics.RecordRender(t.Elapsed())
}
