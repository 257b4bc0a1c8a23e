package app

import (
	"errors"
	"strings"

	"github.com/dshills/hexstorm/internal/command"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/hexview"
)

// Mode is the input mode keys are interpreted in.
type Mode int

const (
	// ModeNormal maps keys to commands.
	ModeNormal Mode = iota
	// ModeInsert inserts typed characters before the cursor.
	ModeInsert
	// ModeOverwrite replaces digits at the subcursor.
	ModeOverwrite
	// ModeCommand edits the command line.
	ModeCommand
)

// String returns the label shown on the status line.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeOverwrite:
		return "OVERWRITE"
	case ModeCommand:
		return "COMMAND"
	default:
		return ""
	}
}

// inputState is the key handling state between events.
type inputState struct {
	mode    Mode
	pasting bool

	// Command line
	prevMode Mode
	line     []rune
	cursor   int
	// histPos indexes the shell history while browsing it with up and
	// down; -1 means the line being typed.
	histPos int
	typed   string
}

// normalRunes maps printable keys in normal mode.
var normalRunes = map[rune]command.Kind{
	'h': command.CursorLeft,
	'j': command.CursorDown,
	'k': command.CursorUp,
	'l': command.CursorRight,
	'H': command.LengthLeft,
	'J': command.LengthDown,
	'K': command.LengthUp,
	'L': command.LengthRight,
	'G': command.Jump,
	'x': command.Delete,
	'y': command.Yank,
	'p': command.Paste,
	'u': command.Undo,
	'+': command.Increment,
	'-': command.Decrement,
	'=': command.ToggleFormatter,
	'*': command.FindSelectionNext,
	'#': command.FindSelectionPrev,
}

// normalKeys maps special keys in normal mode.
var normalKeys = map[backend.Key]command.Kind{
	backend.KeyLeft:      command.CursorLeft,
	backend.KeyRight:     command.CursorRight,
	backend.KeyUp:        command.CursorUp,
	backend.KeyDown:      command.CursorDown,
	backend.KeyHome:      command.CursorStart,
	backend.KeyEnd:       command.CursorEnd,
	backend.KeyDelete:    command.Delete,
	backend.KeyBackspace: command.Backspace,
	backend.KeyCtrlR:     command.Redo,
	backend.KeyCtrlZ:     command.Undo,
	backend.KeyCtrlS:     command.Save,
	backend.KeyEscape:    command.RegisterClear,
}

// shiftKeys maps shifted arrows to selection changes.
var shiftKeys = map[backend.Key]command.Kind{
	backend.KeyLeft:  command.LengthLeft,
	backend.KeyRight: command.LengthRight,
	backend.KeyUp:    command.LengthUp,
	backend.KeyDown:  command.LengthDown,
}

// movementKeys are shared by the insert and overwrite modes.
var movementKeys = map[backend.Key]command.Kind{
	backend.KeyLeft:  command.CursorLeft,
	backend.KeyRight: command.CursorRight,
	backend.KeyUp:    command.CursorUp,
	backend.KeyDown:  command.CursorDown,
	backend.KeyHome:  command.CursorStart,
	backend.KeyEnd:   command.CursorEnd,
}

// commandPrompts open the command line with a prefilled command.
var commandPrompts = map[rune]string{
	':': "",
	'/': "find ",
	'?': "rfind ",
	'I': "insert ",
	'O': "overwrite ",
}

// handleKey interprets a key event and reports whether to quit.
func (app *Application) handleKey(ev backend.Event) bool {
	if ev.Key == backend.KeyCtrlC {
		return true
	}
	if ev.Key == backend.KeyCtrlL {
		app.view.Invalidate()
		return false
	}

	if app.input.mode == ModeCommand {
		return app.commandKey(ev)
	}

	app.editor.ClearMessages()
	switch app.input.mode {
	case ModeInsert:
		return app.insertKey(ev)
	case ModeOverwrite:
		return app.overwriteKey(ev)
	default:
		return app.normalKey(ev)
	}
}

func (app *Application) normalKey(ev backend.Event) bool {
	if ev.Key != backend.KeyRune {
		if app.input.pasting && ev.Key == backend.KeyEnter {
			return app.run(command.New(command.InsertString, "\n"))
		}
		if ev.Mod.Has(backend.ModShift) {
			if kind, ok := shiftKeys[ev.Key]; ok {
				return app.run(command.New(kind))
			}
		}
		switch ev.Key {
		case backend.KeyPageDown:
			return app.runTimes(command.CursorDown, app.editor.Viewport().Height())
		case backend.KeyPageUp:
			return app.runTimes(command.CursorUp, app.editor.Viewport().Height())
		}
		if kind, ok := normalKeys[ev.Key]; ok {
			return app.run(command.New(kind))
		}
		return false
	}

	r := ev.Rune
	if app.input.pasting {
		return app.run(command.New(command.InsertString, string(r)))
	}
	if r >= '0' && r <= '9' {
		return app.run(command.New(command.RegisterPush, string(r)))
	}
	if prefill, ok := commandPrompts[r]; ok {
		app.openCommandLine(prefill)
		return false
	}

	switch r {
	case 'i':
		app.setMode(ModeInsert)
	case 'a':
		app.run(command.New(command.CursorRight))
		app.setMode(ModeInsert)
	case 'o':
		app.setMode(ModeOverwrite)
	case 'n', 'N':
		history := app.editor.SearchHistory()
		if len(history) == 0 {
			app.editor.SetErrorMessage("no previous search")
			return false
		}
		kind := command.FindNext
		if r == 'N' {
			kind = command.FindPrev
		}
		return app.run(command.New(kind, history[len(history)-1]))
	default:
		if kind, ok := normalRunes[r]; ok {
			return app.run(command.New(kind))
		}
	}
	return false
}

func (app *Application) insertKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyRune:
		return app.run(command.New(command.InsertString, string(ev.Rune)))
	case backend.KeyEnter:
		return app.run(command.New(command.InsertString, "\n"))
	case backend.KeyTab:
		return app.run(command.New(command.InsertString, "\t"))
	case backend.KeyBackspace:
		return app.run(command.New(command.Backspace))
	case backend.KeyDelete:
		return app.run(command.New(command.Delete))
	case backend.KeyEscape:
		app.setMode(ModeNormal)
		return false
	}
	if kind, ok := movementKeys[ev.Key]; ok {
		return app.run(command.New(kind))
	}
	return false
}

func (app *Application) overwriteKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyRune:
		return app.run(command.New(command.OverwriteDigit, string(ev.Rune)))
	case backend.KeyLeft, backend.KeyBackspace:
		return app.run(command.New(command.SubcursorLeft))
	case backend.KeyRight:
		return app.run(command.New(command.SubcursorRight))
	case backend.KeyEscape:
		app.setMode(ModeNormal)
		return false
	}
	if kind, ok := movementKeys[ev.Key]; ok {
		return app.run(command.New(kind))
	}
	return false
}

func (app *Application) setMode(m Mode) {
	app.shell.Register().Clear()
	app.input.mode = m
}

func (app *Application) runTimes(kind command.Kind, n int) bool {
	for rep := 0; rep < n; rep++ {
		if app.run(command.New(kind)) {
			return true
		}
	}
	return false
}

// run executes cmd and reports whether it asked to quit. Failures are
// already on the status line; they are logged here.
func (app *Application) run(cmd command.Command) bool {
	return app.finish(cmd.Kind.String(), app.shell.Execute(cmd))
}

func (app *Application) finish(what string, err error) bool {
	if errors.Is(err, command.ErrQuit) {
		app.metrics.RecordCommand(false)
		return true
	}
	app.metrics.RecordCommand(err != nil)
	if err != nil {
		app.logger.WithComponent("command").Warn("%s: %v", what, err)
	}
	return false
}

// ============================================================================
// Command line
// ============================================================================

func (app *Application) openCommandLine(prefill string) {
	in := &app.input
	in.prevMode = in.mode
	in.mode = ModeCommand
	in.line = []rune(prefill)
	in.cursor = len(in.line)
	in.histPos = -1
	in.typed = ""
}

func (app *Application) closeCommandLine() {
	in := &app.input
	in.mode = in.prevMode
	in.line = nil
	in.cursor = 0
}

func (app *Application) commandKey(ev backend.Event) bool {
	in := &app.input
	switch ev.Key {
	case backend.KeyRune:
		in.insertRunes(ev.Rune)
	case backend.KeyTab:
		in.insertRunes(' ')
	case backend.KeyBackspace:
		if len(in.line) == 0 {
			app.closeCommandLine()
			return false
		}
		if in.cursor > 0 {
			in.line = append(in.line[:in.cursor-1], in.line[in.cursor:]...)
			in.cursor--
		}
	case backend.KeyDelete:
		if in.cursor < len(in.line) {
			in.line = append(in.line[:in.cursor], in.line[in.cursor+1:]...)
		}
	case backend.KeyLeft:
		in.cursor = max(in.cursor-1, 0)
	case backend.KeyRight:
		in.cursor = min(in.cursor+1, len(in.line))
	case backend.KeyHome:
		in.cursor = 0
	case backend.KeyEnd:
		in.cursor = len(in.line)
	case backend.KeyUp:
		app.browseHistory(1)
	case backend.KeyDown:
		app.browseHistory(-1)
	case backend.KeyEscape:
		app.closeCommandLine()
	case backend.KeyEnter:
		if in.pasting {
			in.insertRunes(' ')
			return false
		}
		line := strings.TrimSpace(string(in.line))
		app.closeCommandLine()
		if line == "" {
			return false
		}
		app.editor.ClearMessages()
		return app.finish(line, app.shell.RunLine(line))
	}
	return false
}

func (in *inputState) insertRunes(rs ...rune) {
	tail := append([]rune(nil), in.line[in.cursor:]...)
	in.line = append(append(in.line[:in.cursor], rs...), tail...)
	in.cursor += len(rs)
}

// browseHistory steps through earlier command lines; step 1 goes back.
func (app *Application) browseHistory(step int) {
	in := &app.input
	if in.histPos == -1 {
		in.typed = string(in.line)
	}

	pos := in.histPos + step
	if pos == -1 {
		in.line = []rune(in.typed)
	} else {
		line, ok := app.shell.History().At(pos)
		if !ok {
			return
		}
		in.line = []rune(line)
	}
	in.histPos = pos
	in.cursor = len(in.line)
}

// status builds the status line for the current input state.
func (app *Application) status() hexview.Status {
	in := &app.input
	label := in.mode.String()
	if in.mode == ModeCommand {
		label = ""
	}
	if key, ok := app.shell.Recording(); ok {
		label = strings.TrimSpace(label + " recording @" + key)
	}

	st := hexview.Status{
		Mode:      label,
		Subcursor: in.mode == ModeOverwrite,
	}
	if in.mode == ModeCommand {
		st.Prompt = ":"
		st.CommandLine = string(in.line)
		st.CommandCursor = in.cursor
	}
	return st
}

// Mode returns the current input mode.
func (app *Application) Mode() Mode {
	return app.input.mode
}
