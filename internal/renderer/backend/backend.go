// Package backend provides the terminal abstraction the hex view draws on.
//
// Terminal drives a real terminal through tcell. Buffer keeps cells in
// memory and is used by tests and headless runs.
package backend

import "github.com/dshills/hexstorm/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Paste event fields; Start marks the beginning of a bracketed paste.
	Start bool
}

// KeyEvent builds a key event for a special key.
func KeyEvent(k Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Mod: mod}
}

// RuneEvent builds a key event for a printable character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
	KeyCtrlR
	KeyCtrlS
	KeyCtrlZ
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A blocked PollEvent returns EventClosed.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// Beep produces an audible or visual bell.
	Beep()
}

// DrawString writes s starting at (x, y) and returns the column after the
// last cell written. Cells past maxX are dropped.
func DrawString(b Backend, x, y, maxX int, s string, style core.Style) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		b.SetCell(x, y, core.NewStyledCell(r, style))
		x++
	}
	return x
}

// Fill sets every cell of rect to cell.
func Fill(b Backend, rect core.ScreenRect, cell core.Cell) {
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			b.SetCell(x, y, cell)
		}
	}
}
