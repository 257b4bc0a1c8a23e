package backend

import (
	"strings"
	"sync"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Buffer is an in-memory Backend. Events are queued with Post and read
// back by PollEvent; Shutdown unblocks PollEvent with EventClosed.
type Buffer struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	beeps         int

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewBuffer creates a buffer backend with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	b.allocate(width, height)
	return b
}

func (b *Buffer) allocate(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
	b.cells = make([][]core.Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]core.Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = core.EmptyCell()
		}
	}
}

func (b *Buffer) Init() error { return nil }

func (b *Buffer) Shutdown() {
	b.once.Do(func() { close(b.done) })
}

func (b *Buffer) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Buffer) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// Cell returns the cell at (x, y), or an empty cell outside the buffer.
func (b *Buffer) Cell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns row y as text with trailing spaces removed.
func (b *Buffer) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Text returns every row joined by newlines.
func (b *Buffer) Text() string {
	_, h := b.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return strings.Join(rows, "\n")
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = core.EmptyCell()
		}
	}
}

func (b *Buffer) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

// Shows returns how many times Show has been called.
func (b *Buffer) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *Buffer) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
	b.cursorVisible = true
}

func (b *Buffer) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

// CursorPosition returns the terminal cursor position for testing.
func (b *Buffer) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

func (b *Buffer) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventClosed}
	}
}

// Post queues an event for PollEvent. Events are dropped after Shutdown
// or when the queue is full.
func (b *Buffer) Post(ev Event) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.events <- ev:
	default:
	}
}

// PostString queues one rune event per character of s.
func (b *Buffer) PostString(s string) {
	for _, r := range s {
		b.Post(RuneEvent(r))
	}
}

// Resize changes the buffer size, clears it and queues a resize event.
func (b *Buffer) Resize(width, height int) {
	b.mu.Lock()
	b.allocate(width, height)
	b.mu.Unlock()
	b.Post(Event{Type: EventResize, Width: width, Height: height})
}

func (b *Buffer) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beeps++
}

// Beeps returns how many times Beep has been called.
func (b *Buffer) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}
