// Package hexview draws an editor onto a backend: an offset column, the
// bytes as digits in the active format, a human-readable panel and a
// status line.
//
// Rows are redrawn only when the editor reports a change in them, the
// cursor moved through them, or the window scrolled.
package hexview

import (
	"fmt"
	"strings"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Status is the state of the status line supplied by the caller.
type Status struct {
	// Mode is shown on the left, e.g. "INSERT". Empty in normal mode.
	Mode string

	// CommandLine, when Prompt is non-empty, replaces the message area
	// with Prompt followed by the text being typed.
	Prompt      string
	CommandLine string
	// CommandCursor is the rune index of the terminal cursor in CommandLine.
	CommandCursor int

	// Subcursor highlights the digit that typed digits replace.
	Subcursor bool
}

// Option configures a View.
type Option func(*View)

// WithTheme sets the styles.
func WithTheme(t Theme) Option {
	return func(v *View) {
		v.theme = t
	}
}

// WithBytesPerRow fixes the row width. Zero fits as many bytes as the
// screen allows.
func WithBytesPerRow(n int) Option {
	return func(v *View) {
		v.fixedWidth = max(n, 0)
	}
}

// View renders an editor.
type View struct {
	backend    backend.Backend
	editor     *engine.Editor
	theme      Theme
	fixedWidth int

	width, height int
	layout        Layout

	// state of the last frame
	drawnKind     format.Kind
	drawnOffset   int
	drawnCursor   span
	drawnSubDigit int
	drawnSubcurOn bool
	full          bool
	dirty         map[int]bool
}

type span struct {
	offset, length int
}

// New creates a view drawing ed onto b. Call Resize before the first
// Render.
func New(b backend.Backend, ed *engine.Editor, opts ...Option) *View {
	v := &View{
		backend: b,
		editor:  ed,
		theme:   DefaultTheme(),
		full:    true,
		dirty:   make(map[int]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.drawnKind = ed.Formatter().Kind()
	return v
}

// Layout returns the current row layout.
func (v *View) Layout() Layout {
	return v.layout
}

// Resize adapts the view to a screen of width by height cells. The last
// line is the status line; the rest hold rows of bytes.
func (v *View) Resize(width, height int) {
	v.width, v.height = width, height
	v.relayout()
}

// Invalidate forces the next Render to redraw everything.
func (v *View) Invalidate() {
	v.full = true
}

func (v *View) relayout() {
	f := v.editor.Formatter()
	offsetWidth := offsetDigits(v.editor.Len())
	bpr := v.fixedWidth
	if bpr == 0 {
		bpr = FitBytesPerRow(v.width, offsetWidth, f.DisplayRatio())
	}
	v.layout = NewLayout(offsetWidth, f.DisplayRatio(), bpr)
	v.editor.SetViewportSize(bpr, max(v.height-1, 1))
	v.drawnKind = f.Kind()
	v.full = true
}

// Render draws everything that changed since the previous call and
// flushes the backend.
func (v *View) Render(st Status) {
	ed := v.editor
	if ed.Formatter().Kind() != v.drawnKind || offsetDigits(ed.Len()) != v.layout.OffsetWidth {
		v.relayout()
	}

	vp := ed.Viewport()
	for _, c := range ed.FetchChangedOffsets() {
		row := vp.RowOf(c.Offset)
		if c.LengthChanged {
			v.markRowsFrom(row)
		} else {
			v.dirty[row] = true
		}
	}
	if vp.Offset() != v.drawnOffset {
		v.full = true
	}

	cur := span{ed.CursorOffset(), ed.CursorLength()}
	subDigit := ed.SubcursorOffset()
	if cur != v.drawnCursor || subDigit != v.drawnSubDigit || st.Subcursor != v.drawnSubcurOn {
		v.markSpan(v.drawnCursor)
		v.markSpan(cur)
	}

	rows := vp.Height()
	if v.full {
		v.backend.Clear()
	}
	for row := 0; row < rows; row++ {
		if v.full || v.dirty[row] {
			v.drawRow(row, st.Subcursor)
		}
	}
	v.drawStatus(st)

	v.drawnOffset = vp.Offset()
	v.drawnCursor = cur
	v.drawnSubDigit = subDigit
	v.drawnSubcurOn = st.Subcursor
	v.full = false
	clear(v.dirty)

	v.backend.Show()
}

func (v *View) markRowsFrom(row int) {
	rows := v.editor.Viewport().Height()
	for r := max(row, 0); r < rows; r++ {
		v.dirty[r] = true
	}
}

func (v *View) markSpan(s span) {
	vp := v.editor.Viewport()
	first := vp.RowOf(s.offset)
	last := vp.RowOf(s.offset + max(s.length, 1) - 1)
	for r := max(first, 0); r <= last && r < vp.Height(); r++ {
		v.dirty[r] = true
	}
}

func (v *View) subcursorByte() int {
	n := v.editor.SubcursorLength()
	if n <= 0 {
		return v.editor.CursorOffset()
	}
	return v.editor.CursorOffset() + v.editor.SubcursorOffset()/n
}

// drawRow draws one window row. Rows past the end of the buffer are left
// blank, except that the row holding the end offset shows its offset so
// the append position is visible.
func (v *View) drawRow(row int, showSubcursor bool) {
	ed := v.editor
	l := v.layout
	y := row
	blank := core.EmptyCell()
	for x := 0; x < v.width; x++ {
		v.backend.SetCell(x, y, blank)
	}

	start := ed.Viewport().RowStart(row)
	size := ed.Len()
	if start > size {
		return
	}

	offsetText := fmt.Sprintf("%0*X", l.OffsetWidth, start)
	backend.DrawString(v.backend, 0, y, v.width, offsetText, v.theme.Offset)

	f := ed.Formatter()
	chunk := ed.Chunk(start, l.BytesPerRow)
	selStart, selEnd := ed.CursorOffset(), ed.CursorOffset()+max(ed.CursorLength(), 1)
	subOffset := v.subcursorByte()
	subDigit := 0
	if n := ed.SubcursorLength(); n > 0 {
		subDigit = ed.SubcursorOffset() % n
	}

	for i := 0; i < l.BytesPerRow; i++ {
		offset := start + i
		if offset > size {
			break
		}
		selected := offset >= selStart && offset < selEnd
		digitStyle, humanStyle := v.theme.Digits, v.theme.Human
		if selected {
			digitStyle, humanStyle = v.theme.Cursor, v.theme.Cursor
		}

		x := l.DigitX(i)
		if offset == size {
			// append position
			if selected {
				for d := 0; d < f.DigitsPerByte(); d++ {
					v.backend.SetCell(x+d, y, core.NewStyledCell(' ', digitStyle))
				}
				v.backend.SetCell(l.HumanX(i), y, core.NewStyledCell(' ', humanStyle))
			}
			break
		}

		b := chunk[i]
		for d, r := range string(f.EncodeByte(b)) {
			style := digitStyle
			if showSubcursor && offset == subOffset && d == subDigit {
				style = v.theme.Subcursor
			}
			v.backend.SetCell(x+d, y, core.NewStyledCell(r, style))
		}
		// The separator joins selected bytes into one highlighted block.
		if selected && offset+1 < selEnd && i+1 < l.BytesPerRow && offset+1 < size {
			v.backend.SetCell(x+f.DigitsPerByte(), y, core.NewStyledCell(' ', digitStyle))
		}
		v.backend.SetCell(l.HumanX(i), y, core.NewStyledCell(format.HumanRune(b), humanStyle))
	}
}

// drawStatus draws the last screen line and places the terminal cursor.
func (v *View) drawStatus(st Status) {
	if v.height <= 0 {
		return
	}
	y := v.height - 1
	for x := 0; x < v.width; x++ {
		v.backend.SetCell(x, y, core.NewStyledCell(' ', v.theme.Status))
	}

	right := v.positionText()
	rightX := max(v.width-core.StringWidth(right), 0)
	backend.DrawString(v.backend, rightX, y, v.width, right, v.theme.Status)

	limit := max(rightX-1, 0)
	if st.Prompt != "" {
		text := core.Truncate(st.Prompt+st.CommandLine, limit)
		backend.DrawString(v.backend, 0, y, limit, text, v.theme.Status)
		cursorX := core.StringWidth(st.Prompt) + cmdWidth(st.CommandLine, st.CommandCursor)
		v.backend.ShowCursor(min(cursorX, limit), y)
		return
	}
	v.backend.HideCursor()

	x := 0
	if st.Mode != "" {
		mode := core.Truncate("-- "+st.Mode+" -- ", limit)
		x = backend.DrawString(v.backend, 0, y, limit, mode, v.theme.Mode)
	}
	if msg := v.editor.ErrorMessage(); msg != "" {
		backend.DrawString(v.backend, x, y, limit, core.Truncate(msg, limit-x), v.theme.Error)
	} else if msg := v.editor.UserMessage(); msg != "" {
		backend.DrawString(v.backend, x, y, limit, core.Truncate(msg, limit-x), v.theme.Status)
	}
}

func cmdWidth(line string, cursor int) int {
	runes := []rune(line)
	cursor = min(max(cursor, 0), len(runes))
	return core.StringWidth(string(runes[:cursor]))
}

// positionText renders "hex  Offset: 12 / 255", with the selection
// length in parentheses when more than one byte is selected.
func (v *View) positionText() string {
	ed := v.editor
	last := max(ed.Len()-1, 0)
	var sb strings.Builder
	sb.WriteString(ed.Formatter().Kind().String())
	sb.WriteString("  Offset: ")
	fmt.Fprintf(&sb, "%d", ed.CursorOffset())
	if n := ed.CursorLength(); n > 1 {
		fmt.Fprintf(&sb, " (%d)", n)
	}
	fmt.Fprintf(&sb, " / %d", last)
	return sb.String()
}
