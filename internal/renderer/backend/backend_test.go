package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

func TestBufferSetCellAndRow(t *testing.T) {
	b := NewBuffer(10, 3)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	style := core.DefaultStyle().Reverse()
	end := DrawString(b, 1, 1, 10, "hello", style)
	if end != 6 {
		t.Errorf("DrawString returned %d, want 6", end)
	}
	if got := b.Row(1); got != " hello" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Cell(1, 1); got.Rune != 'h' || !got.Style.Attributes.Has(core.AttrReverse) {
		t.Errorf("Cell(1,1) = %+v", got)
	}

	// Out of bounds is ignored.
	b.SetCell(-1, 0, core.NewStyledCell('X', style))
	b.SetCell(10, 0, core.NewStyledCell('X', style))
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) = %q, want empty", got)
	}
	if got := b.Cell(50, 50); got != core.EmptyCell() {
		t.Errorf("out of bounds cell = %+v", got)
	}
}

func TestDrawStringClips(t *testing.T) {
	b := NewBuffer(4, 1)
	end := DrawString(b, 0, 0, 4, "abcdef", core.DefaultStyle())
	if end != 4 {
		t.Errorf("end = %d, want 4", end)
	}
	if got := b.Row(0); got != "abcd" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestFillAndClear(t *testing.T) {
	b := NewBuffer(5, 3)
	Fill(b, core.RectFromSize(1, 1, 2, 3), core.NewStyledCell('.', core.DefaultStyle()))
	want := "\n ...\n ..."
	if got := b.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	b.Clear()
	if got := b.Text(); got != "\n\n" {
		t.Errorf("Text() after Clear = %q", got)
	}
}

func TestBufferCursorAndShow(t *testing.T) {
	b := NewBuffer(10, 3)
	b.ShowCursor(4, 2)
	x, y, visible := b.CursorPosition()
	if x != 4 || y != 2 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
	b.Show()
	b.Show()
	b.Beep()
	if b.Shows() != 2 || b.Beeps() != 1 {
		t.Errorf("shows = %d, beeps = %d", b.Shows(), b.Beeps())
	}
}

func TestBufferEvents(t *testing.T) {
	b := NewBuffer(10, 3)
	b.PostString("ab")
	b.Post(KeyEvent(KeyUp, ModShift))

	if ev := b.PollEvent(); ev.Key != KeyRune || ev.Rune != 'a' {
		t.Errorf("first event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Rune != 'b' {
		t.Errorf("second event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Key != KeyUp || !ev.Mod.Has(ModShift) {
		t.Errorf("third event = %+v", ev)
	}

	b.Resize(20, 5)
	if w, h := b.Size(); w != 20 || h != 5 {
		t.Errorf("Size() = %d, %d", w, h)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("resize event = %+v", ev)
	}

	done := make(chan Event)
	go func() { done <- b.PollEvent() }()
	b.Shutdown()
	select {
	case ev := <-done:
		if ev.Type != EventClosed {
			t.Errorf("event after Shutdown = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
	b.Shutdown()
}

func TestModMaskHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) || m.Has(ModAlt) {
		t.Errorf("ModMask.Has mismatch for %b", m)
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(20, 4)
	return term, sim
}

func TestTerminalDraw(t *testing.T) {
	term, sim := newSimTerminal(t)
	defer term.Shutdown()

	DrawString(term, 0, 0, 20, "0a", core.DefaultStyle().WithForeground(core.ColorCyan).Reverse())
	term.Show()

	cells, w, _ := sim.GetContents()
	if got := string(cells[0].Runes) + string(cells[1].Runes); got != "0a" {
		t.Errorf("screen = %q", got)
	}
	fg, _, attrs := cells[0].Style.Decompose()
	if fg != tcell.PaletteColor(6) {
		t.Errorf("foreground = %v", fg)
	}
	if attrs&tcell.AttrReverse == 0 {
		t.Error("expected reverse attribute")
	}
	if w != 20 {
		t.Errorf("width = %d", w)
	}
}

func TestTerminalEvents(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModShift)
	sim.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)

	tests := []struct {
		key  Key
		r    rune
		mods ModMask
	}{
		{KeyRune, 'j', ModNone},
		{KeyLeft, 0, ModShift},
		{KeyBackspace, 0, ModNone},
	}
	for _, tt := range tests {
		ev := nextKey(term)
		if ev.Key != tt.key || ev.Mod != tt.mods || (tt.key == KeyRune && ev.Rune != tt.r) {
			t.Errorf("event = %+v, want key %v rune %q mod %v", ev, tt.key, tt.r, tt.mods)
		}
	}

	term.Shutdown()
}

// nextKey skips the resize events the simulation screen posts on Init.
func nextKey(term *Terminal) Event {
	for {
		ev := term.PollEvent()
		if ev.Type == EventKey || ev.Type == EventClosed {
			return ev
		}
	}
}

func TestConvertKeyUnknown(t *testing.T) {
	if got := convertKey(tcell.KeyF12); got != KeyNone {
		t.Errorf("convertKey(F12) = %v, want KeyNone", got)
	}
	if got := convertKey(tcell.KeyBackspace); got != KeyBackspace {
		t.Errorf("convertKey(Backspace) = %v", got)
	}
}
