package command

import (
	"bytes"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/project/filestore"
	"github.com/dshills/hexstorm/internal/project/vfs"
)

// newShell returns a shell over data whose undo records are 100ms apart.
func newShell(data []byte, opts ...engine.Option) *Shell {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(100 * time.Millisecond)
		return now
	}
	opts = append([]engine.Option{engine.WithContent(data), engine.WithClock(clock)}, opts...)
	return NewShell(engine.New(opts...))
}

func run(t *testing.T, s *Shell, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := s.RunLine(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}

func assertBytes(t *testing.T, s *Shell, want string) {
	t.Helper()
	if got := s.Editor().Bytes(); !bytes.Equal(got, []byte(want)) {
		t.Fatalf("buffer = %q, want %q", got, want)
	}
}

type fakeRunner struct {
	files   []string
	sources []string
}

func (r *fakeRunner) RunFile(path string) error {
	r.files = append(r.files, path)
	return nil
}

func (r *fakeRunner) RunString(source string) error {
	r.sources = append(r.sources, source)
	return nil
}

// ============================================================================
// Parsing
// ============================================================================

func TestParseWords(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"find AB", []string{"find", "AB"}},
		{"insert  a   b", []string{"insert", "a", "b"}},
		{`insert "hello world"`, []string{"insert", "hello world"}},
		{`insert 'it"s'`, []string{"insert", `it"s`}},
		{`insert "say \"hi\""`, []string{"insert", `say "hi"`}},
		{`insert a\ b`, []string{"insert", "a b"}},
		{`find \x41\x..`, []string{"find", `\x41\x..`}},
		{`insert ""`, []string{"insert"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseWords(tt.line)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseWords(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		kind Kind
		args []string
	}{
		{"q", Quit, nil},
		{"wq", SaveQuit, nil},
		{"w out.bin", Save, []string{"out.bin"}},
		{"FIND ab", FindNext, []string{"ab"}},
		{"and \\xF0", MaskAnd, []string{`\xF0`}},
		{"not", BitwiseNot, nil},
		{"rep a b", Replace, []string{"a", "b"}},
		{"120", Jump, []string{"120"}},
		{`\x10`, Jump, []string{`\x10`}},
		{"lua hs.undo()", EvalScript, []string{"hs.undo()"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseLine(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if cmd.Kind != tt.kind || !slices.Equal(cmd.Args, tt.args) {
				t.Errorf("ParseLine(%q) = %v %q, want %v %q", tt.line, cmd.Kind, cmd.Args, tt.kind, tt.args)
			}
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	if _, err := ParseLine("  "); !errors.Is(err, ErrEmptyLine) {
		t.Errorf("expected ErrEmptyLine, got %v", err)
	}

	_, err := ParseLine("bogus 1")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	var ue *UnknownCommandError
	if !errors.As(err, &ue) || ue.Name != "bogus" {
		t.Errorf("expected UnknownCommandError for bogus, got %v", err)
	}
}

func TestCommandString(t *testing.T) {
	cmd := New(InsertString, "a b", "c")
	if got := cmd.String(); got != `insert "a b" c` {
		t.Errorf("String() = %q", got)
	}

	parsed, err := ParseLine(cmd.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Kind != cmd.Kind || !slices.Equal(parsed.Args, cmd.Args) {
		t.Errorf("round trip = %v %q", parsed.Kind, parsed.Args)
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		arg     string
		want    []byte
		wantErr bool
	}{
		{"abc", []byte("abc"), false},
		{`\x`, []byte(`\x`), false},
		{`\x41`, []byte{0x41}, false},
		{`\x141`, []byte{0x01, 0x41}, false},
		{`\x0041`, []byte{0x00, 0x41}, false},
		{`\xZZ`, nil, true},
		{`\b101`, []byte{0x05}, false},
		{`\b100000001`, []byte{0x01, 0x01}, false},
		{`\b102`, nil, true},
		{`\d0`, []byte{0x00}, false},
		{`\d256`, []byte{0x01, 0x00}, false},
		{`\d65535`, []byte{0xFF, 0xFF}, false},
		{`\dx`, nil, true},
		{`\q12`, []byte(`\q12`), false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseBytes(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ParseBytes(%q) = % X, want % X", tt.arg, got, tt.want)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{`\x1F`, 31, false},
		{`\b101`, 5, false},
		{`\d12`, 12, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseInteger(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInteger(%q) error = %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("ParseInteger(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Register and History
// ============================================================================

func TestRegister(t *testing.T) {
	var r Register
	if got := r.Fetch(7); got != 7 {
		t.Errorf("empty Fetch = %d, want default 7", got)
	}

	r.Push('1')
	r.Push('2')
	if r.Push('x') {
		t.Error("Push accepted a non-digit")
	}
	if v, ok := r.Get(); !ok || v != 12 {
		t.Errorf("Get = %d, %v", v, ok)
	}
	if got := r.Fetch(1); got != 12 {
		t.Errorf("Fetch = %d, want 12", got)
	}
	if _, ok := r.Get(); ok {
		t.Error("Fetch did not clear the register")
	}

	r.Push('0')
	if got := r.Fetch(1); got != 0 {
		t.Errorf("explicit zero Fetch = %d", got)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("a")
	h.Add("")

	if got := h.Lines(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Lines = %q", got)
	}
	h.Add("c")
	if got := h.Lines(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Lines after overflow = %q", got)
	}
	if line, ok := h.At(0); !ok || line != "c" {
		t.Errorf("At(0) = %q, %v", line, ok)
	}
	if _, ok := h.At(2); ok {
		t.Error("At past the end succeeded")
	}
}

// ============================================================================
// Shell
// ============================================================================

func TestShellCursorRepeat(t *testing.T) {
	s := newShell(make([]byte, 64))
	e := s.Editor()

	run(t, s, "register 3", "cursor_right")
	if e.CursorOffset() != 3 {
		t.Errorf("offset = %d, want 3", e.CursorOffset())
	}

	run(t, s, "cursor_down")
	if e.CursorOffset() != 3+e.Viewport().Width() {
		t.Errorf("offset after down = %d", e.CursorOffset())
	}

	run(t, s, "register_push 2", "register_clear", "cursor_left")
	if e.CursorOffset() != 2+e.Viewport().Width() {
		t.Errorf("cleared register still repeated: offset %d", e.CursorOffset())
	}

	run(t, s, "register 4", "length_right")
	if e.CursorLength() != 5 {
		t.Errorf("length = %d, want 5", e.CursorLength())
	}
}

func TestShellInsertAndOverwrite(t *testing.T) {
	s := newShell(nil)
	run(t, s, `i "hi there" \x21`)
	assertBytes(t, s, "hi there!")
	if s.Editor().CursorOffset() != 9 {
		t.Errorf("cursor = %d, want 9", s.Editor().CursorOffset())
	}

	s = newShell([]byte("aaaa"))
	run(t, s, "register 2", `o \x42`)
	assertBytes(t, s, "BBaa")

	if err := s.RunLine("insert"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestShellOverwriteDigits(t *testing.T) {
	s := newShell([]byte{0x00, 0x00})
	if err := s.Execute(New(OverwriteDigit, "ab")); err != nil {
		t.Fatal(err)
	}
	if got := s.Editor().Bytes(); !bytes.Equal(got, []byte{0xAB, 0x00}) {
		t.Errorf("buffer = % X", got)
	}
	if s.Editor().CursorOffset() != 1 || s.Editor().SubcursorOffset() != 0 {
		t.Errorf("cursor = %d/%d, want 1/0", s.Editor().CursorOffset(), s.Editor().SubcursorOffset())
	}

	err := s.Execute(New(OverwriteDigit, "g"))
	if err == nil {
		t.Fatal("expected error for non-hex digit")
	}
	if s.Editor().ErrorMessage() == "" {
		t.Error("failure was not reported as an error message")
	}
}

func TestShellDeleteYankPaste(t *testing.T) {
	s := newShell([]byte("abcdef"))
	e := s.Editor()

	run(t, s, "register 2", "delete")
	assertBytes(t, s, "cdef")
	if !bytes.Equal(e.Clipboard(), []byte("ab")) {
		t.Errorf("clipboard = %q", e.Clipboard())
	}
	if e.UserMessage() != "2 fewer bytes" {
		t.Errorf("message = %q", e.UserMessage())
	}

	run(t, s, "paste")
	assertBytes(t, s, "abcdef")
	if e.CursorOffset() != 2 {
		t.Errorf("cursor after paste = %d", e.CursorOffset())
	}

	if err := e.MakeSelection(1, 3); err != nil {
		t.Fatal(err)
	}
	run(t, s, "yank")
	if !bytes.Equal(e.Clipboard(), []byte("bcd")) || e.UserMessage() != "Yanked 3 bytes" {
		t.Errorf("yank: clipboard %q, message %q", e.Clipboard(), e.UserMessage())
	}
	if e.CursorLength() != 1 {
		t.Errorf("yank left length %d", e.CursorLength())
	}
}

func TestShellBackspace(t *testing.T) {
	s := newShell([]byte("abcdef"))
	e := s.Editor()
	if err := e.SetCursorOffset(4); err != nil {
		t.Fatal(err)
	}

	run(t, s, "register 2", "backspace")
	assertBytes(t, s, "abef")
	if e.CursorOffset() != 2 || !bytes.Equal(e.Clipboard(), []byte("cd")) {
		t.Errorf("cursor %d clipboard %q", e.CursorOffset(), e.Clipboard())
	}

	// At offset 0 there is nothing to remove.
	e.CursorToStart()
	run(t, s, "backspace")
	assertBytes(t, s, "abef")
}

func TestShellUndoRedo(t *testing.T) {
	s := newShell([]byte("abc"))
	e := s.Editor()

	run(t, s, "o X", "o Y")
	assertBytes(t, s, "XYc")

	run(t, s, "register 2", "undo")
	assertBytes(t, s, "abc")
	if e.UserMessage() != "Undid 2 actions" {
		t.Errorf("message = %q", e.UserMessage())
	}

	err := s.RunLine("undo")
	if !errors.Is(err, history.ErrEmptyStack) {
		t.Errorf("expected ErrEmptyStack, got %v", err)
	}

	run(t, s, "register 5", "redo")
	assertBytes(t, s, "XYc")
	if e.UserMessage() != "Redid 2 actions" {
		t.Errorf("message = %q", e.UserMessage())
	}
}

func TestShellIncrementDecrement(t *testing.T) {
	s := newShell([]byte{0x10, 0x00, 0xFF})
	e := s.Editor()

	run(t, s, "register 3", "increment")
	if got := e.Bytes()[0]; got != 0x13 {
		t.Errorf("byte = %#x, want 0x13", got)
	}

	if err := e.MakeSelection(1, 2); err != nil {
		t.Fatal(err)
	}
	run(t, s, "increment")
	if got := e.Bytes(); !bytes.Equal(got, []byte{0x13, 0x01, 0x00}) {
		t.Errorf("word increment = % X", got)
	}
	run(t, s, "decrement")
	if got := e.Bytes(); !bytes.Equal(got, []byte{0x13, 0x00, 0xFF}) {
		t.Errorf("word decrement = % X", got)
	}
}

func TestShellMasks(t *testing.T) {
	tests := []struct {
		line string
		want byte
	}{
		{`and \xF0`, 0xA0},
		{`or \x0F`, 0xAF},
		{`xor \xFF`, 0x55},
		{`nand \xF0`, 0x5F},
		{`nor \x0F`, 0x50},
		{"not", 0x55},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newShell([]byte{0xAA})
			run(t, s, tt.line)
			if got := s.Editor().Bytes()[0]; got != tt.want {
				t.Errorf("%s: got %#x, want %#x", tt.line, got, tt.want)
			}
		})
	}

	s := newShell([]byte{0xAA})
	if err := s.RunLine("and"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestShellFind(t *testing.T) {
	s := newShell([]byte("xxABxxAB"))
	e := s.Editor()

	run(t, s, "find AB")
	if e.CursorOffset() != 2 || e.CursorLength() != 2 {
		t.Fatalf("first find = %d+%d", e.CursorOffset(), e.CursorLength())
	}
	run(t, s, "find")
	if e.CursorOffset() != 6 {
		t.Errorf("repeat find = %d, want 6", e.CursorOffset())
	}
	run(t, s, "find")
	if e.CursorOffset() != 2 {
		t.Errorf("find did not wrap: %d", e.CursorOffset())
	}
	run(t, s, "rfind AB")
	if e.CursorOffset() != 6 {
		t.Errorf("rfind from 2 = %d, want 6", e.CursorOffset())
	}

	err := s.RunLine("find ZZ")
	if !errors.Is(err, engine.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if e.ErrorMessage() != `pattern "ZZ" not found` {
		t.Errorf("error message = %q", e.ErrorMessage())
	}
}

func TestShellFindSelection(t *testing.T) {
	s := newShell([]byte{0x01, 0x02, 0x09, 0x01, 0x02})
	e := s.Editor()
	if err := e.MakeSelection(0, 2); err != nil {
		t.Fatal(err)
	}

	run(t, s, "find_selection")
	if e.CursorOffset() != 3 || e.CursorLength() != 2 {
		t.Errorf("selection find = %d+%d, want 3+2", e.CursorOffset(), e.CursorLength())
	}
}

func TestShellReplace(t *testing.T) {
	s := newShell([]byte("aXbXc"))
	run(t, s, `replace X \x00`)
	assertBytes(t, s, "a\x00b\x00c")
	if msg := s.Editor().UserMessage(); msg != "Replaced 2 instances" {
		t.Errorf("message = %q", msg)
	}

	if err := s.RunLine("replace Q R"); !errors.Is(err, engine.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
	if err := s.RunLine("replace Q"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestShellJump(t *testing.T) {
	data := make([]byte, 16)
	data[1] = 0x05
	s := newShell(data)
	e := s.Editor()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"goto", []string{"goto 4"}, 4},
		{"bare integer", []string{"12"}, 12},
		{"hex", []string{`g \x0A`}, 10},
		{"register", []string{"register 3", "goto"}, 3},
		{"end", []string{"goto"}, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, s, tt.lines...)
			if e.CursorOffset() != tt.want || e.CursorLength() != 1 {
				t.Errorf("cursor = %d+%d, want %d+1", e.CursorOffset(), e.CursorLength(), tt.want)
			}
		})
	}

	if err := s.RunLine("goto 99"); err == nil {
		t.Error("expected out-of-bounds error")
	}

	if err := e.MakeSelection(0, 2); err != nil {
		t.Fatal(err)
	}
	run(t, s, "goto_be")
	if e.CursorOffset() != 5 {
		t.Errorf("big-endian jump = %d, want 5", e.CursorOffset())
	}

	if err := e.MakeSelection(1, 2); err != nil {
		t.Fatal(err)
	}
	run(t, s, "goto_le")
	if e.CursorOffset() != 5 {
		t.Errorf("little-endian jump = %d, want 5", e.CursorOffset())
	}
}

func TestShellFormatter(t *testing.T) {
	s := newShell([]byte{0x01})
	run(t, s, "formatter bin")
	if s.Editor().Formatter().Kind() != format.Binary {
		t.Errorf("formatter = %v", s.Editor().Formatter().Kind())
	}
	run(t, s, "toggle_formatter")
	if s.Editor().Formatter().Kind() == format.Binary {
		t.Error("toggle did not change the formatter")
	}
	if err := s.RunLine("formatter octal"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestShellSaveAndQuit(t *testing.T) {
	s := newShell([]byte("x"))
	if err := s.RunLine("q"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if s.Editor().ErrorMessage() != "" {
		t.Errorf("quit set error message %q", s.Editor().ErrorMessage())
	}
	if err := s.RunLine("wq"); !errors.Is(err, engine.ErrPathNotSet) {
		t.Errorf("expected ErrPathNotSet, got %v", err)
	}

	memfs := vfs.NewMemFS()
	store := filestore.NewFileStore(memfs)
	s = newShell([]byte("data"), engine.WithFileStore(store), engine.WithFilePath("/a.bin"))
	run(t, s, "w")
	if got, _ := memfs.ReadFile("/a.bin"); string(got) != "data" {
		t.Errorf("saved %q", got)
	}
	if err := s.RunLine("wq /b.bin"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit after save, got %v", err)
	}
	if !memfs.Exists("/b.bin") || s.Editor().UserMessage() != "saved '/b.bin'" {
		t.Errorf("save-as message %q", s.Editor().UserMessage())
	}
}

func TestShellAlias(t *testing.T) {
	s := newShell(nil)
	run(t, s, "alias put insert", "put Z")
	assertBytes(t, s, "Z")

	if err := s.RunLine("alias bad nothing"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if err := s.RunLine("bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestShellMacro(t *testing.T) {
	s := newShell(nil)
	run(t, s, "rec a", "insert X", "rec")
	if key, ok := s.Recording(); ok {
		t.Fatalf("still recording %q", key)
	}
	if msg := s.Editor().UserMessage(); msg != "recorded 1 actions at a" {
		t.Errorf("message = %q", msg)
	}

	run(t, s, "register 2", "play a")
	assertBytes(t, s, "XXX")

	if err := s.RunLine("rec"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestShellScripts(t *testing.T) {
	s := newShell(nil)
	if err := s.RunLine("lua hs.undo()"); !errors.Is(err, ErrNoScriptRunner) {
		t.Errorf("expected ErrNoScriptRunner, got %v", err)
	}

	r := &fakeRunner{}
	s.SetScriptRunner(r)
	run(t, s, "source a.lua b.lua", "lua hs.insert(0, 'x')")
	if !slices.Equal(r.files, []string{"a.lua", "b.lua"}) {
		t.Errorf("files = %q", r.files)
	}
	if !slices.Equal(r.sources, []string{"hs.insert(0, 'x')"}) {
		t.Errorf("sources = %q", r.sources)
	}
	if s.History().Len() != 3 {
		t.Errorf("history length = %d, want 3", s.History().Len())
	}
}
