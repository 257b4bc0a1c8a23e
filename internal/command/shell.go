package command

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/content"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/search"
)

// ScriptRunner executes scripts against the shell.
type ScriptRunner interface {
	RunFile(path string) error
	RunString(source string) error
}

// Shell executes commands against an editor. It owns the repeat
// register, command-line history, user aliases and recorded macros.
// Feedback and failures are reported through the editor's user and
// error messages.
//
// Shell is not safe for concurrent use.
type Shell struct {
	editor   *engine.Editor
	register Register
	history  *History
	aliases  map[string]string
	scripts  ScriptRunner

	macros     map[string][]Command
	recordKey  string
	recording  bool
	inPlayback bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithScriptRunner sets the runner used by the script commands.
func WithScriptRunner(r ScriptRunner) Option {
	return func(s *Shell) {
		s.scripts = r
	}
}

// WithHistorySize sets how many command lines are remembered.
func WithHistorySize(n int) Option {
	return func(s *Shell) {
		s.history = NewHistory(n)
	}
}

// NewShell creates a shell over editor.
func NewShell(editor *engine.Editor, opts ...Option) *Shell {
	s := &Shell{
		editor:  editor,
		history: NewHistory(defaultHistorySize),
		aliases: make(map[string]string),
		macros:  make(map[string][]Command),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Editor returns the editor the shell drives.
func (s *Shell) Editor() *engine.Editor {
	return s.editor
}

// SetScriptRunner replaces the script runner.
func (s *Shell) SetScriptRunner(r ScriptRunner) {
	s.scripts = r
}

// Register returns the repeat register.
func (s *Shell) Register() *Register {
	return &s.register
}

// History returns the command-line history.
func (s *Shell) History() *History {
	return s.history
}

// Recording returns the macro key being recorded, if any.
func (s *Shell) Recording() (string, bool) {
	return s.recordKey, s.recording
}

// Parse parses a command line, resolving user aliases first.
func (s *Shell) Parse(line string) (Command, error) {
	words := ParseWords(line)
	if len(words) > 0 {
		if target, ok := s.aliases[strings.ToLower(words[0])]; ok {
			kind, _ := Lookup(target)
			return withArgs(kind, line, words), nil
		}
	}
	return ParseLine(line)
}

// RunLine parses and executes a command line, adding it to the history.
func (s *Shell) RunLine(line string) error {
	line = strings.TrimSpace(line)
	cmd, err := s.Parse(line)
	if err != nil {
		s.editor.SetErrorMessage(err.Error())
		return err
	}
	s.history.Add(line)
	return s.Execute(cmd)
}

// Execute runs one command. Failures other than ErrQuit are also set as
// the editor's error message.
func (s *Shell) Execute(cmd Command) error {
	if s.recording && !s.inPlayback && cmd.Kind != RecordToggle {
		s.macros[s.recordKey] = append(s.macros[s.recordKey], cmd)
	}
	err := s.execute(cmd)
	if err != nil && !errors.Is(err, ErrQuit) {
		s.editor.SetErrorMessage(err.Error())
	}
	return err
}

func (s *Shell) execute(cmd Command) error {
	e := s.editor
	args := cmd.Args

	switch cmd.Kind {
	case None:
		return nil

	// Cursor
	case CursorUp:
		s.repeat(e.CursorPrevLine)
	case CursorDown:
		s.repeat(e.CursorNextLine)
	case CursorLeft:
		s.repeat(e.CursorPrevByte)
	case CursorRight:
		s.repeat(e.CursorNextByte)
	case CursorStart:
		s.register.Clear()
		e.CursorToStart()
	case CursorEnd:
		s.register.Clear()
		e.CursorToEnd()
	case LengthUp:
		s.repeat(e.CursorDecreaseLengthByLine)
	case LengthDown:
		s.repeat(e.CursorIncreaseLengthByLine)
	case LengthLeft:
		s.repeat(e.CursorDecreaseLength)
	case LengthRight:
		s.repeat(e.CursorIncreaseLength)
	case SubcursorLeft:
		s.repeat(e.SubcursorPrevDigit)
	case SubcursorRight:
		s.repeat(e.SubcursorNextDigit)

	// Editing
	case InsertString:
		return s.putString(args, e.InsertAtCursor)
	case OverwriteString:
		return s.putString(args, e.OverwriteAtCursor)
	case OverwriteDigit:
		return s.overwriteDigits(args)
	case Delete:
		return s.delete()
	case Backspace:
		return s.backspace()
	case Yank:
		n := len(e.Copy())
		e.SetCursorLength(1)
		e.SetUserMessage(fmt.Sprintf("Yanked %d bytes", n))
	case Paste:
		return s.paste()
	case Undo:
		return s.undo(e.Undo, "Undid", "nothing to undo")
	case Redo:
		return s.undo(e.Redo, "Redid", "nothing to redo")
	case Increment:
		return s.step(e.IncrementAtCursor)
	case Decrement:
		return s.step(e.DecrementAtCursor)

	// Bitwise
	case MaskAnd:
		return s.mask(engine.MaskAnd, args)
	case MaskOr:
		return s.mask(engine.MaskOr, args)
	case MaskXor:
		return s.mask(engine.MaskXor, args)
	case MaskNand:
		return s.mask(engine.MaskNand, args)
	case MaskNor:
		return s.mask(engine.MaskNor, args)
	case BitwiseNot:
		return e.BitwiseNot()

	// Search
	case FindNext, FindPrev:
		pattern, err := s.patternArg(args)
		if err != nil {
			return err
		}
		return s.find(pattern, cmd.Kind == FindNext)
	case FindSelectionNext, FindSelectionPrev:
		return s.find(search.EscapeBytes(e.Selected()), cmd.Kind == FindSelectionNext)
	case Replace:
		return s.replace(args)

	// Jumps
	case Jump:
		return s.jump(args)
	case JumpBigEndian:
		return s.jumpToValue(e.SelectedBigEndian)
	case JumpLittleEndian:
		return s.jumpToValue(e.SelectedLittleEndian)

	// Display
	case ToggleFormatter:
		f := e.ToggleFormatter()
		e.SetUserMessage("formatter: " + f.Kind().String())
	case SetFormatter:
		if len(args) == 0 {
			return invalidArg("formatter name required")
		}
		kind, err := format.ParseKind(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		e.SetFormatter(kind)

	// File
	case Save:
		return s.save(args)
	case SaveQuit:
		if err := s.save(args); err != nil {
			return err
		}
		return ErrQuit
	case Quit:
		return ErrQuit

	// Register
	case RegisterClear:
		s.register.Clear()
	case RegisterSet:
		s.register.Clear()
		return s.pushDigits(args)
	case RegisterPush:
		return s.pushDigits(args)

	// Aliases, macros, scripts
	case Alias:
		return s.alias(args)
	case RecordToggle:
		return s.recordToggle(args)
	case Playback:
		return s.playback(args)
	case RunScript:
		return s.runScripts(args)
	case EvalScript:
		if s.scripts == nil {
			return ErrNoScriptRunner
		}
		if len(args) == 0 {
			return invalidArg("script source required")
		}
		return s.scripts.RunString(args[0])

	default:
		return &UnknownCommandError{Name: cmd.Kind.String()}
	}
	return nil
}

// repeat calls fn as many times as the register says, once by default.
func (s *Shell) repeat(fn func()) {
	for rep, repN := 0, s.register.Fetch(1); rep < repN; rep++ {
		fn()
	}
}

func (s *Shell) putString(args []string, put func([]byte) error) error {
	if len(args) == 0 {
		s.register.Clear()
		return invalidArg("text required")
	}
	chunks := make([][]byte, 0, len(args))
	for _, arg := range args {
		data, err := ParseBytes(arg)
		if err != nil {
			s.register.Clear()
			return err
		}
		chunks = append(chunks, data)
	}
	for rep, repN := 0, s.register.Fetch(1); rep < repN; rep++ {
		for _, data := range chunks {
			s.editor.SetCursorLength(1)
			if err := put(data); err != nil {
				return err
			}
		}
	}
	return nil
}

// overwriteDigits types each character of args at the subcursor. After
// the last digit of a single selected byte the cursor moves on.
func (s *Shell) overwriteDigits(args []string) error {
	e := s.editor
	for _, arg := range args {
		for _, r := range arg {
			if err := e.ReplaceDigit(r); err != nil {
				return err
			}
			e.SubcursorNextDigit()
			if e.SubcursorOffset() == 0 && e.CursorLength() == 1 {
				e.CursorNextByte()
			}
		}
	}
	return nil
}

func (s *Shell) delete() error {
	e := s.editor
	var removed []byte
	for rep, repN := 0, s.register.Fetch(1); rep < repN; rep++ {
		chunk, err := e.RemoveAtCursor()
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			break
		}
		removed = append(removed, chunk...)
	}
	e.SetClipboard(removed)
	e.SetUserMessage(fmt.Sprintf("%d fewer bytes", len(removed)))
	return nil
}

func (s *Shell) backspace() error {
	e := s.editor
	offset := e.CursorOffset()
	n := min(s.register.Fetch(1), offset)
	if n == 0 {
		return nil
	}
	if err := e.MakeSelection(offset-n, n); err != nil {
		return err
	}
	removed, err := e.RemoveAtCursor()
	if err != nil {
		return err
	}
	e.SetClipboard(removed)
	return nil
}

func (s *Shell) paste() error {
	e := s.editor
	data := e.Clipboard()
	n := s.register.Fetch(1)
	if len(data) == 0 {
		return nil
	}
	for rep := 0; rep < n; rep++ {
		if err := e.InsertAtCursor(data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) undo(fn func() error, verb, empty string) error {
	n := s.register.Fetch(1)
	for i := 0; i < n; i++ {
		err := fn()
		if errors.Is(err, history.ErrEmptyStack) {
			if i == 0 {
				return fmt.Errorf("%s: %w", empty, err)
			}
			break
		}
		if err != nil {
			return err
		}
		s.editor.SetUserMessage(fmt.Sprintf("%s %d actions", verb, i+1))
	}
	return nil
}

// step applies fn as often as the register says. Stepping stops quietly
// at the end of the buffer.
func (s *Shell) step(fn func() error) error {
	for rep, repN := 0, s.register.Fetch(1); rep < repN; rep++ {
		err := fn()
		if errors.Is(err, content.ErrOutOfBounds) {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) mask(op engine.MaskOp, args []string) error {
	if len(args) == 0 {
		return invalidArg("mask required")
	}
	for _, arg := range args {
		mask, err := ParseBytes(arg)
		if err != nil {
			return err
		}
		if err := s.editor.ApplyMask(op, mask); err != nil {
			return err
		}
	}
	return nil
}

// patternArg returns the first argument, or the last searched pattern.
func (s *Shell) patternArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	h := s.editor.SearchHistory()
	if len(h) == 0 {
		s.register.Clear()
		return "", invalidArg("pattern required")
	}
	return h[len(h)-1], nil
}

func (s *Shell) find(pattern string, forward bool) error {
	e := s.editor
	n := min(max(s.register.Fetch(1), 1), math.MaxInt32)
	var (
		m   search.Match
		err error
	)
	if forward {
		m, err = e.FindNthAfter(pattern, e.CursorOffset(), n-1)
	} else {
		m, err = e.FindNthBefore(pattern, e.CursorOffset(), n-1)
	}
	if errors.Is(err, engine.ErrNoMatch) {
		return &NotFoundError{Pattern: pattern}
	}
	if err != nil {
		return err
	}
	if m.Len() == 0 {
		return e.MakeSelection(m.Start, 1)
	}
	return e.MakeSelection(m.Start, m.Len())
}

func (s *Shell) replace(args []string) error {
	if len(args) < 2 {
		return invalidArg("replace needs a pattern and replacement")
	}
	data, err := ParseBytes(args[1])
	if err != nil {
		return err
	}
	matches, err := s.editor.Replace(args[0], data)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return &NotFoundError{Pattern: args[0]}
	}
	s.editor.SetUserMessage(fmt.Sprintf("Replaced %d instances", len(matches)))
	return nil
}

// jump moves to the offset in args, else the register, else the end.
func (s *Shell) jump(args []string) error {
	e := s.editor
	offset := s.register.Fetch(e.Len())
	if len(args) > 0 {
		n, err := ParseInteger(args[0])
		if err != nil {
			return err
		}
		offset = n
	}
	return e.MakeSelection(offset, 1)
}

func (s *Shell) jumpToValue(value func() (uint64, error)) error {
	v, err := value()
	if err != nil {
		return err
	}
	offset := int(min(v, uint64(math.MaxInt)))
	return s.editor.MakeSelection(offset, 1)
}

func (s *Shell) save(args []string) error {
	e := s.editor
	if len(args) == 0 {
		if err := e.Save(); err != nil {
			return err
		}
		e.SetUserMessage("saved")
		return nil
	}
	for _, path := range args {
		if err := e.SaveAs(path); err != nil {
			return err
		}
		e.SetUserMessage(fmt.Sprintf("saved '%s'", path))
	}
	return nil
}

func (s *Shell) pushDigits(args []string) error {
	for _, arg := range args {
		for _, r := range arg {
			if !s.register.Push(r) {
				return invalidArg("invalid digit %q", r)
			}
		}
	}
	return nil
}

func (s *Shell) alias(args []string) error {
	if len(args) < 2 {
		return invalidArg("alias and command name required")
	}
	if _, ok := Lookup(args[1]); !ok {
		return &UnknownCommandError{Name: args[1]}
	}
	s.aliases[strings.ToLower(args[0])] = strings.ToLower(args[1])
	return nil
}

func (s *Shell) recordToggle(args []string) error {
	if s.inPlayback {
		return nil
	}
	if s.recording {
		n := len(s.macros[s.recordKey])
		s.editor.SetUserMessage(fmt.Sprintf("recorded %d actions at %s", n, s.recordKey))
		s.recording = false
		s.recordKey = ""
		return nil
	}
	if len(args) == 0 {
		return invalidArg("macro key required")
	}
	s.recordKey = args[0]
	s.recording = true
	s.macros[s.recordKey] = nil
	s.editor.SetUserMessage(fmt.Sprintf("recording @ '%s'", s.recordKey))
	return nil
}

func (s *Shell) playback(args []string) error {
	if s.inPlayback {
		return nil
	}
	if len(args) == 0 {
		s.register.Clear()
		return invalidArg("macro key required")
	}
	s.inPlayback = true
	defer func() { s.inPlayback = false }()

	for rep, repN := 0, s.register.Fetch(1); rep < repN; rep++ {
		for _, key := range args {
			for _, cmd := range s.macros[key] {
				if err := s.execute(cmd); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Shell) runScripts(args []string) error {
	if s.scripts == nil {
		return ErrNoScriptRunner
	}
	if len(args) == 0 {
		return invalidArg("script path required")
	}
	for _, path := range args {
		if err := s.scripts.RunFile(path); err != nil {
			return err
		}
	}
	return nil
}
