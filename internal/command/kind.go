package command

import "strings"

// Kind identifies a shell command.
type Kind uint8

const (
	// None is the zero Kind and does nothing.
	None Kind = iota

	// Cursor movement.
	CursorUp
	CursorDown
	CursorLeft
	CursorRight
	CursorStart
	CursorEnd

	// Selection length.
	LengthUp
	LengthDown
	LengthLeft
	LengthRight

	// Subcursor movement.
	SubcursorLeft
	SubcursorRight

	// Editing.
	InsertString
	OverwriteString
	OverwriteDigit
	Delete
	Backspace
	Yank
	Paste
	Undo
	Redo
	Increment
	Decrement

	// Bitwise.
	MaskAnd
	MaskOr
	MaskXor
	MaskNand
	MaskNor
	BitwiseNot

	// Search.
	FindNext
	FindPrev
	FindSelectionNext
	FindSelectionPrev
	Replace

	// Jumps.
	Jump
	JumpBigEndian
	JumpLittleEndian

	// Display.
	ToggleFormatter
	SetFormatter

	// File and session.
	Save
	SaveQuit
	Quit

	// Repeat register.
	RegisterPush
	RegisterSet
	RegisterClear

	// Aliases, macros and scripts.
	Alias
	RecordToggle
	Playback
	RunScript
	EvalScript
)

var kindNames = [...]string{
	None:              "none",
	CursorUp:          "cursor_up",
	CursorDown:        "cursor_down",
	CursorLeft:        "cursor_left",
	CursorRight:       "cursor_right",
	CursorStart:       "cursor_start",
	CursorEnd:         "cursor_end",
	LengthUp:          "length_up",
	LengthDown:        "length_down",
	LengthLeft:        "length_left",
	LengthRight:       "length_right",
	SubcursorLeft:     "subcursor_left",
	SubcursorRight:    "subcursor_right",
	InsertString:      "insert",
	OverwriteString:   "overwrite",
	OverwriteDigit:    "digit",
	Delete:            "delete",
	Backspace:         "backspace",
	Yank:              "yank",
	Paste:             "paste",
	Undo:              "undo",
	Redo:              "redo",
	Increment:         "increment",
	Decrement:         "decrement",
	MaskAnd:           "and",
	MaskOr:            "or",
	MaskXor:           "xor",
	MaskNand:          "nand",
	MaskNor:           "nor",
	BitwiseNot:        "not",
	FindNext:          "find",
	FindPrev:          "rfind",
	FindSelectionNext: "find_selection",
	FindSelectionPrev: "rfind_selection",
	Replace:           "replace",
	Jump:              "goto",
	JumpBigEndian:     "goto_be",
	JumpLittleEndian:  "goto_le",
	ToggleFormatter:   "toggle_formatter",
	SetFormatter:      "formatter",
	Save:              "write",
	SaveQuit:          "write_quit",
	Quit:              "quit",
	RegisterPush:      "register_push",
	RegisterSet:       "register",
	RegisterClear:     "register_clear",
	Alias:             "alias",
	RecordToggle:      "record",
	Playback:          "play",
	RunScript:         "source",
	EvalScript:        "lua",
}

// String returns the canonical command-line name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// shortNames are the built-in abbreviations accepted besides the
// canonical names.
var shortNames = map[string]Kind{
	"q":   Quit,
	"w":   Save,
	"wq":  SaveQuit,
	"x":   SaveQuit,
	"i":   InsertString,
	"o":   OverwriteString,
	"fr":  Replace,
	"rep": Replace,
	"rec": RecordToggle,
	"g":   Jump,
	"so":  RunScript,
	"fmt": SetFormatter,
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames)+len(shortNames))
	for k, name := range kindNames {
		if Kind(k) != None {
			m[name] = Kind(k)
		}
	}
	for name, k := range shortNames {
		m[name] = k
	}
	return m
}()

// Lookup returns the kind named by name. Names are case-insensitive.
func Lookup(name string) (Kind, bool) {
	k, ok := kindsByName[strings.ToLower(name)]
	return k, ok
}

// Command is a kind with its arguments.
type Command struct {
	Kind Kind
	Args []string
}

// New creates a command.
func New(kind Kind, args ...string) Command {
	return Command{Kind: kind, Args: args}
}

// String renders the command as a command line.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Kind.String()
	}
	var sb strings.Builder
	sb.WriteString(c.Kind.String())
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(quoteWord(arg))
	}
	return sb.String()
}

func quoteWord(s string) string {
	if s != "" && !strings.ContainsAny(s, " \"'") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
