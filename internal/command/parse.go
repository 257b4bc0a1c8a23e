package command

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"
)

// ParseWords splits a command line into words. Words are separated by
// spaces; single or double quotes group a word that may contain spaces.
// A backslash makes a following space or quote literal and is otherwise
// kept, so byte escapes such as \x41 pass through untouched.
func ParseWords(line string) []string {
	var (
		words   []string
		word    strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
		}
		word.Reset()
		inWord = false
		quote = 0
	}

	for _, c := range line {
		if escaped {
			if c != ' ' && c != '"' && c != '\'' {
				word.WriteByte('\\')
			}
			word.WriteRune(c)
			inWord = true
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				flush()
			} else {
				word.WriteRune(c)
			}
		case c == ' ' || c == '\t':
			if inWord {
				flush()
			}
		case (c == '"' || c == '\'') && !inWord:
			quote = c
		default:
			word.WriteRune(c)
			inWord = true
		}
	}
	if escaped {
		word.WriteByte('\\')
	}
	flush()
	return words
}

// ParseLine parses a command line into a command. A line that is a bare
// integer is a jump to that offset.
func ParseLine(line string) (Command, error) {
	words := ParseWords(line)
	if len(words) == 0 {
		return Command{}, ErrEmptyLine
	}
	if _, err := ParseInteger(words[0]); err == nil && len(words) == 1 {
		return New(Jump, words[0]), nil
	}
	kind, ok := Lookup(words[0])
	if !ok {
		return Command{}, &UnknownCommandError{Name: words[0]}
	}
	return withArgs(kind, line, words), nil
}

// withArgs builds the command for kind. Script source is taken verbatim
// from the rest of the line instead of being split into words.
func withArgs(kind Kind, line string, words []string) Command {
	if kind == EvalScript {
		_, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		if rest = strings.TrimSpace(rest); rest != "" {
			return Command{Kind: kind, Args: []string{rest}}
		}
		return Command{Kind: kind}
	}
	return Command{Kind: kind, Args: words[1:]}
}

// UnknownCommandError reports a command name with no command behind it.
type UnknownCommandError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return "unknown command: " + strconv.Quote(e.Name)
}

// Is matches ErrUnknownCommand.
func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// ParseBytes converts an argument into bytes.
//
//	\xHHHH  hex digits, two per byte, odd counts padded on the left
//	\bBBBB  binary digits, eight per byte, padded on the left
//	\dNNNN  a decimal number written big-endian in as few bytes as fit
//
// Anything else is taken literally as its UTF-8 bytes.
func ParseBytes(arg string) ([]byte, error) {
	if len(arg) <= 2 || arg[0] != '\\' {
		return []byte(arg), nil
	}
	digits := arg[2:]
	switch arg[1] {
	case 'x':
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		out, err := hex.DecodeString(digits)
		if err != nil {
			return nil, invalidArg("hex bytes %q", arg)
		}
		return out, nil
	case 'b':
		return parseBits(arg, digits)
	case 'd':
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok || n.Sign() < 0 {
			return nil, invalidArg("decimal bytes %q", arg)
		}
		if n.Sign() == 0 {
			return []byte{0}, nil
		}
		return n.Bytes(), nil
	default:
		return []byte(arg), nil
	}
}

func parseBits(arg, digits string) ([]byte, error) {
	if pad := len(digits) % 8; pad != 0 {
		digits = strings.Repeat("0", 8-pad) + digits
	}
	out := make([]byte, 0, len(digits)/8)
	for i := 0; i < len(digits); i += 8 {
		v, err := strconv.ParseUint(digits[i:i+8], 2, 8)
		if err != nil {
			return nil, invalidArg("binary bytes %q", arg)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// ParseInteger converts an argument into a non-negative integer. A \x
// prefix reads hex and \b reads binary; otherwise the text is decimal.
func ParseInteger(arg string) (int, error) {
	base, digits := 10, arg
	if len(arg) > 2 && arg[0] == '\\' {
		switch arg[1] {
		case 'x':
			base, digits = 16, arg[2:]
		case 'b':
			base, digits = 2, arg[2:]
		case 'd':
			digits = arg[2:]
		}
	}
	v, err := strconv.ParseInt(digits, base, 0)
	if err != nil || v < 0 {
		return 0, invalidArg("integer %q", arg)
	}
	return int(v), nil
}
