package command

import (
	"errors"
	"fmt"

	"github.com/dshills/hexstorm/internal/engine"
)

// Command errors.
var (
	// ErrUnknownCommand indicates a command line named no known command.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrInvalidArgument indicates a missing or malformed argument.
	ErrInvalidArgument = errors.New("command: invalid argument")

	// ErrEmptyLine indicates a command line with no words.
	ErrEmptyLine = errors.New("command: no command given")

	// ErrNoScriptRunner indicates a script command on a shell without one.
	ErrNoScriptRunner = errors.New("command: scripting not available")

	// ErrQuit is returned by the quit commands. It is a request, not a failure.
	ErrQuit = errors.New("command: quit")
)

// NotFoundError reports a search that found nothing.
type NotFoundError struct {
	Pattern string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pattern %q not found", e.Pattern)
}

// Is matches engine.ErrNoMatch.
func (e *NotFoundError) Is(target error) bool {
	return target == engine.ErrNoMatch
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
