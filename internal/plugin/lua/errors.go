package lua

import "errors"

var (
	// ErrStateClosed is returned by DoString and DoFile once Close
	// has run.
	ErrStateClosed = errors.New("plugin state closed")

	// ErrExecutionTimeout wraps the interpreter error when a script is
	// cut off by the state's execution timeout.
	ErrExecutionTimeout = errors.New("plugin script timed out")
)
