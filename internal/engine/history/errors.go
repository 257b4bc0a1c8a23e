package history

import "errors"

// ErrEmptyStack is returned by Undo or Redo when there is nothing to apply.
var ErrEmptyStack = errors.New("nothing to undo or redo")
