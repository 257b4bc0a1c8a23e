package engine

import "errors"

// Errors returned by editor operations. Errors from the content, search
// and history packages are passed through unchanged and can be matched
// with errors.Is against their own sentinels.
var (
	// ErrReadOnly indicates a mutation was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrPathNotSet indicates Save was called before a file path was set.
	ErrPathNotSet = errors.New("no file path set")

	// ErrNoFileStore indicates a file operation on an editor built without a store.
	ErrNoFileStore = errors.New("no file store configured")

	// ErrNoMatch indicates a search found nothing.
	ErrNoMatch = errors.New("no match")

	// ErrSelectionTooWide indicates the selection does not fit in 64 bits.
	ErrSelectionTooWide = errors.New("selection wider than 8 bytes")

	// ErrEmptyMask indicates a mask operation was given no mask bytes.
	ErrEmptyMask = errors.New("empty mask")
)
