package app

import "errors"

// ErrHistoryExhausted and related errors describe recoverable engine failures.
// None of them is fatal; the controller absorbs or surfaces each one in the
// status area.
var (
	ErrHistoryExhausted    = errors.New("history exhausted")
	ErrUnsavedChanges      = errors.New("unsaved changes")
	ErrCommandUnrecognized = errors.New("unrecognized command")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
)
