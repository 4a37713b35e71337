package domain

import "errors"

// ErrEmptyText and related errors describe invariant violations on items and lists.
var (
	ErrEmptyText        = errors.New("empty text")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrMismatchedInput  = errors.New("mismatched operation input")
)
