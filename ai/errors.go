package ai

import "errors"

var (
	// ErrEmptyText is returned when embedding input is empty or whitespace.
	// An embedding of empty text carries no information; callers must not
	// request one.
	ErrEmptyText = errors.New("embedding input text is empty")
)
