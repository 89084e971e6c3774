package openai

import "errors"

var (
	// ErrEmptyResponse is returned when the model returns no choices.
	ErrEmptyResponse = errors.New("model returned no choices")
)
