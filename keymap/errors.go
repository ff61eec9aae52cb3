package keymap

import "errors"

var (
	// ErrEmptySpec indicates an empty key specification.
	ErrEmptySpec = errors.New("empty key specification")

	// ErrBadKey indicates a key specification that could not be parsed.
	ErrBadKey = errors.New("invalid key specification")

	// ErrBadDocument indicates a binding document that is not valid JSON
	// or is missing required fields.
	ErrBadDocument = errors.New("invalid binding document")

	// ErrUnknownAction indicates a binding whose action name has no
	// registered implementation.
	ErrUnknownAction = errors.New("unknown action")
)
