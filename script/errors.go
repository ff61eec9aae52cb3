package script

import "errors"

var (
	// ErrNilHost indicates New was called without a host.
	ErrNilHost = errors.New("script: nil host")

	// ErrStateClosed indicates use of a closed state.
	ErrStateClosed = errors.New("script: state closed")
)
