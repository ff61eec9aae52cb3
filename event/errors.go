package event

import "errors"

// Sentinel errors for the event package.
var (
	// ErrKindSpace is returned when the private event kind space is
	// exhausted and no further kinds can be registered.
	ErrKindSpace = errors.New("event kind space exhausted")

	// ErrQueueFull is returned by Post when the queue cannot accept
	// more events.
	ErrQueueFull = errors.New("event queue is full")

	// ErrNilSource is returned by New when no source is provided.
	ErrNilSource = errors.New("event source cannot be nil")

	// ErrAlreadyRunning is returned when Run is called on a loop that
	// is already running.
	ErrAlreadyRunning = errors.New("event loop is already running")
)
