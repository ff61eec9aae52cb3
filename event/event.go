package event

import "time"

// Event is a tagged record produced by a Source. Events are immutable
// once received; exactly one payload field is meaningful for a given
// kind (Key for key events, User for synthetic events).
type Event struct {
	// Kind discriminates the event and routes it to matching handlers.
	Kind Kind

	// When is the arrival time of the event.
	When time.Time

	// Key is the payload for KindKeyDown and KindKeyUp events.
	Key KeyEvent

	// User is the payload for synthetic (registered-kind) events.
	User UserEvent
}

// KeyEvent is the payload of a keyboard event.
type KeyEvent struct {
	// Code identifies the logical key.
	Code Keycode

	// Mod holds the active modifier keys.
	Mod ModMask

	// Repeat is set when the event was generated by key auto-repeat.
	Repeat bool

	// Timestamp is the source's millisecond timestamp for the event,
	// monotonically non-decreasing per key. The rate limiter works in
	// this timescale.
	Timestamp uint32
}

// UserEvent is the payload of a synthetic event.
type UserEvent struct {
	// Code is a small caller-defined integer.
	Code int32

	// Data is an arbitrary caller-defined value.
	Data any
}

// NewKeyDown builds a key-down event.
func NewKeyDown(code Keycode, mod ModMask, repeat bool, timestamp uint32) Event {
	return Event{
		Kind: KindKeyDown,
		When: time.Now(),
		Key:  KeyEvent{Code: code, Mod: mod, Repeat: repeat, Timestamp: timestamp},
	}
}

// NewKeyUp builds a key-up event.
func NewKeyUp(code Keycode, mod ModMask, timestamp uint32) Event {
	return Event{
		Kind: KindKeyUp,
		When: time.Now(),
		Key:  KeyEvent{Code: code, Mod: mod, Timestamp: timestamp},
	}
}

// NewUser builds a synthetic event of the given registered kind.
func NewUser(kind Kind, code int32, data any) Event {
	return Event{
		Kind: kind,
		When: time.Now(),
		User: UserEvent{Code: code, Data: data},
	}
}

// NewQuit builds a quit event.
func NewQuit() Event {
	return Event{Kind: KindQuit, When: time.Now()}
}

// Source is the narrow interface to a native event layer.
//
// WaitEvent blocks until an event arrives or the timeout elapses,
// reporting ok=false on timeout. A negative timeout waits forever.
// Implementations must deliver already-pending events before reporting
// a timeout, so that posted events are never starved by due timers.
//
// Post enqueues an event and is safe to call from any goroutine.
type Source interface {
	WaitEvent(timeout time.Duration) (Event, bool)
	Post(ev Event) error
}
