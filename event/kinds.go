package event

import "sync"

// Kind discriminates events. The built-in kinds cover the events every
// source produces; additional private kinds are allocated from a bounded
// process-wide space with RegisterKinds.
type Kind uint32

// Built-in event kinds.
const (
	// KindNone marks an event carrying no information. Sources may
	// produce it for native events they cannot translate; it matches
	// no built-in dispatch behavior.
	KindNone Kind = iota

	// KindQuit requests loop termination (window close, interrupt).
	KindQuit

	// KindKeyDown is a key press, possibly auto-repeated.
	KindKeyDown

	// KindKeyUp is a key release. Not all sources produce it;
	// terminals in particular report presses only.
	KindKeyUp
)

// User kinds occupy [kindUserFirst, kindUserLimit).
const (
	kindUserFirst Kind = 0x1000
	kindUserLimit Kind = 0x2000
)

// kindSpace allocates consecutive Kind values from a bounded range.
// Exhaustion is permanent.
type kindSpace struct {
	mu    sync.Mutex
	next  Kind
	limit Kind
}

func (s *kindSpace) register(n int) (Kind, bool) {
	if n <= 0 {
		return KindNone, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if Kind(n) > s.limit-s.next {
		return KindNone, false
	}
	first := s.next
	s.next += Kind(n)
	return first, true
}

var userKinds = kindSpace{next: kindUserFirst, limit: kindUserLimit}

// RegisterKinds allocates n consecutive private event kinds and returns
// the first. It reports ok=false when the kind space is exhausted; the
// space is process-wide and exhaustion is permanent.
func RegisterKinds(n int) (Kind, bool) {
	return userKinds.register(n)
}
