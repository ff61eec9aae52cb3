package event

// HandlerFunc is a bound event handler. It returns true when it has
// consumed the event, stopping further handler attempts for that event.
type HandlerFunc func(ev Event) bool

// entry pairs a kind with its handler. Dispatch priority is insertion
// order; entries are never removed.
type entry struct {
	kind Kind
	fn   HandlerFunc
}

// Map is an ordered table mapping event kinds to handlers.
//
// Map can be used with or without a Loop. Without a loop the caller is
// responsible for calling HandleEvent and for keeping registration and
// dispatch on one goroutine. With a loop, all registration must complete
// before Run is called.
type Map struct {
	entries []entry
}

// NewMap returns an empty handler table.
func NewMap() *Map {
	return &Map{}
}

// AddHandler appends a handler for the given kind. Multiple handlers may
// share a kind; later ones are tried only when earlier ones don't match
// or decline the event. A nil handler is ignored.
func (m *Map) AddHandler(kind Kind, fn HandlerFunc) {
	if fn == nil {
		return
	}
	m.entries = append(m.entries, entry{kind: kind, fn: fn})
}

// AddKeyDownHandler registers fn for presses of the given key. Repeat
// events are rate limited: the callback is skipped for over-fast
// repeats, but a matching key code always consumes the event.
func (m *Map) AddKeyDownHandler(code Keycode, fn func()) {
	if fn == nil {
		return
	}
	var limiter RateLimiter
	m.AddHandler(KindKeyDown, func(ev Event) bool {
		if ev.Key.Code != code {
			return false
		}
		if !limiter.Limited(ev) {
			fn()
		}
		return true
	})
}

// AddKeyUpHandler registers fn for releases of the given key. The
// callback fires unconditionally when the key code matches, and the
// event is consumed.
func (m *Map) AddKeyUpHandler(code Keycode, fn func()) {
	if fn == nil {
		return
	}
	m.AddHandler(KindKeyUp, func(ev Event) bool {
		if ev.Key.Code != code {
			return false
		}
		fn()
		return true
	})
}

// HandleEvent offers ev to the registered handlers in insertion order
// and reports whether any handler consumed it. Not consuming an event is
// normal control flow, not an error.
func (m *Map) HandleEvent(ev Event) bool {
	for _, e := range m.entries {
		if e.kind == ev.Kind && e.fn(ev) {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (m *Map) Len() int {
	return len(m.entries)
}
