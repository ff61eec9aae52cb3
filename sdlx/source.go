package sdlx

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/dshills/evmap/event"
)

// sdl.RegisterEvents returns this when the native type space is
// exhausted.
const invalidEventType = 0xFFFFFFFF

// Source adapts SDL's native event queue to event.Source.
//
// Synthetic events ride the native queue as a registered user event
// type. Go values must not cross the C queue, so payloads are parked
// in a registry keyed by the user event's code and claimed on receipt.
// PushEvent is the one SDL queue operation that is safe from any
// thread, which is what Post needs to marshal control events into the
// loop.
type Source struct {
	syntheticType uint32

	mu       sync.Mutex
	pending  map[int32]event.Event
	nextCode int32
}

// NewSource registers the user event type carrying synthetic events.
// Registration failure is permanent for the process.
func NewSource() (*Source, error) {
	t := sdl.RegisterEvents(1)
	if t == invalidEventType {
		return nil, event.ErrKindSpace
	}
	return &Source{
		syntheticType: t,
		pending:       make(map[int32]event.Event),
	}, nil
}

// Post marshals an event through the native queue. Safe to call from
// any thread.
func (s *Source) Post(ev event.Event) error {
	s.mu.Lock()
	s.nextCode++
	code := s.nextCode
	s.pending[code] = ev
	s.mu.Unlock()

	native := &sdl.UserEvent{
		Type:      s.syntheticType,
		Timestamp: sdl.GetTicks(),
		Code:      code,
	}
	if _, err := sdl.PushEvent(native); err != nil {
		s.mu.Lock()
		delete(s.pending, code)
		s.mu.Unlock()
		return fmt.Errorf("push event: %w", err)
	}
	return nil
}

// WaitEvent returns the next event, waiting up to timeout. A negative
// timeout waits indefinitely. Must be called from the thread that
// initialized SDL.
func (s *Source) WaitEvent(timeout time.Duration) (event.Event, bool) {
	var native sdl.Event
	if timeout < 0 {
		native = sdl.WaitEvent()
	} else {
		native = sdl.WaitEventTimeout(clampTimeoutMS(timeout))
	}

	if native == nil {
		// SDL reports errors and timeouts identically. Surface an
		// error as an empty event so the caller keeps running rather
		// than treating it as a deadline.
		if err := sdl.GetError(); err != nil {
			sdl.ClearError()
			return event.Event{Kind: event.KindNone, When: time.Now()}, true
		}
		return event.Event{}, false
	}
	return s.convert(native), true
}

// clampTimeoutMS rounds the timeout up to whole milliseconds so the
// wait never wakes before a deadline.
func clampTimeoutMS(d time.Duration) int {
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	if ms > math.MaxInt32 {
		ms = math.MaxInt32
	}
	return int(ms)
}

func (s *Source) convert(native sdl.Event) event.Event {
	switch e := native.(type) {
	case *sdl.QuitEvent:
		return event.NewQuit()

	case *sdl.KeyboardEvent:
		code, mod := fromKeysym(e.Keysym)
		kind := event.KindKeyDown
		if e.Type == sdl.KEYUP {
			kind = event.KindKeyUp
		}
		return event.Event{
			Kind: kind,
			When: time.Now(),
			Key: event.KeyEvent{
				Code:      code,
				Mod:       mod,
				Repeat:    e.Repeat != 0,
				Timestamp: e.Timestamp,
			},
		}

	case *sdl.UserEvent:
		if e.Type != s.syntheticType {
			break
		}
		s.mu.Lock()
		ev, ok := s.pending[e.Code]
		delete(s.pending, e.Code)
		s.mu.Unlock()
		if ok {
			return ev
		}
	}
	return event.Event{Kind: event.KindNone, When: time.Now()}
}
