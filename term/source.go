package term

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmap/event"
)

// eventBufferSize is the capacity of the channel fed by tcell's pump.
const eventBufferSize = 100

// Resize is the payload of a resize event.
type Resize struct {
	Width  int
	Height int
}

// Mouse is the payload of a mouse event.
type Mouse struct {
	X       int
	Y       int
	Buttons tcell.ButtonMask
	Mod     event.ModMask
}

// Terminal-specific event kinds, registered once per process.
var (
	kindsOnce  sync.Once
	resizeKind event.Kind
	mouseKind  event.Kind
	kindsErr   error
)

// EventKinds returns the kinds used for terminal resize and mouse
// events, registering them on first use. Registration failure is
// permanent and makes every terminal source unusable.
func EventKinds() (resize, mouse event.Kind, err error) {
	kindsOnce.Do(func() {
		first, ok := event.RegisterKinds(2)
		if !ok {
			kindsErr = event.ErrKindSpace
			return
		}
		resizeKind = first
		mouseKind = first + 1
	})
	return resizeKind, mouseKind, kindsErr
}

// syntheticEvent carries an evmap event through tcell's queue.
type syntheticEvent struct {
	when time.Time
	ev   event.Event
}

func (s *syntheticEvent) When() time.Time { return s.when }

// Source adapts a tcell screen to event.Source. The screen must be
// initialized; the source owns a pump goroutine that stops when Close is
// called or the screen is finalized.
type Source struct {
	screen     tcell.Screen
	events     chan tcell.Event
	quit       chan struct{}
	closeOnce  sync.Once
	resizeKind event.Kind
	mouseKind  event.Kind
}

// NewSource creates a source over the given screen.
func NewSource(screen tcell.Screen) (*Source, error) {
	resize, mouse, err := EventKinds()
	if err != nil {
		return nil, err
	}
	s := &Source{
		screen:     screen,
		events:     make(chan tcell.Event, eventBufferSize),
		quit:       make(chan struct{}),
		resizeKind: resize,
		mouseKind:  mouse,
	}
	go screen.ChannelEvents(s.events, s.quit)
	return s, nil
}

// Close stops the event pump. It does not finalize the screen.
func (s *Source) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
}

// Post injects a synthetic event through tcell's thread-safe queue.
func (s *Source) Post(ev event.Event) error {
	if err := s.screen.PostEvent(&syntheticEvent{when: time.Now(), ev: ev}); err != nil {
		return event.ErrQueueFull
	}
	return nil
}

// WaitEvent returns the next event, waiting up to timeout. Pending
// events are drained before a timeout is reported. A closed pump (screen
// finalized or source closed) is reported as a quit event so a running
// loop shuts down instead of spinning.
func (s *Source) WaitEvent(timeout time.Duration) (event.Event, bool) {
	select {
	case tev, ok := <-s.events:
		return s.convert(tev, ok), true
	default:
	}

	if timeout < 0 {
		tev, ok := <-s.events
		return s.convert(tev, ok), true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case tev, ok := <-s.events:
		return s.convert(tev, ok), true
	case <-t.C:
		return event.Event{}, false
	}
}

// convert translates a tcell event into an evmap event.
func (s *Source) convert(tev tcell.Event, ok bool) event.Event {
	if !ok {
		return event.NewQuit()
	}

	switch e := tev.(type) {
	case *syntheticEvent:
		return e.ev

	case *tcell.EventKey:
		code, mod := fromTcellKey(e)
		return event.Event{
			Kind: event.KindKeyDown,
			When: e.When(),
			Key: event.KeyEvent{
				Code:      code,
				Mod:       mod,
				Timestamp: uint32(e.When().UnixMilli()),
			},
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return event.NewUser(s.resizeKind, 0, Resize{Width: w, Height: h})

	case *tcell.EventMouse:
		x, y := e.Position()
		return event.NewUser(s.mouseKind, 0, Mouse{
			X:       x,
			Y:       y,
			Buttons: e.Buttons(),
			Mod:     fromTcellMod(e.Modifiers()),
		})

	case *tcell.EventInterrupt:
		return event.NewQuit()

	default:
		return event.Event{Kind: event.KindNone, When: tev.When()}
	}
}
