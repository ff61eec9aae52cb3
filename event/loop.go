package event

import (
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/dshills/evmap/logging"
)

// PanicHandler observes a panic recovered from a user callback. value is
// the recovered value and stack the captured stack trace.
type PanicHandler func(value any, stack []byte)

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for panic reports and debug output.
func WithLogger(log *logging.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithPanicHandler sets the handler invoked when a user callback panics.
// The default policy logs the panic and keeps the loop running; a
// handler that re-panics terminates the loop instead.
func WithPanicHandler(h PanicHandler) Option {
	return func(l *Loop) {
		l.panicFn = h
	}
}

// WithClock overrides the loop's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// Loop is a single-goroutine cooperative event loop. It waits on its
// Source for the next native event or the next timer deadline, dispatches
// through its handler table, and invokes a render callback once per
// iteration.
//
// All handler registration must complete before Run. Stop, AddTimer and
// StopTimer are safe to call from any goroutine at any time; they are
// marshaled into the loop as synthetic events and take effect on the
// next iteration.
type Loop struct {
	src      Source
	handlers *Map
	timers   timerSet

	// Private control kinds registered at construction.
	stopKind   Kind
	addKind    Kind
	removeKind Kind

	nextTimerID atomic.Uint32
	running     atomic.Bool

	now     func() time.Time
	log     *logging.Logger
	panicFn PanicHandler
}

// New creates a loop over the given source. It reserves the private
// control event kinds at construction; when the kind space is exhausted
// it returns ErrKindSpace and no loop, so a partially usable loop never
// exists.
func New(src Source, opts ...Option) (*Loop, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	stop, ok := RegisterKinds(3)
	if !ok {
		return nil, ErrKindSpace
	}
	l := &Loop{
		src:        src,
		handlers:   NewMap(),
		stopKind:   stop,
		addKind:    stop + 1,
		removeKind: stop + 2,
		now:        time.Now,
		log:        logging.NullLogger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Handlers returns the loop's handler table.
func (l *Loop) Handlers() *Map {
	return l.handlers
}

// AddHandler appends a handler for the given kind. See Map.AddHandler.
func (l *Loop) AddHandler(kind Kind, fn HandlerFunc) {
	l.handlers.AddHandler(kind, fn)
}

// AddKeyDownHandler registers a rate-limited press handler for the key.
func (l *Loop) AddKeyDownHandler(code Keycode, fn func()) {
	l.handlers.AddKeyDownHandler(code, fn)
}

// AddKeyUpHandler registers a release handler for the key.
func (l *Loop) AddKeyUpHandler(code Keycode, fn func()) {
	l.handlers.AddKeyUpHandler(code, fn)
}

// AddTimer schedules fn to run after interval on the loop goroutine,
// repeatedly unless oneShot is set. It may be called from any goroutine,
// including from handlers inside the loop. Timer scheduling is
// best-effort: the returned ID is 0 when the timer could not be posted,
// and timers only fire while Run is active.
func (l *Loop) AddTimer(interval time.Duration, oneShot bool, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	id := l.nextID()
	t := &timer{
		id:       id,
		when:     l.now().Add(interval),
		interval: interval,
		oneShot:  oneShot,
		fn:       func() { l.guard("timer", fn) },
	}
	if err := l.src.Post(NewUser(l.addKind, 0, t)); err != nil {
		return 0
	}
	return id
}

// StopTimer requests cancellation of the timer with the given ID and
// reports whether the request was issued. Cancellation is asynchronous:
// at most one already-scheduled firing may still occur after this call
// returns. When called from a handler running on the loop goroutine, no
// further firings occur, because pending events are drained before any
// timer fires.
func (l *Loop) StopTimer(id TimerID) bool {
	return l.src.Post(NewUser(l.removeKind, int32(id), nil)) == nil
}

// Stop requests loop termination. Safe from any goroutine and from
// handlers inside the loop; the loop finishes the current iteration,
// renders, and returns from Run.
func (l *Loop) Stop() {
	_ = l.src.Post(NewUser(l.stopKind, 0, nil))
}

// Run executes the loop until a quit event or a Stop request arrives.
// render is invoked exactly once per iteration, including the
// terminating one; a nil render is treated as a no-op.
func (l *Loop) Run(render func()) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	if render == nil {
		render = func() {}
	}

	for stop := false; !stop; {
		timeout := time.Duration(-1)
		if deadline, ok := l.timers.nextDeadline(); ok {
			timeout = deadline.Sub(l.now())
			if timeout < 0 {
				timeout = 0
			}
		}

		ev, ok := l.src.WaitEvent(timeout)
		switch {
		case !ok:
			l.timers.fireDue(l.now())
		case ev.Kind == KindQuit || ev.Kind == l.stopKind:
			stop = true
		case ev.Kind == l.addKind:
			if t, ok := ev.User.Data.(*timer); ok {
				l.timers.add(t)
			}
		case ev.Kind == l.removeKind:
			l.timers.remove(TimerID(ev.User.Code))
		default:
			// The consumption result is meaningful only to the
			// handler scan itself.
			l.guard("handler", func() { l.handlers.HandleEvent(ev) })
		}

		render()
	}

	return nil
}

// nextID returns the next timer identity, skipping 0 on wraparound.
func (l *Loop) nextID() TimerID {
	id := l.nextTimerID.Add(1)
	if id == 0 {
		id = l.nextTimerID.Add(1)
	}
	return TimerID(id)
}

// guard runs a user callback with panic recovery. A panic is reported to
// the configured PanicHandler, or logged when none is set; either way
// the loop keeps running unless the handler re-panics.
func (l *Loop) guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			if l.panicFn != nil {
				l.panicFn(r, stack)
				return
			}
			l.log.WithComponent("eventloop").Error("%s callback panic: %v\n%s", what, r, stack)
		}
	}()
	fn()
}
