package event

import "time"

// DefaultQueueSize is the buffer capacity used by NewQueue when the
// caller passes a non-positive size.
const DefaultQueueSize = 128

// Queue is an in-process Source backed by a buffered channel. It is
// useful for tests and for headless applications that produce their own
// events. Post never blocks: when the buffer is full it returns
// ErrQueueFull and drops the event.
type Queue struct {
	ch chan Event
}

// NewQueue creates a queue with the given buffer capacity.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Post enqueues ev. Safe to call from any goroutine.
func (q *Queue) Post(ev Event) error {
	select {
	case q.ch <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// WaitEvent returns the next pending event, waiting up to timeout for
// one to arrive. A negative timeout waits forever. Pending events are
// always delivered before a timeout is reported, even with timeout zero.
func (q *Queue) WaitEvent(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
	}

	if timeout < 0 {
		return <-q.ch, true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case ev := <-q.ch:
		return ev, true
	case <-t.C:
		return Event{}, false
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.ch)
}
