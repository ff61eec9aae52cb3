package event

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/evmap/logging"
)

func newTestLoop(t *testing.T, size int) (*Loop, *Queue) {
	t.Helper()
	q := NewQueue(size)
	l, err := New(q)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, q
}

func TestNew_NilSource(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilSource) {
		t.Errorf("New(nil) = %v, want ErrNilSource", err)
	}
}

func TestLoop_QuitTerminates(t *testing.T) {
	l, q := newTestLoop(t, 8)
	if err := q.Post(NewQuit()); err != nil {
		t.Fatalf("Post: %v", err)
	}

	renders := 0
	if err := l.Run(func() { renders++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The terminating iteration still renders.
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
}

func TestLoop_RenderOncePerIteration(t *testing.T) {
	l, q := newTestLoop(t, 8)

	kind, ok := RegisterKinds(1)
	if !ok {
		t.Fatal("RegisterKinds failed")
	}
	handled := 0
	l.AddHandler(kind, func(Event) bool { handled++; return true })

	for i := 0; i < 3; i++ {
		if err := q.Post(NewUser(kind, 0, nil)); err != nil {
			t.Fatalf("Post: %v", err)
		}
	}
	if err := q.Post(NewQuit()); err != nil {
		t.Fatalf("Post quit: %v", err)
	}

	renders := 0
	if err := l.Run(func() { renders++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if handled != 3 {
		t.Errorf("handled = %d, want 3", handled)
	}
	if renders != 4 {
		t.Errorf("renders = %d, want 4 (three events plus the quit)", renders)
	}
}

func TestLoop_StopFromHandler(t *testing.T) {
	l, q := newTestLoop(t, 8)
	l.AddKeyDownHandler(Keycode('q'), l.Stop)

	if err := q.Post(NewKeyDown(Keycode('q'), ModNone, false, 0)); err != nil {
		t.Fatalf("Post: %v", err)
	}

	renders := 0
	done := make(chan error, 1)
	go func() { done <- l.Run(func() { renders++ }) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not terminate after Stop from handler")
	}
	// Key iteration plus the stop iteration.
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestLoop_OneShotTimer(t *testing.T) {
	l, _ := newTestLoop(t, 8)

	fired := 0
	id := l.AddTimer(20*time.Millisecond, true, func() {
		fired++
		l.Stop()
	})
	if id == 0 {
		t.Fatal("AddTimer returned 0")
	}

	renders := 0
	if err := l.Run(func() { renders++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	// Add-timer event, the firing timeout, the stop event.
	if renders != 3 {
		t.Errorf("renders = %d, want 3", renders)
	}
}

func TestLoop_RepeatingTimer(t *testing.T) {
	l, _ := newTestLoop(t, 8)

	fired := 0
	l.AddTimer(10*time.Millisecond, false, func() {
		fired++
		if fired == 3 {
			l.Stop()
		}
	})

	if err := l.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The stop request posted at the third firing is drained before a
	// fourth deadline can fire.
	if fired != 3 {
		t.Errorf("fired = %d, want 3", fired)
	}
}

func TestLoop_TimerIDsStartAtOne(t *testing.T) {
	l, _ := newTestLoop(t, 8)
	if id := l.AddTimer(time.Second, true, func() {}); id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}
	if id := l.AddTimer(time.Second, true, func() {}); id != 2 {
		t.Errorf("second id = %d, want 2", id)
	}
}

func TestLoop_AddTimerNilFunc(t *testing.T) {
	l, _ := newTestLoop(t, 8)
	if id := l.AddTimer(time.Second, true, nil); id != 0 {
		t.Errorf("AddTimer(nil) = %d, want 0", id)
	}
}

func TestLoop_AddTimerPostFailure(t *testing.T) {
	l, q := newTestLoop(t, 1)
	if err := q.Post(NewQuit()); err != nil {
		t.Fatalf("Post: %v", err)
	}
	// The queue is full, so the add-timer event cannot be posted.
	if id := l.AddTimer(time.Second, true, func() {}); id != 0 {
		t.Errorf("AddTimer on full queue = %d, want 0", id)
	}
}

func TestLoop_StopTimerFromHandler(t *testing.T) {
	l, q := newTestLoop(t, 16)

	kind, ok := RegisterKinds(1)
	if !ok {
		t.Fatal("RegisterKinds failed")
	}

	var fired atomic.Int32
	id := l.AddTimer(10*time.Millisecond, false, func() {
		fired.Add(1)
	})

	var atCancel int32
	l.AddHandler(kind, func(Event) bool {
		atCancel = fired.Load()
		if !l.StopTimer(id) {
			t.Error("StopTimer failed")
		}
		return true
	})

	done := make(chan error, 1)
	go func() { done <- l.Run(nil) }()

	// Let the timer run a little, cancel from inside the loop, then
	// give a cancelled timer every chance to fire again.
	time.Sleep(35 * time.Millisecond)
	if err := q.Post(NewUser(kind, 0, nil)); err != nil {
		t.Fatalf("Post: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	l.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Cancellation from a handler on the loop goroutine is effective
	// immediately: no firing after the handler observed the count.
	if got := fired.Load(); got != atCancel {
		t.Errorf("timer fired %d more times after in-loop cancel", got-atCancel)
	}
}

func TestLoop_StopTimerCrossGoroutine(t *testing.T) {
	l, _ := newTestLoop(t, 16)

	var fired atomic.Int32
	id := l.AddTimer(10*time.Millisecond, false, func() {
		fired.Add(1)
	})

	done := make(chan error, 1)
	go func() { done <- l.Run(nil) }()

	time.Sleep(35 * time.Millisecond)
	if !l.StopTimer(id) {
		t.Fatal("StopTimer failed")
	}
	atCancel := fired.Load()

	time.Sleep(50 * time.Millisecond)
	l.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Asynchronous cancellation allows at most one in-flight firing.
	if got := fired.Load(); got > atCancel+1 {
		t.Errorf("timer fired %d times after cancel, want at most 1", got-atCancel)
	}
}

func TestLoop_AlreadyRunning(t *testing.T) {
	l, _ := newTestLoop(t, 8)

	done := make(chan error, 1)
	go func() { done <- l.Run(nil) }()
	time.Sleep(20 * time.Millisecond)

	if err := l.Run(nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}

	l.Stop()
	if err := <-done; err != nil {
		t.Fatalf("first Run: %v", err)
	}
}

func TestLoop_HandlerPanicKeepsRunning(t *testing.T) {
	q := NewQueue(8)

	var panicValue any
	l, err := New(q, WithPanicHandler(func(v any, stack []byte) {
		panicValue = v
		if len(stack) == 0 {
			t.Error("empty stack in panic handler")
		}
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	kind, ok := RegisterKinds(1)
	if !ok {
		t.Fatal("RegisterKinds failed")
	}
	l.AddHandler(kind, func(Event) bool { panic("boom") })

	if err := q.Post(NewUser(kind, 0, nil)); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if err := q.Post(NewQuit()); err != nil {
		t.Fatalf("Post quit: %v", err)
	}

	renders := 0
	if err := l.Run(func() { renders++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if panicValue != "boom" {
		t.Errorf("panic value = %v, want boom", panicValue)
	}
	// The panicking iteration still rendered and the loop survived to
	// process the quit.
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestLoop_HandlerPanicLoggedByDefault(t *testing.T) {
	q := NewQueue(8)

	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelError, Output: &buf})
	l, err := New(q, WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	kind, ok := RegisterKinds(1)
	if !ok {
		t.Fatal("RegisterKinds failed")
	}
	l.AddHandler(kind, func(Event) bool { panic("boom") })

	_ = q.Post(NewUser(kind, 0, nil))
	_ = q.Post(NewQuit())

	if err := l.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "panic") || !strings.Contains(out, "boom") {
		t.Errorf("panic not logged: %q", out)
	}
}

func TestLoop_TimerPanicKeepsRunning(t *testing.T) {
	q := NewQueue(8)

	var panics int
	l, err := New(q, WithPanicHandler(func(any, []byte) { panics++ }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.AddTimer(10*time.Millisecond, true, func() { panic("tick") })
	l.AddTimer(30*time.Millisecond, true, l.Stop)

	if err := l.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if panics != 1 {
		t.Errorf("panics = %d, want 1", panics)
	}
}

func TestLoop_CrossGoroutineStop(t *testing.T) {
	l, _ := newTestLoop(t, 8)

	done := make(chan error, 1)
	go func() { done <- l.Run(nil) }()

	time.Sleep(20 * time.Millisecond)
	l.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not terminate after cross-goroutine Stop")
	}
}
