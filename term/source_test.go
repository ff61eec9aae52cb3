package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmap/event"
)

func newTestSource(t *testing.T) (*Source, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewFrom(sim)
	if err != nil {
		t.Fatalf("NewFrom() error = %v", err)
	}
	t.Cleanup(scr.Close)
	src, err := NewSource(scr.Tcell())
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	t.Cleanup(src.Close)
	return src, sim
}

// waitFor pulls events until one of the given kind arrives. The
// simulation screen emits a resize on init, so tests skip past
// whatever they did not ask for.
func waitFor(t *testing.T, src *Source, kind event.Kind) event.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok := src.WaitEvent(100 * time.Millisecond)
		if ok && ev.Kind == kind {
			return ev
		}
	}
	t.Fatalf("no event of kind %d arrived", kind)
	return event.Event{}
}

func TestSourceKeyEvent(t *testing.T) {
	src, sim := newTestSource(t)

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	ev := waitFor(t, src, event.KindKeyDown)
	if ev.Key.Code != event.Keycode('a') {
		t.Errorf("Key.Code = %d, want %d", ev.Key.Code, 'a')
	}
	if ev.Key.Mod != event.ModNone {
		t.Errorf("Key.Mod = %b, want none", ev.Key.Mod)
	}
	if ev.Key.Timestamp == 0 {
		t.Error("Key.Timestamp not populated")
	}
}

func TestSourceResizeEvent(t *testing.T) {
	src, sim := newTestSource(t)
	resizeKind, _, err := EventKinds()
	if err != nil {
		t.Fatalf("EventKinds() error = %v", err)
	}

	sim.SetSize(120, 40)
	// PostEvent-backed screens need an explicit resize notification.
	if err := sim.PostEvent(tcell.NewEventResize(120, 40)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	ev := waitFor(t, src, resizeKind)
	sz, ok := ev.User.Data.(Resize)
	if !ok {
		t.Fatalf("User.Data = %T, want Resize", ev.User.Data)
	}
	if sz.Width != 120 || sz.Height != 40 {
		t.Errorf("resize = %dx%d, want 120x40", sz.Width, sz.Height)
	}
}

func TestSourcePostRoundTrip(t *testing.T) {
	src, _ := newTestSource(t)

	kind, ok := event.RegisterKinds(1)
	if !ok {
		t.Fatal("RegisterKinds() exhausted")
	}
	if err := src.Post(event.NewUser(kind, 7, "payload")); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	ev := waitFor(t, src, kind)
	if ev.User.Code != 7 {
		t.Errorf("User.Code = %d, want 7", ev.User.Code)
	}
	if ev.User.Data != "payload" {
		t.Errorf("User.Data = %v, want payload", ev.User.Data)
	}
}

func TestSourceTimeout(t *testing.T) {
	src, _ := newTestSource(t)

	// Drain the init-time resize so only the timeout path remains.
	for {
		if _, ok := src.WaitEvent(50 * time.Millisecond); !ok {
			break
		}
	}

	start := time.Now()
	if _, ok := src.WaitEvent(30 * time.Millisecond); ok {
		t.Fatal("WaitEvent() delivered an event on an idle screen")
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("WaitEvent() returned after %v, want >= 30ms", elapsed)
	}
}

func TestSourceCloseDeliversQuit(t *testing.T) {
	src, _ := newTestSource(t)

	src.Close()

	ev := waitFor(t, src, event.KindQuit)
	if ev.Kind != event.KindQuit {
		t.Errorf("Kind = %d, want quit", ev.Kind)
	}
}

func TestScreenDrawText(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewFrom(sim)
	if err != nil {
		t.Fatalf("NewFrom() error = %v", err)
	}
	defer scr.Close()

	style := tcell.StyleDefault
	if w := scr.DrawText(0, 0, "hi", style); w != 2 {
		t.Errorf("DrawText(hi) width = %d, want 2", w)
	}
	if w := scr.DrawText(0, 1, "日本", style); w != 4 {
		t.Errorf("DrawText(wide) width = %d, want 4", w)
	}

	r, _, _, _ := sim.GetContent(0, 0)
	if r != 'h' {
		t.Errorf("cell (0,0) = %q, want h", r)
	}
}
