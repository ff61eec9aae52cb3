// Package main is an interactive demo of the evmap event loop on a
// terminal backend: key dispatch, declarative bindings, timers, and
// optional Lua scripting.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmap/event"
	"github.com/dshills/evmap/keymap"
	"github.com/dshills/evmap/logging"
	"github.com/dshills/evmap/script"
	"github.com/dshills/evmap/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Options holds the parsed command line.
type Options struct {
	KeymapPath string
	ScriptPath string
	LogPath    string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// The terminal owns stderr while the screen is up, so logs go to a
	// file or nowhere.
	log := logging.NullLogger
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = logging.New(logging.Config{
			Level:  logging.ParseLevel(opts.LogLevel),
			Output: f,
			Prefix: "evdemo",
		})
	}

	scr, err := term.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	defer scr.Close()

	src, err := term.NewSource(scr.Tcell())
	if err != nil {
		scr.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to create event source: %v\n", err)
		return 1
	}
	defer src.Close()

	loop, err := event.New(src, event.WithLogger(log))
	if err != nil {
		scr.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to create event loop: %v\n", err)
		return 1
	}

	d := &demo{scr: scr, log: log}
	if err := d.wire(loop, opts); err != nil {
		scr.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.ScriptPath != "" {
		st, err := script.New(loop, script.WithLogger(log))
		if err != nil {
			scr.Close()
			fmt.Fprintf(os.Stderr, "Error: failed to create script state: %v\n", err)
			return 1
		}
		defer st.Close()
		if err := st.DoFile(opts.ScriptPath); err != nil {
			scr.Close()
			fmt.Fprintf(os.Stderr, "Error: script failed: %v\n", err)
			return 1
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		loop.Stop()
	}()

	log.Info("starting event loop")
	if err := loop.Run(d.render); err != nil {
		scr.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// demo is the application state. Everything here is touched only from
// the loop goroutine.
type demo struct {
	scr     *term.Screen
	log     *logging.Logger
	lastKey string
	ticks   int
	paused  bool
	tickID  event.TimerID
	curX    int
	curY    int
}

// wire registers bindings, handlers and the clock timer.
func (d *demo) wire(loop *event.Loop, opts Options) error {
	km := keymap.Default()
	km.Add(keymap.Binding{Key: keymap.Key{Code: 'q'}, Action: "quit"})
	km.Add(keymap.Binding{Key: keymap.Key{Code: event.KeySpace}, Action: "pause"})
	if opts.KeymapPath != "" {
		data, err := os.ReadFile(opts.KeymapPath)
		if err != nil {
			return fmt.Errorf("read keymap: %w", err)
		}
		user, err := keymap.Load(data)
		if err != nil {
			return fmt.Errorf("load keymap: %w", err)
		}
		// User bindings layer over the defaults, so quit and pause
		// keep working unless the file rebinds them.
		km = km.Merge(user)
	}

	actions := map[string]func(){
		"quit":  loop.Stop,
		"pause": func() { d.togglePause(loop) },
	}
	if err := km.Apply(loop, actions); err != nil {
		return fmt.Errorf("apply keymap: %w", err)
	}

	// Record every key press without consuming it.
	loop.AddHandler(event.KindKeyDown, func(ev event.Event) bool {
		d.lastKey = keymap.Key{Code: ev.Key.Code, Mod: ev.Key.Mod}.String()
		return false
	})

	// Arrow keys move the marker.
	loop.AddKeyDownHandler(event.KeyUp, func() { d.move(0, -1) })
	loop.AddKeyDownHandler(event.KeyDown, func() { d.move(0, 1) })
	loop.AddKeyDownHandler(event.KeyLeft, func() { d.move(-1, 0) })
	loop.AddKeyDownHandler(event.KeyRight, func() { d.move(1, 0) })

	resizeKind, _, err := term.EventKinds()
	if err != nil {
		return fmt.Errorf("register terminal kinds: %w", err)
	}
	loop.AddHandler(resizeKind, func(ev event.Event) bool {
		if sz, ok := ev.User.Data.(term.Resize); ok {
			d.log.Debug("resize to %dx%d", sz.Width, sz.Height)
		}
		return true
	})

	d.tickID = loop.AddTimer(time.Second, false, func() { d.ticks++ })
	return nil
}

// togglePause stops or restarts the clock timer.
func (d *demo) togglePause(loop *event.Loop) {
	if d.paused {
		d.tickID = loop.AddTimer(time.Second, false, func() { d.ticks++ })
	} else {
		loop.StopTimer(d.tickID)
	}
	d.paused = !d.paused
}

func (d *demo) render() {
	title := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	plain := tcell.StyleDefault

	d.scr.Clear()
	d.scr.HideCursor()
	d.scr.DrawText(1, 1, "evmap demo", title)
	d.scr.DrawText(1, 3, "Press keys to see them dispatched; arrows move the marker.", dim)
	d.scr.DrawText(1, 4, "Space pauses the clock, q or Escape quits.", dim)

	d.scr.DrawText(1, 6, fmt.Sprintf("last key: %s", d.lastKey), plain)
	state := "running"
	if d.paused {
		state = "paused"
	}
	d.scr.DrawText(1, 7, fmt.Sprintf("clock: %ds (%s)", d.ticks, state), plain)

	w, h := d.scr.Size()
	d.scr.SetCell(d.curX, 9+d.curY, '@', title)
	d.scr.DrawText(1, h-2, fmt.Sprintf("%dx%d", w, h), dim)
	d.scr.Show()
}

// move shifts the marker, clamped to the screen.
func (d *demo) move(dx, dy int) {
	w, h := d.scr.Size()
	d.curX = clamp(d.curX+dx, 0, w-1)
	d.curY = clamp(d.curY+dy, 0, h-11)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseFlags() Options {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.KeymapPath, "keymap", "", "Path to a JSON key binding file")
	flag.StringVar(&opts.KeymapPath, "k", "", "Path to a JSON key binding file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Path to a Lua script")
	flag.StringVar(&opts.ScriptPath, "s", "", "Path to a Lua script (shorthand)")
	flag.StringVar(&opts.LogPath, "log", "", "Path to a log file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "evdemo - evmap event loop demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: evdemo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  evdemo                      Run with default bindings\n")
		fmt.Fprintf(os.Stderr, "  evdemo -k bindings.json     Load key bindings\n")
		fmt.Fprintf(os.Stderr, "  evdemo -s demo.lua          Run a script\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("evdemo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
