// Package sdlx wraps the go-sdl2 surface needed to run an event loop
// against a real SDL window: library and TTF init tokens, window and
// renderer lifecycle, bitmap and text rendering, and a Source adapter
// that bridges SDL's native event queue to the event package.
//
// Handles own their native resources; Close releases them and is safe
// to call more than once. Everything here must run on the thread that
// initialized SDL, which in practice means locking the main goroutine
// to its OS thread before calling Init.
package sdlx
