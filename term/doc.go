// Package term adapts a tcell terminal to the evmap event loop.
//
// Source implements event.Source over a tcell screen: native terminal
// events are pumped through tcell's own queue, and Post injects
// synthetic events into that same queue via tcell's thread-safe
// PostEvent, preserving the single-consumer ordering the loop relies on.
//
// Screen owns the terminal lifecycle (init on New, restore on Close) and
// carries the small drawing helpers the demo needs. Terminals report key
// presses only: no key-up events and no auto-repeat flag, so key-up
// handlers never fire and the rate limiter passes everything through.
package term
