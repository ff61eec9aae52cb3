// Package event provides kind-keyed event dispatch with software timers.
//
// The package centers on two types. Map is an ordered table of
// (kind, handler) pairs: events are offered to handlers in registration
// order, and the first handler that both matches the event's kind and
// reports the event consumed stops the scan. Loop drives a Map from a
// Source, multiplexing native events with software timers on a single
// goroutine and invoking a caller-supplied render callback once per
// iteration.
//
// A Source is the narrow interface to the native event layer: a blocking
// wait bounded by a timeout, and a thread-safe post used to marshal
// cross-goroutine requests (stop, add timer, remove timer) into the loop
// as synthetic events. Queue is an in-process Source suitable for tests
// and headless applications; the term and sdlx packages adapt terminal
// and SDL event queues to the same interface.
//
// Handler and timer callbacks run synchronously on the loop goroutine and
// are expected to be short; a long-running callback stalls both dispatch
// and rendering for its duration.
package event
