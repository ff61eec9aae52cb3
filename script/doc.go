// Package script exposes event loop registration to sandboxed Lua.
//
// A script runs once at load time and registers its callbacks through
// the evmap table:
//
//	evmap.on_key_down("Ctrl+q", function() evmap.stop() end)
//	evmap.on_key_up("space", function() resume() end)
//	evmap.on_event(kind, function(ev) return true end)
//	local id = evmap.add_timer(250, false, function() tick() end)
//	evmap.stop_timer(id)
//
// The Lua state is not goroutine-safe. Load scripts and run the loop
// on the same goroutine; callbacks fire from loop dispatch, which is
// single-threaded.
package script
