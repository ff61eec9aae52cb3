package script

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/evmap/event"
	"github.com/dshills/evmap/keymap"
	"github.com/dshills/evmap/logging"
)

// Host is the loop surface scripts register against. event.Loop
// satisfies it.
type Host interface {
	AddHandler(kind event.Kind, fn event.HandlerFunc)
	AddKeyDownHandler(code event.Keycode, fn func())
	AddKeyUpHandler(code event.Keycode, fn func())
	AddTimer(interval time.Duration, oneShot bool, fn func()) event.TimerID
	StopTimer(id event.TimerID) bool
	Stop()
}

// State owns a sandboxed Lua interpreter bound to a host loop.
//
// The interpreter is not goroutine-safe: load scripts and run the host
// loop on the same goroutine.
type State struct {
	L      *lua.LState
	host   Host
	log    *logging.Logger
	closed bool
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger for callback errors.
func WithLogger(log *logging.Logger) Option {
	return func(s *State) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a sandboxed Lua state with the evmap table installed.
func New(host Host, opts ...Option) (*State, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	s := &State{
		host: host,
		log:  logging.NullLogger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.install()
	return s, nil
}

// openSafeLibraries opens only libraries without filesystem or process
// access. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// install publishes the evmap table.
func (s *State) install() {
	mod := s.L.NewTable()
	s.L.SetField(mod, "on_key_down", s.L.NewFunction(s.luaOnKeyDown))
	s.L.SetField(mod, "on_key_up", s.L.NewFunction(s.luaOnKeyUp))
	s.L.SetField(mod, "on_event", s.L.NewFunction(s.luaOnEvent))
	s.L.SetField(mod, "add_timer", s.L.NewFunction(s.luaAddTimer))
	s.L.SetField(mod, "stop_timer", s.L.NewFunction(s.luaStopTimer))
	s.L.SetField(mod, "stop", s.L.NewFunction(s.luaStop))
	s.L.SetGlobal("evmap", mod)
}

// DoFile runs a script file. Registrations take effect immediately.
func (s *State) DoFile(path string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.L.DoFile(path)
}

// DoString runs script source.
func (s *State) DoString(src string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.L.DoString(src)
}

// Close shuts the interpreter down. Registered callbacks must not fire
// afterwards; close the state only after the host loop has stopped.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// luaOnKeyDown implements evmap.on_key_down(spec, fn).
func (s *State) luaOnKeyDown(L *lua.LState) int {
	spec := L.CheckString(1)
	fn := L.CheckFunction(2)
	key, err := keymap.ParseKey(spec)
	if err != nil {
		L.RaiseError("on_key_down: %v", err)
		return 0
	}
	keymap.Binding{Key: key}.Register(s.host, func() { s.call(fn) })
	return 0
}

// luaOnKeyUp implements evmap.on_key_up(spec, fn).
func (s *State) luaOnKeyUp(L *lua.LState) int {
	spec := L.CheckString(1)
	fn := L.CheckFunction(2)
	key, err := keymap.ParseKey(spec)
	if err != nil {
		L.RaiseError("on_key_up: %v", err)
		return 0
	}
	keymap.Binding{Key: key, OnRelease: true}.Register(s.host, func() { s.call(fn) })
	return 0
}

// luaOnEvent implements evmap.on_event(kind, fn). fn receives an event
// table and may return true to consume the event.
func (s *State) luaOnEvent(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	fn := L.CheckFunction(2)
	s.host.AddHandler(kind, func(ev event.Event) bool {
		return s.callConsume(fn, s.eventTable(ev))
	})
	return 0
}

// luaAddTimer implements evmap.add_timer(ms, one_shot, fn) -> id.
func (s *State) luaAddTimer(L *lua.LState) int {
	ms := L.CheckInt(1)
	oneShot := L.CheckBool(2)
	fn := L.CheckFunction(3)
	id := s.host.AddTimer(time.Duration(ms)*time.Millisecond, oneShot, func() { s.call(fn) })
	L.Push(lua.LNumber(id))
	return 1
}

// luaStopTimer implements evmap.stop_timer(id) -> bool.
func (s *State) luaStopTimer(L *lua.LState) int {
	id := event.TimerID(L.CheckInt(1))
	L.Push(lua.LBool(s.host.StopTimer(id)))
	return 1
}

// luaStop implements evmap.stop().
func (s *State) luaStop(L *lua.LState) int {
	s.host.Stop()
	return 0
}

// eventTable renders an event for Lua consumption.
func (s *State) eventTable(ev event.Event) *lua.LTable {
	t := s.L.NewTable()
	s.L.SetField(t, "kind", lua.LNumber(ev.Kind))

	key := s.L.NewTable()
	s.L.SetField(key, "code", lua.LNumber(ev.Key.Code))
	s.L.SetField(key, "mod", lua.LNumber(ev.Key.Mod))
	s.L.SetField(key, "repeat", lua.LBool(ev.Key.Repeat))
	s.L.SetField(t, "key", key)

	user := s.L.NewTable()
	s.L.SetField(user, "code", lua.LNumber(ev.User.Code))
	s.L.SetField(t, "user", user)
	return t
}

// call invokes a Lua callback, logging instead of propagating errors
// so one misbehaving script cannot take the loop down.
func (s *State) call(fn *lua.LFunction, args ...lua.LValue) {
	if s.closed {
		return
	}
	err := s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err != nil {
		s.log.Error("script callback failed: %v", err)
	}
}

// callConsume invokes a Lua callback expecting a boolean result.
func (s *State) callConsume(fn *lua.LFunction, args ...lua.LValue) bool {
	if s.closed {
		return false
	}
	err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	if err != nil {
		s.log.Error("script callback failed: %v", err)
		return false
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return lua.LVAsBool(ret)
}
