package keymap

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/evmap/event"
)

// Binding ties a key to a named action. OnRelease binds the key-up
// edge; the default is key-down with repeat suppression.
type Binding struct {
	Key       Key
	Action    string
	OnRelease bool
}

// Keymap is an ordered set of bindings. Order is registration order,
// which decides precedence when bindings overlap.
type Keymap struct {
	bindings []Binding
}

// Bindings returns the bindings in registration order.
func (k *Keymap) Bindings() []Binding {
	return k.bindings
}

// Add appends a binding.
func (k *Keymap) Add(b Binding) {
	k.bindings = append(k.bindings, b)
}

// Load parses a JSON binding document.
func Load(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrBadDocument)
	}

	doc := gjson.ParseBytes(data)
	list := doc.Get("bindings")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: missing bindings array", ErrBadDocument)
	}

	km := &Keymap{}
	var loadErr error
	list.ForEach(func(_, b gjson.Result) bool {
		spec := b.Get("key").String()
		action := b.Get("action").String()
		if action == "" {
			loadErr = fmt.Errorf("%w: binding for %q has no action", ErrBadDocument, spec)
			return false
		}
		key, err := ParseKey(spec)
		if err != nil {
			loadErr = fmt.Errorf("binding for action %q: %w", action, err)
			return false
		}
		km.Add(Binding{
			Key:       key,
			Action:    action,
			OnRelease: b.Get("release").Bool(),
		})
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return km, nil
}

// Save renders the keymap as a JSON binding document that Load
// round-trips.
func (k *Keymap) Save() ([]byte, error) {
	data := []byte(`{"bindings":[]}`)
	var err error
	for i, b := range k.bindings {
		base := fmt.Sprintf("bindings.%d.", i)
		if data, err = sjson.SetBytes(data, base+"key", b.Key.String()); err != nil {
			return nil, fmt.Errorf("save binding %d: %w", i, err)
		}
		if data, err = sjson.SetBytes(data, base+"action", b.Action); err != nil {
			return nil, fmt.Errorf("save binding %d: %w", i, err)
		}
		if b.OnRelease {
			if data, err = sjson.SetBytes(data, base+"release", true); err != nil {
				return nil, fmt.Errorf("save binding %d: %w", i, err)
			}
		}
	}
	return data, nil
}

// Merge returns a new keymap with other's bindings layered over k's.
// A binding in other replaces k's binding on the same key and edge;
// the rest keep their order, with other's additions last.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	type edge struct {
		key     Key
		release bool
	}
	overridden := make(map[edge]bool, len(other.bindings))
	for _, b := range other.bindings {
		overridden[edge{b.Key, b.OnRelease}] = true
	}

	merged := &Keymap{bindings: make([]Binding, 0, len(k.bindings)+len(other.bindings))}
	for _, b := range k.bindings {
		if !overridden[edge{b.Key, b.OnRelease}] {
			merged.Add(b)
		}
	}
	merged.bindings = append(merged.bindings, other.bindings...)
	return merged
}

// Default returns the stock keymap: quit on Ctrl+q or Escape.
func Default() *Keymap {
	return &Keymap{bindings: []Binding{
		{Key: Key{Code: 'q', Mod: event.ModCtrl}, Action: "quit"},
		{Key: Key{Code: event.KeyEscape}, Action: "quit"},
	}}
}

// Registrar is the handler registration surface of event.Map and
// event.Loop.
type Registrar interface {
	AddHandler(kind event.Kind, fn event.HandlerFunc)
	AddKeyDownHandler(code event.Keycode, fn func())
	AddKeyUpHandler(code event.Keycode, fn func())
}

// Register wires the binding's key to fn on reg. Unmodified bindings
// use the convenience registrations; bindings with modifiers register
// a kind handler that requires the modifier set to match exactly and
// declines otherwise, so overlapping bindings on the same key code
// still see the event. Matching events are consumed even when repeat
// suppression skips the callback.
func (b Binding) Register(reg Registrar, fn func()) {
	code, mod := b.Key.Code, b.Key.Mod

	switch {
	case b.OnRelease && mod == event.ModNone:
		reg.AddKeyUpHandler(code, fn)

	case b.OnRelease:
		reg.AddHandler(event.KindKeyUp, func(ev event.Event) bool {
			if ev.Key.Code != code || ev.Key.Mod != mod {
				return false
			}
			fn()
			return true
		})

	case mod == event.ModNone:
		reg.AddKeyDownHandler(code, fn)

	default:
		limiter := &event.RateLimiter{}
		reg.AddHandler(event.KindKeyDown, func(ev event.Event) bool {
			if ev.Key.Code != code || ev.Key.Mod != mod {
				return false
			}
			if !limiter.Limited(ev) {
				fn()
			}
			return true
		})
	}
}

// Apply registers every binding on reg, looking actions up by name.
func (k *Keymap) Apply(reg Registrar, actions map[string]func()) error {
	for _, b := range k.bindings {
		fn, ok := actions[b.Action]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, b.Action)
		}
		b.Register(reg, fn)
	}
	return nil
}
