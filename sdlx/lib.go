package sdlx

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

// Lib is an initialization token for the SDL library. Closing it shuts
// SDL down; every other handle in this package must be released first.
type Lib struct {
	fini sync.Once
}

// Init initializes SDL's video and audio subsystems.
func Init() (*Lib, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initialize SDL: %w", err)
	}
	return &Lib{}, nil
}

// Close shuts the SDL library down. Idempotent.
func (l *Lib) Close() {
	l.fini.Do(sdl.Quit)
}
