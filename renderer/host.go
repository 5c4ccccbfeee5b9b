package renderer

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Host paces frames with the raylib window. Frame timing comes from
// rl.SetTargetFPS and EndDrawing; NextFrame only polls close and resize.
type Host struct {
	mu         sync.Mutex
	listener   func(width, height int)
	generation uint64
}

// NewHost creates a host for the open raylib window.
func NewHost() *Host {
	return &Host{}
}

// NextFrame reports whether the window is still open and delivers a pending
// resize to the listener before returning.
func (h *Host) NextFrame() bool {
	if rl.WindowShouldClose() {
		return false
	}

	if rl.IsWindowResized() {
		h.mu.Lock()
		fn := h.listener
		h.mu.Unlock()
		if fn != nil {
			fn(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
	}
	return true
}

// OnResize registers the resize listener. Only one listener is kept;
// the returned cancel is a no-op once another listener replaced it.
func (h *Host) OnResize(fn func(width, height int)) func() {
	h.mu.Lock()
	h.listener = fn
	h.generation++
	gen := h.generation
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		// A newer registration owns the slot now
		if h.generation == gen {
			h.listener = nil
		}
		h.mu.Unlock()
	}
}
