package driver

import (
	"context"
	"sync"
	"time"
)

// Host is the frame scheduler and viewport event source.
type Host interface {
	// NextFrame blocks until the next display frame. It returns false once
	// the host will produce no more frames. Resize listeners registered via
	// OnResize are invoked from inside NextFrame, before it returns.
	NextFrame() bool
	// OnResize registers fn for viewport changes and returns a function that
	// deregisters it.
	OnResize(fn func(width, height int)) (cancel func())
}

// TickerHost is a headless host that produces frames from a ticker.
// Resize events are queued by Emit and delivered at the start of the next frame.
type TickerHost struct {
	ctx       context.Context
	ticker    *time.Ticker
	maxFrames int64
	frames    int64

	mu         sync.Mutex
	listener   func(width, height int)
	generation uint64
	pending    bool
	pendingW   int
	pendingH   int
}

// NewTickerHost creates a host ticking every interval until ctx is done or
// maxFrames frames were produced (0 = unlimited).
func NewTickerHost(ctx context.Context, interval time.Duration, maxFrames int64) *TickerHost {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerHost{
		ctx:       ctx,
		ticker:    time.NewTicker(interval),
		maxFrames: maxFrames,
	}
}

// NextFrame waits for the next tick.
func (h *TickerHost) NextFrame() bool {
	if h.maxFrames > 0 && h.frames >= h.maxFrames {
		return false
	}
	select {
	case <-h.ctx.Done():
		return false
	case <-h.ticker.C:
	}
	h.frames++

	h.mu.Lock()
	fn := h.listener
	deliver := h.pending
	w, hh := h.pendingW, h.pendingH
	h.pending = false
	h.mu.Unlock()

	if deliver && fn != nil {
		fn(w, hh)
	}
	return true
}

// OnResize registers the resize listener. Only one listener is kept;
// the returned cancel is a no-op once another listener replaced it.
func (h *TickerHost) OnResize(fn func(width, height int)) func() {
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

// Emit queues a viewport resize. Safe to call from any goroutine.
func (h *TickerHost) Emit(width, height int) {
	h.mu.Lock()
	h.pending = true
	h.pendingW = width
	h.pendingH = height
	h.mu.Unlock()
}

// Frames returns the number of frames produced.
func (h *TickerHost) Frames() int64 {
	return h.frames
}

// Close stops the ticker.
func (h *TickerHost) Close() {
	h.ticker.Stop()
}
