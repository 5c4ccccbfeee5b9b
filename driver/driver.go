// Package driver owns the animation clock and the per-frame update loop:
// recompute every star's attribute, upload the shared buffer once, render once.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/flicker"
	"github.com/pthm-cable/starfield/render"
	"github.com/pthm-cable/starfield/sprites"
	"github.com/pthm-cable/starfield/starfield"
	"github.com/pthm-cable/starfield/telemetry"
)

var (
	// ErrInitialization is returned when the render target or camera is
	// missing or cannot serve the selected mode.
	ErrInitialization = errors.New("driver: initialization failed")
	// ErrRunning is returned by Run on a driver whose loop is already active.
	ErrRunning = errors.New("driver: already running")
)

// Mode selects how attributes reach the target.
type Mode uint8

const (
	ModeBatched Mode = iota // One shared attribute buffer, uploaded once per frame
	ModeSprites             // One ECS entity per star, drawn individually
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBatched:
		return "batched"
	case ModeSprites:
		return "sprites"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "batched", "":
		return ModeBatched, nil
	case "sprites":
		return ModeSprites, nil
	}
	return 0, fmt.Errorf("%w: unknown render mode %q", ErrInitialization, s)
}

// Options configures a Driver.
type Options struct {
	Mode      Mode
	Model     flicker.Model
	Increment float64 // Clock advance per frame

	// Optional telemetry
	Perf     *telemetry.PerfCollector
	Stats    *telemetry.Collector
	Output   *telemetry.OutputManager
	LogStats bool
}

// Driver animates one star field. It exclusively owns the profiles and the
// attribute buffer; the camera and target are only updated, never replaced.
type Driver struct {
	cam    *camera.Perspective
	target render.Target
	points render.PointTarget // nil in sprite mode
	scene  *sprites.Scene     // nil in batched mode

	model     flicker.Model
	profiles  []flicker.Profile
	attrs     []float32
	increment float64

	// clock = base + float64(ticks)*increment, so it never accumulates rounding
	base  float64
	ticks int64
	frame int64

	width, height int

	perf     *telemetry.PerfCollector
	stats    *telemetry.Collector
	output   *telemetry.OutputManager
	logStats bool

	running      atomic.Bool
	mu           sync.Mutex
	cancelResize func()
}

// New creates a driver and hands the static data to the target: the
// position buffer in batched mode, the sprite scene in sprite mode.
func New(stars []starfield.Star, cam *camera.Perspective, target render.Target, opts Options) (*Driver, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: no render target", ErrInitialization)
	}
	if cam == nil {
		return nil, fmt.Errorf("%w: no camera", ErrInitialization)
	}
	if len(stars) == 0 {
		return nil, fmt.Errorf("%w: empty field", starfield.ErrInvalidArgument)
	}
	if err := opts.Model.Validate(); err != nil {
		return nil, err
	}
	if opts.Increment <= 0 {
		return nil, fmt.Errorf("%w: clock increment %g", starfield.ErrInvalidArgument, opts.Increment)
	}

	d := &Driver{
		cam:       cam,
		target:    target,
		model:     opts.Model,
		profiles:  starfield.Profiles(stars),
		attrs:     make([]float32, len(stars)),
		increment: opts.Increment,
		perf:      opts.Perf,
		stats:     opts.Stats,
		output:    opts.Output,
		logStats:  opts.LogStats,
	}

	switch opts.Mode {
	case ModeBatched:
		pt, ok := target.(render.PointTarget)
		if !ok {
			return nil, fmt.Errorf("%w: target %T cannot draw a point cloud", ErrInitialization, target)
		}
		d.points = pt
	case ModeSprites:
		st, ok := target.(render.SpriteTarget)
		if !ok {
			return nil, fmt.Errorf("%w: target %T cannot draw sprites", ErrInitialization, target)
		}
		d.scene = sprites.NewScene(stars, opts.Model)
		st.SetSprites(d.scene)
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInitialization, opts.Mode)
	}

	// Static data goes up only after every check passed
	if d.points != nil {
		d.points.SetPositions(starfield.Positions(stars))
	}
	d.Evaluate(0, d.attrs)

	return d, nil
}

// Clock returns the current clock value.
func (d *Driver) Clock() float64 {
	return d.base + float64(d.ticks)*d.increment
}

// Seek restarts the clock at t. No history is replayed; the next frame is
// computed from t directly.
func (d *Driver) Seek(t float64) {
	d.base = t
	d.ticks = 0
}

// Frame returns the number of frames stepped.
func (d *Driver) Frame() int64 {
	return d.frame
}

// Len returns the number of stars.
func (d *Driver) Len() int {
	return len(d.profiles)
}

// Attributes returns the shared attribute buffer. Callers must not modify it.
func (d *Driver) Attributes() []float32 {
	return d.attrs
}

// Evaluate writes every star's attribute at clock into dst.
// It depends only on clock and the profiles.
func (d *Driver) Evaluate(clock float64, dst []float32) {
	d.model.Fill(dst, clock, d.profiles)
}

// Step advances the clock and produces exactly one frame.
func (d *Driver) Step() {
	if d.perf != nil {
		d.perf.StartTick()
		d.perf.StartPhase(telemetry.PhaseFlicker)
	}

	d.ticks++
	clock := d.Clock()

	if d.scene != nil {
		d.scene.Update(clock)
	} else {
		d.Evaluate(clock, d.attrs)
	}

	if d.perf != nil {
		d.perf.StartPhase(telemetry.PhaseUpload)
	}
	if d.points != nil {
		d.points.SetAttributes(d.attrs)
	}

	if d.perf != nil {
		d.perf.StartPhase(telemetry.PhaseRender)
	}
	d.target.Render(d.cam)
	d.frame++
	if d.perf != nil {
		d.perf.RecordFrame()
	}

	if d.perf != nil {
		d.perf.StartPhase(telemetry.PhaseTelemetry)
	}
	d.flushTelemetry(clock)
	if d.perf != nil {
		d.perf.EndTick()
	}
}

// Resize reframes the camera and resizes the target. Non-positive sizes and
// repeats of the current size are ignored.
func (d *Driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height

	d.cam.Resize(float32(width), float32(height))
	d.target.Resize(width, height)
	if d.stats != nil {
		d.stats.RecordResize()
	}

	slog.Debug("resize", "width", width, "height", height, "aspect", d.cam.Aspect)
}

// Run steps one frame per host frame until the host stops, Stop is called
// or ctx is done. It registers the resize listener for its lifetime.
func (d *Driver) Run(ctx context.Context, host Host) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}

	cancel := host.OnResize(d.Resize)
	d.mu.Lock()
	d.cancelResize = cancel
	d.mu.Unlock()
	defer d.Stop()

	for d.running.Load() {
		if ctx.Err() != nil {
			return nil
		}
		if !host.NextFrame() {
			return nil
		}
		// Stop may have landed while waiting for the frame
		if !d.running.Load() {
			return nil
		}
		d.Step()
	}
	return nil
}

// Stop ends the loop after the current frame and deregisters the resize
// listener. Safe to call more than once and from other goroutines.
func (d *Driver) Stop() {
	d.running.Store(false)

	d.mu.Lock()
	cancel := d.cancelResize
	d.cancelResize = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Running reports whether the loop is active.
func (d *Driver) Running() bool {
	return d.running.Load()
}

// flushTelemetry closes stats/perf windows when due.
func (d *Driver) flushTelemetry(clock float64) {
	if d.stats == nil || !d.stats.ShouldFlush(d.frame) {
		return
	}

	if d.scene != nil {
		// Sprite values live in the scene; gather them for the summary
		i := 0
		d.scene.Each(func(_ [3]float32, v float32) {
			d.attrs[i] = v
			i++
		})
	}

	ws := d.stats.Flush(d.frame, clock, d.attrs)
	if d.logStats {
		ws.LogStats()
	}
	if err := d.output.WriteFrames(ws); err != nil {
		slog.Warn("telemetry write failed", "file", "frames.csv", "error", err)
	}

	if d.perf != nil {
		ps := d.perf.Stats()
		if d.logStats {
			ps.LogStats()
		}
		if err := d.output.WritePerf(ps, d.frame); err != nil {
			slog.Warn("telemetry write failed", "file", "perf.csv", "error", err)
		}
	}
}
