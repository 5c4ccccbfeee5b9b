// Package renderer draws the star field into a raylib window.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/flicker"
	"github.com/pthm-cable/starfield/sprites"
)

// Window renders stars as soft radial points projected through the
// perspective camera. It implements render.PointTarget and
// render.SpriteTarget. Must be created after rl.InitWindow.
type Window struct {
	positions []float32
	attrs     []float32
	scene     *sprites.Scene

	model            flicker.Model
	sizeMin, sizeMax float32
	background       rl.Color
	color            rl.Color

	width, height int
	hud           *HUD
}

// NewWindow creates a window target styled from the render and flicker config.
func NewWindow(cfg *config.Config, model flicker.Model) *Window {
	bg := cfg.Render.Background
	c := cfg.Render.Color
	return &Window{
		model:      model,
		sizeMin:    float32(cfg.Flicker.SizeMin),
		sizeMax:    float32(cfg.Flicker.SizeMax),
		background: rl.Color{R: bg[0], G: bg[1], B: bg[2], A: 255},
		color:      rl.Color{R: c[0], G: c[1], B: c[2], A: 255},
		width:      rl.GetScreenWidth(),
		height:     rl.GetScreenHeight(),
	}
}

// SetHUD enables the status bar overlay (nil disables it).
func (w *Window) SetHUD(h *HUD) {
	w.hud = h
}

// SetPositions stores the static position buffer (x, y, z per star).
func (w *Window) SetPositions(positions []float32) {
	w.positions = append(w.positions[:0], positions...)
}

// SetAttributes replaces the per-star attribute buffer in one copy.
func (w *Window) SetAttributes(values []float32) {
	w.attrs = append(w.attrs[:0], values...)
}

// SetSprites switches the window to drawing from an ECS scene.
func (w *Window) SetSprites(scene *sprites.Scene) {
	w.scene = scene
}

// Resize matches the window to the given surface size. Sizes reported by
// raylib itself are already current and leave the window alone.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	if rl.GetScreenWidth() != width || rl.GetScreenHeight() != height {
		rl.SetWindowSize(width, height)
	}
}

// Render draws one frame.
func (w *Window) Render(cam *camera.Perspective) {
	rl.BeginDrawing()
	rl.ClearBackground(w.background)

	stars := 0
	if w.scene != nil {
		w.scene.Each(func(pos [3]float32, v float32) {
			w.drawStar(cam, pos, v)
		})
		stars = w.scene.Len()
	} else {
		n := len(w.attrs)
		if len(w.positions)/3 < n {
			n = len(w.positions) / 3
		}
		for i := 0; i < n; i++ {
			p := [3]float32{w.positions[i*3], w.positions[i*3+1], w.positions[i*3+2]}
			w.drawStar(cam, p, w.attrs[i])
		}
		stars = n
	}

	if w.hud != nil {
		w.hud.Draw(w.width, w.height, stars)
	}

	rl.EndDrawing()
}

func (w *Window) drawStar(cam *camera.Perspective, p [3]float32, v float32) {
	if !cam.InFrustum(p, 0) {
		return
	}
	sx, sy, ok := cam.Project(p)
	if !ok {
		return
	}

	alpha, size := w.style(v)
	col := rl.ColorAlpha(w.color, alpha)
	pos := rl.Vector2{X: sx, Y: sy}
	if size <= 1 {
		rl.DrawPixelV(pos, col)
		return
	}
	// Soft falloff from the core to a transparent rim
	rl.DrawCircleGradient(int32(sx), int32(sy), size/2, col, rl.ColorAlpha(w.color, 0))
}

// style maps the attribute scalar to alpha and point size for the model kind.
func (w *Window) style(v float32) (alpha, size float32) {
	switch w.model.Kind {
	case flicker.KindSize:
		return 1, v
	case flicker.KindBoth:
		return v, w.sizeMin + (w.sizeMax-w.sizeMin)*w.model.Normalize(v)
	default:
		return v, w.sizeMin
	}
}
