package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const hudHeight = 24

// HUD draws a read-only status bar along the bottom edge.
type HUD struct {
	clock func() float64
}

// NewHUD creates a status bar reading the animation clock from clock.
func NewHUD(clock func() float64) *HUD {
	return &HUD{clock: clock}
}

// Draw renders the status bar for a surface of the given size.
func (h *HUD) Draw(width, height, stars int) {
	text := fmt.Sprintf("clock %.2f  |  %d fps  |  %d stars", h.clock(), rl.GetFPS(), stars)
	bounds := rl.Rectangle{
		X:      0,
		Y:      float32(height - hudHeight),
		Width:  float32(width),
		Height: hudHeight,
	}
	gui.StatusBar(bounds, text)
}
