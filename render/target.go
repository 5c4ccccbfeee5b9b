// Package render defines the contract between the animation driver and
// whatever draws the field, plus a headless recording target.
package render

import (
	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/sprites"
)

// Target is a render surface sized to the viewport.
type Target interface {
	// Resize matches the surface to the viewport.
	Resize(width, height int)
	// Render draws the current frame from the camera.
	Render(cam *camera.Perspective)
}

// PointTarget draws the field as one point cloud: a fixed position buffer
// of 3×count floats and one per-point attribute buffer of count floats.
type PointTarget interface {
	Target
	// SetPositions uploads the position buffer once.
	SetPositions(positions []float32)
	// SetAttributes replaces the attribute buffer and marks it for upload.
	// The target must not retain values past the next Render.
	SetAttributes(values []float32)
}

// SpriteTarget draws one primitive per star from a sprite scene.
type SpriteTarget interface {
	Target
	SetSprites(scene *sprites.Scene)
}
