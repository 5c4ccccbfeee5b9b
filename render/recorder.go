package render

import (
	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/sprites"
)

// Recorder is a headless target that keeps the last uploaded buffers and
// counts calls. It implements both PointTarget and SpriteTarget.
type Recorder struct {
	Positions  []float32
	Attributes []float32
	Scene      *sprites.Scene

	Width, Height int

	PositionUploads  int
	AttributeUploads int
	Renders          int
	Resizes          int

	// LastAspect is the camera aspect observed by the latest Render.
	LastAspect float32
	// RenderedSize is the surface size at the latest Render.
	RenderedW, RenderedH int
}

// NewRecorder creates an empty recording target.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetPositions copies the position buffer.
func (r *Recorder) SetPositions(positions []float32) {
	r.Positions = append(r.Positions[:0], positions...)
	r.PositionUploads++
}

// SetAttributes copies the attribute buffer, reusing storage across frames.
func (r *Recorder) SetAttributes(values []float32) {
	r.Attributes = append(r.Attributes[:0], values...)
	r.AttributeUploads++
}

// SetSprites keeps the sprite scene.
func (r *Recorder) SetSprites(scene *sprites.Scene) {
	r.Scene = scene
}

// Resize records the surface size.
func (r *Recorder) Resize(width, height int) {
	r.Width = width
	r.Height = height
	r.Resizes++
}

// Render records a frame.
func (r *Recorder) Render(cam *camera.Perspective) {
	r.Renders++
	r.RenderedW = r.Width
	r.RenderedH = r.Height
	if cam != nil {
		r.LastAspect = cam.Aspect
	}
}

// Touched reports whether any call has reached the target.
func (r *Recorder) Touched() bool {
	return r.PositionUploads > 0 || r.AttributeUploads > 0 || r.Renders > 0 ||
		r.Resizes > 0 || r.Scene != nil
}
