// Package components defines ECS components for the per-star sprite scene.
package components

// Position is a star's fixed world position.
type Position struct {
	X, Y, Z float32
}

// Flicker holds a star's oscillation parameters.
type Flicker struct {
	Speed    float32
	Offset   float32
	Baseline float32
}

// Visual is the attribute recomputed every frame for one sprite.
type Visual struct {
	Value float32
}
