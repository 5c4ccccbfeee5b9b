// Package camera provides a perspective camera for framing the star field.
package camera

import "math"

// Perspective frames the field from a fixed eye position.
type Perspective struct {
	// Vertical field of view in degrees
	FOV float32

	// Clip planes
	Near, Far float32

	// Eye and look-at point in world coordinates
	Position, Target [3]float32

	// Aspect ratio (viewport width / height)
	Aspect float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Projection is the column-major projection matrix derived from
	// FOV, Aspect, Near and Far by UpdateProjection.
	Projection [16]float32
}

// New creates a camera sized to the given viewport with its projection derived.
func New(fov, near, far float32, position, target [3]float32, viewportW, viewportH float32) *Perspective {
	c := &Perspective{
		FOV:       fov,
		Near:      near,
		Far:       far,
		Position:  position,
		Target:    target,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Aspect:    aspect(viewportW, viewportH),
	}
	c.UpdateProjection()
	return c
}

// Resize updates the viewport and re-derives aspect and projection.
// Repeating the same dimensions leaves the camera unchanged.
func (c *Perspective) Resize(viewportW, viewportH float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Aspect = aspect(viewportW, viewportH)
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix (OpenGL convention).
func (c *Perspective) UpdateProjection() {
	f := 1 / math.Tan(float64(c.FOV)*math.Pi/360)
	n, fa := float64(c.Near), float64(c.Far)

	var m [16]float32
	m[0] = float32(f / float64(c.Aspect))
	m[5] = float32(f)
	m[10] = float32((fa + n) / (n - fa))
	m[11] = -1
	m[14] = float32(2 * fa * n / (n - fa))
	c.Projection = m
}

// Project converts a world point to screen coordinates.
// ok is false when the point is behind the eye or outside the clip volume.
func (c *Perspective) Project(p [3]float32) (sx, sy float32, ok bool) {
	vx, vy, vz := c.toView(p)
	depth := -vz
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}

	// Clip space via the projection matrix, then perspective divide
	cx := c.Projection[0] * vx
	cy := c.Projection[5] * vy
	ndcX := cx / depth
	ndcY := cy / depth
	if absf(ndcX) > 1 || absf(ndcY) > 1 {
		return 0, 0, false
	}

	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}

// InFrustum returns true if a sphere at p with the given radius could be
// visible (conservative check for culling).
func (c *Perspective) InFrustum(p [3]float32, radius float32) bool {
	vx, vy, vz := c.toView(p)
	depth := -vz
	if depth+radius < c.Near || depth-radius > c.Far {
		return false
	}

	halfH := float32(math.Tan(float64(c.FOV)*math.Pi/360)) * depth
	halfW := halfH * c.Aspect
	return absf(vx) <= halfW+radius && absf(vy) <= halfH+radius
}

// toView transforms a world point into the camera's view space, where the
// camera looks down -Z with +Y up.
func (c *Perspective) toView(p [3]float32) (x, y, z float32) {
	fwd := normalize(sub(c.Target, c.Position))
	up := [3]float32{0, 1, 0}
	// Pick another up vector when looking straight along Y
	if absf(dot(fwd, up)) > 0.999 {
		up = [3]float32{0, 0, 1}
	}
	right := normalize(cross(fwd, up))
	trueUp := cross(right, fwd)

	d := sub(p, c.Position)
	return dot(d, right), dot(d, trueUp), -dot(d, fwd)
}

func aspect(w, h float32) float32 {
	if h <= 0 {
		return 1
	}
	return w / h
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(dot(v, v))))
	if l == 0 {
		return [3]float32{0, 0, -1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
