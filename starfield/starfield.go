// Package starfield generates the initial set of stars: positions spread
// uniformly over a spherical shell and an independent flicker profile each.
package starfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/starfield/flicker"
)

// ErrInvalidArgument is returned for a non-positive count or malformed ranges.
var ErrInvalidArgument = errors.New("starfield: invalid argument")

// RandomSource supplies uniform floats in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Star is one point in the field.
type Star struct {
	Position [3]float32
	Profile  flicker.Profile
}

// Shell describes the spherical band stars are placed in.
type Shell struct {
	Radius    float64 // Inner radius R0
	Thickness float64 // Band depth ΔR; radius is drawn from [R0, R0+ΔR)
}

// Ranges bounds the per-star flicker parameters.
type Ranges struct {
	SpeedMin, SpeedMax   float64
	OffsetMin, OffsetMax float64
	BaselineMax          float64
}

// Validate checks the shell bounds.
func (s Shell) Validate() error {
	if !finite(s.Radius) || !finite(s.Thickness) || s.Radius < 0 || s.Thickness < 0 {
		return fmt.Errorf("%w: shell radius=%g thickness=%g", ErrInvalidArgument, s.Radius, s.Thickness)
	}
	return nil
}

// Validate checks the flicker parameter ranges.
func (r Ranges) Validate() error {
	switch {
	case !finite(r.SpeedMin) || !finite(r.SpeedMax) || r.SpeedMin <= 0 || r.SpeedMax < r.SpeedMin:
		return fmt.Errorf("%w: speed range [%g, %g]", ErrInvalidArgument, r.SpeedMin, r.SpeedMax)
	case !finite(r.OffsetMin) || !finite(r.OffsetMax) || r.OffsetMin < 0 || r.OffsetMax > 2*math.Pi || r.OffsetMax < r.OffsetMin:
		return fmt.Errorf("%w: offset range [%g, %g]", ErrInvalidArgument, r.OffsetMin, r.OffsetMax)
	case !finite(r.BaselineMax) || r.BaselineMax < 0 || r.BaselineMax >= 1:
		return fmt.Errorf("%w: baseline max %g", ErrInvalidArgument, r.BaselineMax)
	}
	return nil
}

// Generate creates count stars. Polar angles are drawn as acos(U(-1, 1)) so
// points are uniform over the sphere surface rather than clustered at the poles.
func Generate(count int, shell Shell, ranges Ranges, rng RandomSource) ([]Star, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: star count %d", ErrInvalidArgument, count)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	if err := shell.Validate(); err != nil {
		return nil, err
	}
	if err := ranges.Validate(); err != nil {
		return nil, err
	}

	stars := make([]Star, count)
	for i := range stars {
		phi := rng.Float64() * 2 * math.Pi
		theta := math.Acos(rng.Float64()*2 - 1)
		r := shell.Radius + rng.Float64()*shell.Thickness

		sinT := math.Sin(theta)
		stars[i] = Star{
			Position: [3]float32{
				float32(r * sinT * math.Cos(phi)),
				float32(r * sinT * math.Sin(phi)),
				float32(r * math.Cos(theta)),
			},
			Profile: flicker.Profile{
				Speed:    float32(uniform(rng, ranges.SpeedMin, ranges.SpeedMax)),
				Offset:   halfOpen(uniform(rng, ranges.OffsetMin, ranges.OffsetMax), ranges.OffsetMin, ranges.OffsetMax),
				Baseline: halfOpen(uniform(rng, 0, ranges.BaselineMax), 0, ranges.BaselineMax),
			},
		}
	}
	return stars, nil
}

// Positions packs star positions into a flat 3×len(stars) buffer.
func Positions(stars []Star) []float32 {
	buf := make([]float32, 0, 3*len(stars))
	for i := range stars {
		buf = append(buf, stars[i].Position[:]...)
	}
	return buf
}

// Profiles extracts the flicker profiles in star order.
func Profiles(stars []Star) []flicker.Profile {
	out := make([]flicker.Profile, len(stars))
	for i := range stars {
		out[i] = stars[i].Profile
	}
	return out
}

// PolarAngle returns the angle between the star's position and the +Z axis.
func PolarAngle(s Star) float64 {
	x, y, z := float64(s.Position[0]), float64(s.Position[1]), float64(s.Position[2])
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return 0
	}
	c := z / r
	// float32 positions can push the ratio just past ±1
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Radius returns the distance of the star from the origin.
func Radius(s Star) float64 {
	x, y, z := float64(s.Position[0]), float64(s.Position[1]), float64(s.Position[2])
	return math.Sqrt(x*x + y*y + z*z)
}

func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// halfOpen narrows x to float32 and keeps it inside [lo, hi). Rounding to
// float32 can otherwise land exactly on hi (float32(2π) > 2π).
func halfOpen(x, lo, hi float64) float32 {
	v := float32(x)
	if hi <= lo {
		return v
	}
	for float64(v) >= hi && float64(v) > lo {
		v = math.Nextafter32(v, float32(math.Inf(-1)))
	}
	return v
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
