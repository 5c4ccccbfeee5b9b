// Package flicker maps a clock value and a per-star profile to a bounded
// visual attribute (opacity, point size, or both).
package flicker

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for malformed model bounds or kinds.
var ErrInvalidArgument = errors.New("flicker: invalid argument")

// Kind selects how the renderer interprets the attribute scalar.
type Kind uint8

const (
	KindOpacity Kind = iota // Attribute is alpha in [0, 1]
	KindSize                // Attribute is a point size in world units
	KindBoth                // Attribute is alpha; size is derived from the same factor
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOpacity:
		return "opacity"
	case KindSize:
		return "size"
	case KindBoth:
		return "both"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "opacity", "":
		return KindOpacity, nil
	case "size":
		return KindSize, nil
	case "both":
		return KindBoth, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
}

// Profile holds the immutable per-star oscillation parameters.
type Profile struct {
	Speed    float32 // Angular rate of the oscillation (> 0)
	Offset   float32 // Phase shift in [0, 2π)
	Baseline float32 // Fraction of the range the star never dims below, in [0, 1)
}

// Model is the unified flicker model shared by every star in a field.
type Model struct {
	Kind Kind
	Min  float32
	Max  float32
}

// Validate checks the model bounds.
func (m Model) Validate() error {
	switch {
	case m.Kind > KindBoth:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidArgument, m.Kind)
	case isBad(m.Min) || isBad(m.Max):
		return fmt.Errorf("%w: non-finite bounds [%g, %g]", ErrInvalidArgument, m.Min, m.Max)
	case m.Min < 0 || m.Max < m.Min:
		return fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidArgument, m.Min, m.Max)
	case m.Kind != KindSize && m.Max > 1:
		return fmt.Errorf("%w: opacity above 1 (%g)", ErrInvalidArgument, m.Max)
	}
	return nil
}

// Factor returns sin(clock*speed + offset) remapped from [-1, 1] to [0, 1].
func Factor(clock float64, p Profile) float64 {
	return math.Sin(clock*float64(p.Speed)+float64(p.Offset))*0.5 + 0.5
}

// Value returns the star's attribute at the given clock.
// It depends only on (clock, p), so any frame can be recomputed without history.
func (m Model) Value(clock float64, p Profile) float32 {
	f := Factor(clock, p)
	base := float64(p.Baseline)
	v := float32(float64(m.Min) + float64(m.Max-m.Min)*(base+(1-base)*f))
	if v < m.Min {
		return m.Min
	}
	if v > m.Max {
		return m.Max
	}
	return v
}

// Fill writes Value(clock, profiles[i]) into dst[i] for every profile.
// dst must be at least as long as profiles.
func (m Model) Fill(dst []float32, clock float64, profiles []Profile) {
	for i := range profiles {
		dst[i] = m.Value(clock, profiles[i])
	}
}

// Normalize maps an attribute back into [0, 1] relative to the model range.
// Renderers use it to derive a secondary size or alpha from the same scalar.
func (m Model) Normalize(v float32) float32 {
	span := m.Max - m.Min
	if span <= 0 {
		return 1
	}
	return (v - m.Min) / span
}

func isBad(x float32) bool {
	f := float64(x)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
