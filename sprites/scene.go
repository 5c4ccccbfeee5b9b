// Package sprites holds the per-star alternative to the shared attribute
// buffer: every star is its own ECS entity carrying its own visual value,
// and the target draws entities one by one. Per-frame cost grows with the
// per-object overhead of the target, so the batched buffer stays the default.
package sprites

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/starfield/components"
	"github.com/pthm-cable/starfield/flicker"
	"github.com/pthm-cable/starfield/starfield"
)

// Scene is a world with one entity per star.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Flicker, components.Visual]
	filter *ecs.Filter3[components.Position, components.Flicker, components.Visual]
	model  flicker.Model
	count  int
}

// NewScene creates one entity per star.
func NewScene(stars []starfield.Star, model flicker.Model) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Flicker, components.Visual](world),
		filter: ecs.NewFilter3[components.Position, components.Flicker, components.Visual](world),
		model:  model,
	}

	for i := range stars {
		st := &stars[i]
		pos := components.Position{X: st.Position[0], Y: st.Position[1], Z: st.Position[2]}
		fl := components.Flicker{
			Speed:    st.Profile.Speed,
			Offset:   st.Profile.Offset,
			Baseline: st.Profile.Baseline,
		}
		vis := components.Visual{Value: model.Value(0, st.Profile)}
		s.mapper.NewEntity(&pos, &fl, &vis)
		s.count++
	}

	return s
}

// Len returns the number of sprites.
func (s *Scene) Len() int {
	return s.count
}

// Update recomputes every sprite's visual value for the given clock.
func (s *Scene) Update(clock float64) {
	query := s.filter.Query()
	for query.Next() {
		_, fl, vis := query.Get()
		vis.Value = s.model.Value(clock, flicker.Profile{
			Speed:    fl.Speed,
			Offset:   fl.Offset,
			Baseline: fl.Baseline,
		})
	}
}

// Each calls fn for every sprite with its position and current value.
func (s *Scene) Each(fn func(pos [3]float32, value float32)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, vis := query.Get()
		fn([3]float32{pos.X, pos.Y, pos.Z}, vis.Value)
	}
}
