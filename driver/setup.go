package driver

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/flicker"
	"github.com/pthm-cable/starfield/render"
	"github.com/pthm-cable/starfield/starfield"
)

// ModelFromConfig builds the flicker model from the flicker section.
func ModelFromConfig(cfg *config.Config) (flicker.Model, error) {
	kind, err := flicker.ParseKind(cfg.Flicker.Kind)
	if err != nil {
		return flicker.Model{}, err
	}
	m := flicker.Model{
		Kind: kind,
		Min:  float32(cfg.Flicker.Min),
		Max:  float32(cfg.Flicker.Max),
	}
	if err := m.Validate(); err != nil {
		return flicker.Model{}, err
	}
	return m, nil
}

// ShellFromConfig returns the generation shell.
func ShellFromConfig(cfg *config.Config) starfield.Shell {
	return starfield.Shell{Radius: cfg.Field.Radius, Thickness: cfg.Field.Thickness}
}

// RangesFromConfig returns the flicker parameter ranges.
func RangesFromConfig(cfg *config.Config) starfield.Ranges {
	return starfield.Ranges{
		SpeedMin:    cfg.Field.SpeedMin,
		SpeedMax:    cfg.Field.SpeedMax,
		OffsetMin:   cfg.Field.OffsetMin,
		OffsetMax:   cfg.Field.OffsetMax,
		BaselineMax: cfg.Field.BaselineMax,
	}
}

// CameraFromConfig creates the perspective camera sized to the screen.
func CameraFromConfig(cfg *config.Config) *camera.Perspective {
	return camera.New(
		float32(cfg.Camera.FOV),
		float32(cfg.Camera.Near),
		float32(cfg.Camera.Far),
		vec3(cfg.Camera.Position),
		vec3(cfg.Camera.Target),
		float32(cfg.Screen.Width),
		float32(cfg.Screen.Height),
	)
}

// Setup generates the field and wires it to the target. Everything that can
// fail runs before the target is touched, so a failed setup leaves the target
// exactly as it was.
func Setup(cfg *config.Config, target render.Target, rng starfield.RandomSource, opts Options) (*Driver, []starfield.Star, error) {
	if target == nil {
		return nil, nil, fmt.Errorf("%w: no render target", ErrInitialization)
	}

	model, err := ModelFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	mode, err := ParseMode(cfg.Render.Mode)
	if err != nil {
		return nil, nil, err
	}

	stars, err := starfield.Generate(cfg.Field.Count, ShellFromConfig(cfg), RangesFromConfig(cfg), rng)
	if err != nil {
		return nil, nil, err
	}

	opts.Mode = mode
	opts.Model = model
	if opts.Increment == 0 {
		opts.Increment = cfg.Animation.Increment
	}

	d, err := New(stars, CameraFromConfig(cfg), target, opts)
	if err != nil {
		return nil, nil, err
	}
	d.Resize(cfg.Screen.Width, cfg.Screen.Height)

	mean, std := starfield.RadiusSpread(stars)
	slog.Info("field_generated",
		"stars", len(stars),
		"mode", mode.String(),
		"kind", model.Kind.String(),
		"radius_mean", mean,
		"radius_std", std,
	)

	return d, stars, nil
}

func vec3(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
