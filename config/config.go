// Package config provides configuration loading and access for the star field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all star field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Field     FieldConfig     `yaml:"field"`
	Flicker   FlickerConfig   `yaml:"flicker"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// CameraConfig holds the perspective camera constants.
type CameraConfig struct {
	FOV      float64    `yaml:"fov"`      // Vertical field of view in degrees
	Near     float64    `yaml:"near"`     // Near clip plane
	Far      float64    `yaml:"far"`      // Far clip plane
	Position [3]float64 `yaml:"position"` // Fixed eye position
	Target   [3]float64 `yaml:"target"`   // Look-at point
}

// FieldConfig holds star generation parameters.
type FieldConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`       // Inner shell radius (R0)
	Thickness   float64 `yaml:"thickness"`    // Shell thickness (ΔR)
	SpeedMin    float64 `yaml:"speed_min"`    // Flicker angular rate lower bound
	SpeedMax    float64 `yaml:"speed_max"`    // Flicker angular rate upper bound
	OffsetMin   float64 `yaml:"offset_min"`   // Phase offset lower bound
	OffsetMax   float64 `yaml:"offset_max"`   // Phase offset upper bound (exclusive)
	BaselineMax float64 `yaml:"baseline_max"` // Per-star floor jitter, fraction of range
}

// FlickerConfig holds the visual attribute model.
type FlickerConfig struct {
	Kind    string  `yaml:"kind"` // opacity, size or both
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	SizeMin float64 `yaml:"size_min"` // Point size range used when kind is both
	SizeMax float64 `yaml:"size_max"`
}

// AnimationConfig holds clock parameters.
type AnimationConfig struct {
	Increment float64 `yaml:"increment"` // Clock advance per frame
}

// RenderConfig holds render target parameters.
type RenderConfig struct {
	Mode       string   `yaml:"mode"` // batched or sprites
	HUD        bool     `yaml:"hud"`
	Background [3]uint8 `yaml:"background"`
	Color      [3]uint8 `yaml:"color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameSeconds float64 // 1 / Screen.TargetFPS
	StatsFrames  int     // Telemetry.StatsWindow in frames
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks settings that the field and flicker packages do not own.
// Star count and flicker ranges are validated where they are consumed.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps %d", ErrInvalid, c.Screen.TargetFPS)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Animation.Increment <= 0:
		return fmt.Errorf("%w: animation increment %g", ErrInvalid, c.Animation.Increment)
	case c.Render.Mode != "batched" && c.Render.Mode != "sprites":
		return fmt.Errorf("%w: render mode %q", ErrInvalid, c.Render.Mode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameSeconds = 1 / float64(c.Screen.TargetFPS)

	frames := int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if frames < 1 {
		frames = 1
	}
	c.Derived.StatsFrames = frames

	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = c.Screen.TargetFPS
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
