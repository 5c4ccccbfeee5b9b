package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Field.Count != 1000 {
		t.Errorf("expected 1000 stars, got %d", cfg.Field.Count)
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 2000 {
		t.Errorf("unexpected camera constants: %+v", cfg.Camera)
	}
	if cfg.Camera.Position != [3]float64{0, 1, 6} || cfg.Camera.Target != [3]float64{} {
		t.Errorf("unexpected camera framing: position=%v target=%v", cfg.Camera.Position, cfg.Camera.Target)
	}
	if cfg.Field.Radius != 800 || cfg.Field.Thickness != 200 {
		t.Errorf("unexpected shell: r0=%g dr=%g", cfg.Field.Radius, cfg.Field.Thickness)
	}
	if cfg.Flicker.Min != 0.3 || cfg.Flicker.Max != 1.0 {
		t.Errorf("unexpected flicker range [%g, %g]", cfg.Flicker.Min, cfg.Flicker.Max)
	}
	if cfg.Render.Mode != "batched" {
		t.Errorf("expected batched mode, got %q", cfg.Render.Mode)
	}
}

func TestDerived(t *testing.T) {
	cfg := Default()

	if math.Abs(cfg.Derived.FrameSeconds-1.0/60) > 1e-12 {
		t.Errorf("expected frame seconds %f, got %f", 1.0/60, cfg.Derived.FrameSeconds)
	}
	if cfg.Derived.StatsFrames != 300 {
		t.Errorf("expected 300 stats frames, got %d", cfg.Derived.StatsFrames)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("field:\n  count: 250\nrender:\n  hud: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Count != 250 {
		t.Errorf("expected overridden count 250, got %d", cfg.Field.Count)
	}
	if !cfg.Render.HUD {
		t.Error("expected hud enabled")
	}
	// Untouched fields keep their defaults
	if cfg.Field.Radius != 800 {
		t.Errorf("expected default radius, got %g", cfg.Field.Radius)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"zero fps", func(c *Config) { c.Screen.TargetFPS = 0 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"frozen clock", func(c *Config) { c.Animation.Increment = 0 }},
		{"unknown mode", func(c *Config) { c.Render.Mode = "instanced" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Field.Count = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Field.Count != 42 {
		t.Errorf("expected count 42 after roundtrip, got %d", loaded.Field.Count)
	}
}
