package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/flicker"
	"github.com/pthm-cable/starfield/starfield"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager without error, got %v, %v", om, err)
	}
	// Nil manager methods are no-ops
	if err := om.WriteFrames(WindowStats{}); err != nil {
		t.Errorf("WriteFrames on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWritesFrames(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int64(1); i <= 3; i++ {
		if err := om.WriteFrames(WindowStats{WindowEndFrame: i * 60, Stars: 1000, AttrMean: 0.65}); err != nil {
			t.Fatalf("WriteFrames: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []WindowStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (one header), got %d", len(rows))
	}
	if rows[2].WindowEndFrame != 180 || rows[2].Stars != 1000 {
		t.Errorf("unexpected last row: %+v", rows[2])
	}
}

func TestOutputManagerWritesStarsAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	stars := []starfield.Star{
		{Position: [3]float32{0, 0, 900}, Profile: flicker.Profile{Speed: 1, Offset: 2}},
		{Position: [3]float32{900, 0, 0}, Profile: flicker.Profile{Speed: 1.5, Offset: 3, Baseline: 0.2}},
	}
	if err := om.WriteStars(stars); err != nil {
		t.Fatalf("WriteStars: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "stars.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []StarRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading stars.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 stars, got %d", len(rows))
	}
	if rows[1].Speed != 1.5 || rows[1].Baseline != 0.2 {
		t.Errorf("unexpected star row: %+v", rows[1])
	}
	if rows[0].Theta != 0 {
		t.Errorf("expected theta 0 for a star on +Z, got %f", rows[0].Theta)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config.yaml: %v", err)
	}
}
