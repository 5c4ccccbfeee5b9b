package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/starfield"
)

// StarRecord is one row of stars.csv.
type StarRecord struct {
	Index    int     `csv:"index"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
	Z        float32 `csv:"z"`
	Theta    float64 `csv:"theta"`
	Speed    float32 `csv:"speed"`
	Offset   float32 `csv:"offset"`
	Baseline float32 `csv:"baseline"`
}

// StarRecords flattens a field into CSV rows.
func StarRecords(stars []starfield.Star) []StarRecord {
	out := make([]StarRecord, len(stars))
	for i, s := range stars {
		out[i] = StarRecord{
			Index:    i,
			X:        s.Position[0],
			Y:        s.Position[1],
			Z:        s.Position[2],
			Theta:    starfield.PolarAngle(s),
			Speed:    s.Profile.Speed,
			Offset:   s.Profile.Offset,
			Baseline: s.Profile.Baseline,
		}
	}
	return out
}

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir        string
	framesFile *os.File
	perfFile   *os.File

	// Track if headers have been written
	framesHeaderWritten bool
	perfHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.framesFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.framesFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStars saves the generated field to stars.csv.
func (om *OutputManager) WriteStars(stars []starfield.Star) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "stars.csv"))
	if err != nil {
		return fmt.Errorf("creating stars.csv: %w", err)
	}
	defer f.Close()

	records := StarRecords(stars)
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("writing stars: %w", err)
	}
	return nil
}

// WriteFrames writes a window stats record to frames.csv.
func (om *OutputManager) WriteFrames(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.framesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		om.framesHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.framesFile != nil {
		if err := om.framesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
