package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	Clock            float64 `csv:"clock"`
	Stars            int     `csv:"stars"`
	Resizes          int     `csv:"resizes"`

	// Attribute distribution (sampled at window end)
	AttrMean float64 `csv:"attr_mean"`
	AttrStd  float64 `csv:"attr_std"`
	AttrMin  float64 `csv:"attr_min"`
	AttrMax  float64 `csv:"attr_max"`
	AttrP10  float64 `csv:"attr_p10"`
	AttrP50  float64 `csv:"attr_p50"`
	AttrP90  float64 `csv:"attr_p90"`
}

// AttributeSummary describes one snapshot of the attribute buffer.
type AttributeSummary struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// Summarize computes mean, spread and percentiles of an attribute buffer.
// scratch is reused when large enough; the returned slice should be passed
// back on the next call to avoid reallocating.
func Summarize(values []float32, scratch []float64) (AttributeSummary, []float64) {
	if len(values) == 0 {
		return AttributeSummary{}, scratch
	}
	if cap(scratch) < len(values) {
		scratch = make([]float64, len(values))
	}
	scratch = scratch[:len(values)]
	for i, v := range values {
		scratch[i] = float64(v)
	}
	sort.Float64s(scratch)

	mean, std := stat.MeanStdDev(scratch, nil)
	return AttributeSummary{
		Mean: mean,
		Std:  std,
		Min:  scratch[0],
		Max:  scratch[len(scratch)-1],
		P10:  stat.Quantile(0.10, stat.Empirical, scratch, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, scratch, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, scratch, nil),
	}, scratch
}

// Collector closes a WindowStats every windowFrames frames.
type Collector struct {
	windowFrames     int64
	windowStartFrame int64
	resizes          int
	scratch          []float64
}

// NewCollector creates a collector with the given window length in frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordResize counts a resize in the current window.
func (c *Collector) RecordResize() {
	c.resizes++
}

// ShouldFlush reports whether frame closes the current window.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush summarizes the attribute buffer and starts a new window.
func (c *Collector) Flush(frame int64, clock float64, attrs []float32) WindowStats {
	var sum AttributeSummary
	sum, c.scratch = Summarize(attrs, c.scratch)

	ws := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		Clock:            clock,
		Stars:            len(attrs),
		Resizes:          c.resizes,
		AttrMean:         sum.Mean,
		AttrStd:          sum.Std,
		AttrMin:          sum.Min,
		AttrMax:          sum.Max,
		AttrP10:          sum.P10,
		AttrP50:          sum.P50,
		AttrP90:          sum.P90,
	}

	c.windowStartFrame = frame
	c.resizes = 0
	return ws
}

// LogStats logs the window via slog.
func (s WindowStats) LogStats() {
	slog.Info("frame_stats",
		"window_end", s.WindowEndFrame,
		"clock", s.Clock,
		"stars", s.Stars,
		"resizes", s.Resizes,
		"attr_mean", s.AttrMean,
		"attr_std", s.AttrStd,
		"attr_min", s.AttrMin,
		"attr_max", s.AttrMax,
	)
}
