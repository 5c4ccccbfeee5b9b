// Field distribution check - generates large fields and tests the polar
// angle histogram against a uniform sphere surface.
//
// Usage: go run ./cmd/fieldcheck -count 20000 -trials 5
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/driver"
	"github.com/pthm-cable/starfield/starfield"
)

// binRecord is one row of the histogram dump.
type binRecord struct {
	Trial    int     `csv:"trial"`
	Bin      int     `csv:"bin"`
	ThetaLo  float64 `csv:"theta_lo"`
	ThetaHi  float64 `csv:"theta_hi"`
	Observed float64 `csv:"observed"`
	Expected float64 `csv:"expected"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file for shell and ranges (empty = use defaults)")
	count := flag.Int("count", 20000, "Stars per trial")
	bins := flag.Int("bins", 18, "Polar angle bins over [0, π]")
	trials := flag.Int("trials", 3, "Number of seeds to test")
	seed := flag.Int64("seed", 0, "First RNG seed (0 = time-based)")
	alpha := flag.Float64("alpha", 0.001, "Significance level")
	csvPath := flag.String("csv", "", "Write the histograms to this CSV file")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	shell := driver.ShellFromConfig(cfg)
	ranges := driver.RangesFromConfig(cfg)

	fmt.Printf("shell R0=%.1f ΔR=%.1f, %d stars, %d bins, alpha=%g\n\n",
		shell.Radius, shell.Thickness, *count, *bins, *alpha)
	fmt.Printf("%-6s %-20s %10s %10s %10s %10s\n", "trial", "seed", "chi2", "p", "radius μ", "radius σ")

	var records []binRecord
	failed := 0
	for trial := 0; trial < *trials; trial++ {
		s := baseSeed + int64(trial)
		stars, err := starfield.Generate(*count, shell, ranges, rand.New(rand.NewSource(s)))
		if err != nil {
			log.Fatalf("generate: %v", err)
		}

		fit, err := starfield.PolarChiSquare(stars, *bins)
		if err != nil {
			log.Fatalf("chi-square: %v", err)
		}
		mean, std := starfield.RadiusSpread(stars)

		verdict := ""
		if fit.PValue < *alpha {
			verdict = "  REJECT"
			failed++
		}
		fmt.Printf("%-6d %-20d %10.2f %10.4f %10.1f %10.1f%s\n", trial, s, fit.ChiSq, fit.PValue, mean, std, verdict)

		records = append(records, histogram(trial, fit)...)
	}

	// Baseline: θ drawn uniformly over [0, π] clusters at the poles and must fail
	rng := rand.New(rand.NewSource(baseSeed))
	naive := make([]float64, *count)
	for i := range naive {
		naive[i] = rng.Float64() * math.Pi
	}
	ref, err := starfield.PolarAnglesChiSquare(naive, *bins)
	if err != nil {
		log.Fatalf("chi-square: %v", err)
	}
	fmt.Printf("\nuniform-θ reference: chi2=%.2f p=%.3g (expected to reject)\n", ref.ChiSq, ref.PValue)
	records = append(records, histogram(-1, ref)...)

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *csvPath, err)
		}
		if err := gocsv.MarshalFile(&records, f); err != nil {
			f.Close()
			log.Fatalf("failed to write %s: %v", *csvPath, err)
		}
		f.Close()
		fmt.Printf("histograms written to %s\n", *csvPath)
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d trials rejected at alpha=%g\n", failed, *trials, *alpha)
		os.Exit(1)
	}
}

func histogram(trial int, fit starfield.PolarFit) []binRecord {
	width := math.Pi / float64(fit.Bins)
	out := make([]binRecord, fit.Bins)
	for i := range out {
		out[i] = binRecord{
			Trial:    trial,
			Bin:      i,
			ThetaLo:  float64(i) * width,
			ThetaHi:  float64(i+1) * width,
			Observed: fit.Observed[i],
			Expected: fit.Expected[i],
		}
	}
	return out
}
