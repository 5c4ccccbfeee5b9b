package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/driver"
	"github.com/pthm-cable/starfield/render"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/starfield"
	"github.com/pthm-cable/starfield/telemetry"
)

type options struct {
	seed        int64
	headless    bool
	maxFrames   int64
	logStats    bool
	outputDir   string
	statsWindow float64
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window (ticker-driven, recording target)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, star dump and config snapshot")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := options{
		seed:        rngSeed,
		headless:    *headless,
		maxFrames:   *maxFrames,
		logStats:    *logStats,
		outputDir:   *outputDir,
		statsWindow: *statsWindow,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Cfg(), opts); err != nil {
		slog.Error("starfield failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		return err
	}

	dopts := driverOptions(cfg, opts, output)
	rng := rand.New(rand.NewSource(opts.seed))

	if opts.headless {
		return runHeadless(ctx, cfg, opts, rng, dopts, output)
	}
	return runWindow(ctx, cfg, opts, rng, dopts, output)
}

func runHeadless(ctx context.Context, cfg *config.Config, opts options, rng *rand.Rand, dopts driver.Options, output *telemetry.OutputManager) error {
	target := render.NewRecorder()
	d, stars, err := driver.Setup(cfg, target, rng, dopts)
	if err != nil {
		return err
	}
	if err := output.WriteStars(stars); err != nil {
		return err
	}

	interval := time.Duration(cfg.Derived.FrameSeconds * float64(time.Second))
	host := driver.NewTickerHost(ctx, interval, opts.maxFrames)
	defer host.Close()

	slog.Info("starting headless run",
		"seed", opts.seed,
		"stars", d.Len(),
		"mode", cfg.Render.Mode,
		"max_frames", opts.maxFrames,
	)

	if err := d.Run(ctx, host); err != nil {
		return err
	}
	slog.Info("run finished", "frames", d.Frame(), "clock", d.Clock())
	return nil
}

func runWindow(ctx context.Context, cfg *config.Config, opts options, rng *rand.Rand, dopts driver.Options, output *telemetry.OutputManager) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	model, err := driver.ModelFromConfig(cfg)
	if err != nil {
		return err
	}
	win := renderer.NewWindow(cfg, model)

	var (
		boot  driver.Bootstrap
		d     *driver.Driver
		stars []starfield.Star
	)
	// The raylib window is ready as soon as InitWindow returns
	err = boot.Run(ctx, driver.Ready(), func() error {
		var err error
		d, stars, err = driver.Setup(cfg, win, rng, dopts)
		return err
	})
	if err != nil {
		return err
	}
	if err := output.WriteStars(stars); err != nil {
		return err
	}

	if cfg.Render.HUD {
		win.SetHUD(renderer.NewHUD(d.Clock))
	}

	slog.Info("starting window",
		"seed", opts.seed,
		"stars", d.Len(),
		"mode", cfg.Render.Mode,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
	)

	host := &frameLimit{Host: renderer.NewHost(), max: opts.maxFrames}
	return d.Run(ctx, host)
}

// driverOptions builds telemetry for the driver. Stats are collected only
// when something consumes them.
func driverOptions(cfg *config.Config, opts options, output *telemetry.OutputManager) driver.Options {
	dopts := driver.Options{
		Output:   output,
		LogStats: opts.logStats,
	}
	if !opts.logStats && output == nil {
		return dopts
	}

	statsFrames := cfg.Derived.StatsFrames
	if opts.statsWindow > 0 {
		statsFrames = max(1, int(opts.statsWindow*float64(cfg.Screen.TargetFPS)))
	}
	dopts.Stats = telemetry.NewCollector(statsFrames)
	dopts.Perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	return dopts
}

// frameLimit ends a host after max frames (0 = unlimited).
type frameLimit struct {
	driver.Host
	max    int64
	frames int64
}

func (f *frameLimit) NextFrame() bool {
	if f.max > 0 && f.frames >= f.max {
		slog.Info("max frames reached", "frames", f.frames)
		return false
	}
	if !f.Host.NextFrame() {
		return false
	}
	f.frames++
	return true
}
