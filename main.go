package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sphmap/config"
	"github.com/pthm-cable/sphmap/points"
	"github.com/pthm-cable/sphmap/render"
	"github.com/pthm-cable/sphmap/sph"
	"github.com/pthm-cable/sphmap/telemetry"
	"github.com/pthm-cable/sphmap/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	inPath := flag.String("in", "", "Particle snapshot CSV (empty = synthetic cloud)")
	outPath := flag.String("out", "", "Heatmap PNG output path")
	view := flag.Bool("view", false, "Open an interactive window instead of exiting")
	npix := flag.Int("npix", 0, "Pixels per axis (0 = use config)")
	halfExtent := flag.Float64("half-extent", 0, "Physical half-width of the frame (0 = use config)")
	workers := flag.Int("workers", 0, "Splat workers (0 = use config)")
	outputDir := flag.String("output-dir", "", "Directory for runs.csv and config snapshot")
	seed := flag.Int64("seed", 0, "Synthetic cloud seed (0 = time-based)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *npix > 0 {
		cfg.Grid.Npix = *npix
	}
	if *halfExtent > 0 {
		cfg.Grid.HalfExtent = *halfExtent
	}
	if *workers > 0 {
		cfg.Parallel.Workers = *workers
	}

	set, err := loadParticles(*inPath, *seed, cfg)
	if err != nil {
		slog.Error("failed to load particles", "error", err)
		os.Exit(1)
	}

	grid, err := sph.NewGrid(cfg.Grid.Npix, cfg.Grid.HalfExtent)
	if err != nil {
		slog.Error("invalid grid geometry", "error", err)
		os.Exit(1)
	}

	splatter := sph.NewSplatter(cfg.Parallel.Workers)
	start := time.Now()
	stats, err := splatter.Accumulate(grid, set.X, set.Y, set.Weight, set.Hsml)
	if err != nil {
		slog.Error("accumulation failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	run := telemetry.Summarize(grid, stats, elapsed)
	slog.Info("accumulated density map",
		"npix", grid.NPix,
		"half_extent", grid.HalfExtent,
		"splatted", stats.Splatted,
		"skipped", stats.Skipped,
		"culled", stats.Culled,
		"splat_ms", run.SplatMS,
		"points_per_sec", run.PointsPerSec,
		"mass", run.Mass,
	)

	out, err := telemetry.NewOutput(*outputDir)
	if err != nil {
		slog.Error("failed to open output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
	}
	if err := out.WriteRun(run); err != nil {
		slog.Error("failed to write run record", "error", err)
	}

	if *outPath != "" {
		err := render.WritePNG(grid, *outPath, render.Options{
			SizePx:       cfg.Render.SizePx,
			LogScale:     cfg.Render.LogScale,
			ClipQuantile: cfg.Render.ClipQuantile,
		})
		if err != nil {
			slog.Error("failed to write heatmap", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote heatmap", "path", *outPath)
	}

	if *view {
		runViewer(grid, stats, cfg)
	}
}

// loadParticles reads the snapshot (or synthesizes one), applies the
// coarse range cull and fills in missing smoothing lengths.
func loadParticles(path string, seed int64, cfg *config.Config) (*points.Set, error) {
	var set *points.Set
	if path != "" {
		s, err := points.ReadCSV(path)
		if err != nil {
			return nil, err
		}
		set = s
		slog.Info("loaded snapshot", "path", path, "particles", set.Len())
	} else {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		set = points.Synthetic(points.SyntheticOptions{
			N:          cfg.Synthetic.N,
			HalfExtent: cfg.Grid.HalfExtent,
			Scale:      cfg.Synthetic.Scale,
			Contrast:   cfg.Synthetic.Contrast,
		}, seed)
		slog.Info("generated synthetic cloud", "particles", set.Len(), "seed", seed)
	}

	set = set.ClipToExtent(cfg.Grid.HalfExtent)

	needHsml := true
	for _, h := range set.Hsml {
		if h > 0 {
			needHsml = false
			break
		}
	}
	if needHsml && set.Len() > 1 {
		if err := points.EstimateHsml(set, cfg.Smoothing.Neighbors); err != nil {
			return nil, err
		}
		slog.Info("estimated smoothing lengths", "neighbors", cfg.Smoothing.Neighbors)
	}
	if cfg.Smoothing.MinHsml > 0 {
		for i, h := range set.Hsml {
			if h < cfg.Smoothing.MinHsml {
				set.Hsml[i] = cfg.Smoothing.MinHsml
			}
		}
	}

	return set, nil
}

// runViewer opens the interactive window on the accumulated map.
func runViewer(grid *sph.Grid, stats sph.Stats, cfg *config.Config) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "sphmap")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := viewer.New(grid)
	defer v.Close()

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		v.Draw(stats)
		rl.EndDrawing()
	}
}
