// Snapshot generator - writes a synthetic particle cloud as CSV.
//
// Usage: go run ./cmd/gen -out cloud.csv -n 50000
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/sphmap/config"
	"github.com/pthm-cable/sphmap/points"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "cloud.csv", "Output CSV path")
	n := flag.Int("n", 0, "Particle count (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	halfExtent := flag.Float64("half-extent", 0, "Frame half-width (0 = use config)")
	scale := flag.Float64("scale", 0, "Noise periods across the frame (0 = use config)")
	contrast := flag.Float64("contrast", 0, "Clumping exponent (0 = use config)")
	estimate := flag.Bool("estimate-hsml", true, "Fill the hsml column from k-nearest neighbors")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := points.SyntheticOptions{
		N:          cfg.Synthetic.N,
		HalfExtent: cfg.Grid.HalfExtent,
		Scale:      cfg.Synthetic.Scale,
		Contrast:   cfg.Synthetic.Contrast,
	}
	if *n > 0 {
		opts.N = *n
	}
	if *halfExtent > 0 {
		opts.HalfExtent = *halfExtent
	}
	if *scale > 0 {
		opts.Scale = *scale
	}
	if *contrast > 0 {
		opts.Contrast = *contrast
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	set := points.Synthetic(opts, rngSeed)
	slog.Info("generated cloud", "particles", set.Len(), "seed", rngSeed)

	if *estimate && set.Len() > 1 {
		if err := points.EstimateHsml(set, cfg.Smoothing.Neighbors); err != nil {
			slog.Error("failed to estimate smoothing lengths", "error", err)
			os.Exit(1)
		}
	}

	if err := set.WriteCSV(*outPath); err != nil {
		slog.Error("failed to write snapshot", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote snapshot", "path", *outPath)
}
