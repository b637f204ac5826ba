// Live demo - a drifting particle cloud rendered as a density map
// every frame.
//
// Usage: go run ./cmd/live
package main

import (
	"flag"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sphmap/config"
	"github.com/pthm-cable/sphmap/points"
	"github.com/pthm-cable/sphmap/sph"
	"github.com/pthm-cable/sphmap/viewer"
)

// sim is a minimal particle world: clumpy initial cloud, flat rotation
// curve around the frame center, small random kicks.
type sim struct {
	world  *ecs.World
	filter *ecs.Filter3[Position, Velocity, Body]
	rng    *rand.Rand

	orbitSpeed float64
	jitter     float64

	// Reused extraction buffers for the splat.
	set *points.Set
}

func newSim(cfg *config.Config, seed int64) *sim {
	world := ecs.NewWorld()
	mapper := ecs.NewMap3[Position, Velocity, Body](world)

	s := &sim{
		world:      world,
		filter:     ecs.NewFilter3[Position, Velocity, Body](world),
		rng:        rand.New(rand.NewSource(seed)),
		orbitSpeed: cfg.Live.OrbitSpeed,
		jitter:     cfg.Live.Jitter,
		set:        points.NewSet(cfg.Live.Particles),
	}

	cloud := points.Synthetic(points.SyntheticOptions{
		N:          cfg.Live.Particles,
		HalfExtent: cfg.Grid.HalfExtent,
		Scale:      cfg.Synthetic.Scale,
		Contrast:   cfg.Synthetic.Contrast,
	}, seed)
	// Smoothing lengths are estimated once at spawn; the orbital shear
	// is slow enough that neighbor distances stay representative.
	if err := points.EstimateHsml(cloud, cfg.Smoothing.Neighbors); err != nil {
		panic(err)
	}

	for k := 0; k < cloud.Len(); k++ {
		pos := Position{X: cloud.X[k], Y: cloud.Y[k]}
		vel := s.orbitVelocity(pos)
		body := Body{Weight: cloud.Weight[k], Hsml: cloud.Hsml[k]}
		mapper.NewEntity(&pos, &vel, &body)
	}
	return s
}

// orbitVelocity returns the tangential velocity of a flat rotation
// curve at the given position.
func (s *sim) orbitVelocity(pos Position) Velocity {
	r := math.Hypot(pos.X, pos.Y)
	if r < 1e-9 {
		return Velocity{}
	}
	return Velocity{X: -pos.Y / r * s.orbitSpeed, Y: pos.X / r * s.orbitSpeed}
}

// step advances all particles by dt seconds.
func (s *sim) step(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()

		target := s.orbitVelocity(*pos)
		vel.X = target.X + (s.rng.Float64()*2-1)*s.jitter
		vel.Y = target.Y + (s.rng.Float64()*2-1)*s.jitter

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

// extract copies the particle state into the reused snapshot buffers.
func (s *sim) extract() *points.Set {
	s.set.X = s.set.X[:0]
	s.set.Y = s.set.Y[:0]
	s.set.Weight = s.set.Weight[:0]
	s.set.Hsml = s.set.Hsml[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, _, body := query.Get()
		s.set.Append(pos.X, pos.Y, body.Weight, body.Hsml)
	}
	return s.set
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	grid, err := sph.NewGrid(cfg.Grid.Npix, cfg.Grid.HalfExtent)
	if err != nil {
		slog.Error("invalid grid geometry", "error", err)
		os.Exit(1)
	}
	splatter := sph.NewSplatter(cfg.Parallel.Workers)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "sphmap live")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	world := newSim(cfg, rngSeed)
	slog.Info("starting live demo", "particles", cfg.Live.Particles, "seed", rngSeed)

	v := viewer.New(grid)
	defer v.Close()

	var stats sph.Stats
	sinceSplat := math.MaxFloat64 // splat on the first frame
	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		world.step(dt)

		sinceSplat += dt
		if sinceSplat >= cfg.Live.Resplat {
			set := world.extract()
			grid.Reset()
			stats, err = splatter.Accumulate(grid, set.X, set.Y, set.Weight, set.Hsml)
			if err != nil {
				slog.Error("accumulation failed", "error", err)
				os.Exit(1)
			}
			v.MarkDirty()
			sinceSplat = 0
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		v.Draw(stats)
		rl.EndDrawing()
	}
}
