package points

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// SyntheticOptions controls synthetic cloud generation.
type SyntheticOptions struct {
	N          int     // particle count
	HalfExtent float64 // frame half-width the cloud is generated into
	Scale      float64 // noise periods across the frame (higher = smaller clumps)
	Contrast   float64 // acceptance exponent (higher = sparser clumps)
}

// Synthetic generates a clumpy particle cloud by rejection-sampling
// positions against a perlin noise field, for demos and tests. Weights
// are lognormal around 1; smoothing lengths are left zero for
// EstimateHsml to fill in.
func Synthetic(opts SyntheticOptions, seed int64) *Set {
	rng := rand.New(rand.NewSource(seed))
	noise := perlin.NewPerlin(2, 2, 3, seed)

	scale := opts.Scale
	if scale <= 0 {
		scale = 3.0
	}
	contrast := opts.Contrast
	if contrast <= 0 {
		contrast = 2.0
	}

	s := NewSet(opts.N)
	for s.Len() < opts.N {
		x := (rng.Float64()*2 - 1) * opts.HalfExtent
		y := (rng.Float64()*2 - 1) * opts.HalfExtent

		// Noise2D is roughly [-0.7, 0.7]; fold into [0, 1] and sharpen.
		u := (x/opts.HalfExtent + 1) / 2 * scale
		v := (y/opts.HalfExtent + 1) / 2 * scale
		p := (noise.Noise2D(u, v) + 0.7) / 1.4
		p = math.Pow(clamp01(p), contrast)

		if rng.Float64() < p {
			w := math.Exp(rng.NormFloat64() * 0.5)
			s.Append(x, y, w, 0)
		}
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
