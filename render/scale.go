// Package render exports accumulated density maps as heatmap images.
package render

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Scale maps raw accumulated pixel values to display intensity in
// [0, 1]. Simulation densities span many decades, so the usual choice
// is log intensity with the top of the range clipped at a high quantile
// rather than the single brightest pixel.
type Scale struct {
	log   bool
	hi    float64 // saturation level in raw units
	floor float64 // softening for the log transform
}

// NewScale fits a scale to the map values. clipQuantile in (0, 1)
// saturates above that quantile of the nonzero values; anything else
// saturates at the maximum.
func NewScale(z []float64, logScale bool, clipQuantile float64) Scale {
	nonzero := make([]float64, 0, len(z))
	hi := 0.0
	for _, v := range z {
		if v > 0 {
			nonzero = append(nonzero, v)
		}
		if v > hi {
			hi = v
		}
	}

	if clipQuantile > 0 && clipQuantile < 1 && len(nonzero) > 0 {
		sort.Float64s(nonzero)
		hi = stat.Quantile(clipQuantile, stat.Empirical, nonzero, nil)
	}

	return Scale{
		log:   logScale,
		hi:    hi,
		floor: hi * 1e-4,
	}
}

// Intensity returns the display intensity for a raw value.
func (s Scale) Intensity(v float64) float64 {
	if s.hi <= 0 {
		return 0
	}
	if v < 0 {
		v = 0
	}
	var u float64
	if s.log {
		u = math.Log10(1+v/s.floor) / math.Log10(1+s.hi/s.floor)
	} else {
		u = v / s.hi
	}
	if u > 1 {
		return 1
	}
	return u
}
