// Package points handles particle snapshots for density mapping:
// parallel per-particle arrays, CSV input and output, smoothing-length
// estimation and synthetic test clouds.
package points

import (
	"errors"
	"fmt"
)

// ErrRagged reports per-particle slices of inconsistent lengths.
var ErrRagged = errors.New("points: ragged particle arrays")

// Set holds one particle snapshot as parallel arrays. Index k across
// all four slices describes one particle: position, splat weight (mass,
// flux, ...) and smoothing length in the same units as the positions.
type Set struct {
	X, Y   []float64
	Weight []float64
	Hsml   []float64
}

// NewSet allocates an empty snapshot with capacity for n particles.
func NewSet(n int) *Set {
	return &Set{
		X:      make([]float64, 0, n),
		Y:      make([]float64, 0, n),
		Weight: make([]float64, 0, n),
		Hsml:   make([]float64, 0, n),
	}
}

// Len returns the particle count.
func (s *Set) Len() int { return len(s.X) }

// Append adds one particle.
func (s *Set) Append(x, y, weight, hsml float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
	s.Weight = append(s.Weight, weight)
	s.Hsml = append(s.Hsml, hsml)
}

// Validate checks that all per-particle arrays have equal length.
func (s *Set) Validate() error {
	n := len(s.X)
	if len(s.Y) != n || len(s.Weight) != n || len(s.Hsml) != n {
		return fmt.Errorf("%w: x=%d y=%d weight=%d hsml=%d",
			ErrRagged, n, len(s.Y), len(s.Weight), len(s.Hsml))
	}
	return nil
}

// UniformWeights sets every particle weight to 1, so the accumulated
// map is a number density.
func (s *Set) UniformWeights() {
	for i := range s.Weight {
		s.Weight[i] = 1.0
	}
}

// ClipToExtent returns a new set without particles that are out of
// range on both axes. The condition keeps a particle when |x| < r or
// |y| < r, matching the upstream pipeline's coarse cull; the splat
// itself clamps exactly, so the few survivors with one large coordinate
// are culled there.
func (s *Set) ClipToExtent(halfExtent float64) *Set {
	out := NewSet(s.Len())
	for k := range s.X {
		if abs(s.X[k]) < halfExtent || abs(s.Y[k]) < halfExtent {
			out.Append(s.X[k], s.Y[k], s.Weight[k], s.Hsml[k])
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
