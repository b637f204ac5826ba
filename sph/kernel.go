// Package sph computes 2D binned density maps by splatting weighted
// point samples onto a regular pixel grid with a smoothed-particle
// hydrodynamics kernel. Contributions are purely additive, so maps can
// be accumulated across multiple calls or built in parallel and summed.
package sph

import "math"

// kernelNorm is the 2D normalization of the cubic spline defined over
// [0, h]: integrating Kernel(r, h) over the disk of radius h gives 1.
// The full prefactor is kernelNorm / h².
const kernelNorm = 40.0 / (7.0 * math.Pi)

// SupportMultiplier scales a particle's smoothing length to the kernel
// support radius actually used when splatting: both the bounding box
// and the kernel's h argument use SupportMultiplier*hsml, so the
// effective physical footprint radius is 2.8 times the stored smoothing
// length. Rendered images depend on this value; it is a constant, not a
// tunable.
const SupportMultiplier = 2.8

// Kernel evaluates the 2D cubic-spline smoothing kernel from Monaghan
// (1992), normalized over [0, h] as in Springel (2001), eq. (A.1).
// r is the distance from the particle center and h the smoothing
// length. The caller must guarantee h > 0.
func Kernel(r, h float64) float64 {
	x := r / h
	var w float64
	switch {
	case x <= 0.5:
		w = 1.0 - 6.0*x*x + 6.0*x*x*x
	case x <= 1.0:
		d := 1.0 - x
		w = 2.0 * d * d * d
	default:
		return 0.0
	}
	return kernelNorm / (h * h) * w
}
