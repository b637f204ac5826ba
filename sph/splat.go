package sph

import (
	"fmt"
	"math"
)

// Stats reports what a single accumulation pass did.
type Stats struct {
	Splatted int // points whose footprint was added to the map
	Skipped  int // points with hsml <= 0, dropped entirely
	Culled   int // points whose clamped pixel range was empty
}

func (s *Stats) add(o Stats) {
	s.Splatted += o.Splatted
	s.Skipped += o.Skipped
	s.Culled += o.Culled
}

// Add splats npoints particles into the flat map Z, which the caller
// must supply zero-initialized (or carrying a previous accumulation to
// extend). X and Y give the physical coordinates of each pixel center
// in the same row-major layout as Z: pixel (i, j) at index i*ny + j,
// with i clamped against ny and j against nx. x0, y0, weights and hsml
// are parallel per-particle arrays.
//
// For each particle the kernel support radius is
// SupportMultiplier*hsml[k]; pixels inside the clamped bounding box of
// that radius receive weights[k] * Kernel(r, h) where r is the distance
// from the particle to the pixel center. Particles entirely outside the
// frame contribute nothing and particles with hsml[k] <= 0 are skipped.
//
// Validation failures (non-positive geometry, mismatched lengths)
// return before any write to Z.
func Add(X, Y, Z []float64, nx, ny int, x0, y0, weights, hsml []float64, halfExtent float64) (Stats, error) {
	var st Stats

	if nx <= 0 || ny <= 0 || halfExtent <= 0 {
		return st, fmt.Errorf("%w: nx=%d ny=%d halfExtent=%g", ErrBadGeometry, nx, ny, halfExtent)
	}
	npixels := nx * ny
	if len(X) != npixels || len(Y) != npixels || len(Z) != npixels {
		return st, fmt.Errorf("%w: len(X)=%d len(Y)=%d len(Z)=%d want nx*ny=%d",
			ErrLengthMismatch, len(X), len(Y), len(Z), npixels)
	}
	npoints := len(x0)
	if len(y0) != npoints || len(weights) != npoints || len(hsml) != npoints {
		return st, fmt.Errorf("%w: len(x0)=%d len(y0)=%d len(weights)=%d len(hsml)=%d",
			ErrLengthMismatch, npoints, len(y0), len(weights), len(hsml))
	}

	for k := 0; k < npoints; k++ {
		splatPoint(X, Y, Z, nx, ny, x0[k], y0[k], weights[k], hsml[k], halfExtent, &st)
	}
	return st, nil
}

// splatPoint adds one particle's smoothed footprint to Z.
func splatPoint(X, Y, Z []float64, nx, ny int, px, py, w, hs, halfExtent float64, st *Stats) {
	if hs <= 0 {
		st.Skipped++
		return
	}
	h := SupportMultiplier * hs

	imin := CoordToPixel(py-h, ny, halfExtent)
	imax := CoordToPixel(py+h, ny, halfExtent)
	jmin := CoordToPixel(px-h, nx, halfExtent)
	jmax := CoordToPixel(px+h, nx, halfExtent)
	imin = max(imin, 0)
	imax = min(imax, ny-1)
	jmin = max(jmin, 0)
	jmax = min(jmax, nx-1)
	if imin > imax || jmin > jmax {
		st.Culled++
		return
	}

	for i := imin; i <= imax; i++ {
		for j := jmin; j <= jmax; j++ {
			n := i*ny + j
			dx := X[n] - px
			dy := Y[n] - py
			r := math.Sqrt(dx*dx + dy*dy)
			Z[n] += w * Kernel(r, h)
		}
	}
	st.Splatted++
}
