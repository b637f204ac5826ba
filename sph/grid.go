package sph

import (
	"fmt"
	"math"
)

// CoordToPixel maps a physical coordinate to a pixel index on an axis
// with npix pixels spanning [-halfExtent, +halfExtent]. The result is
// floored (toward negative infinity, which matters for negative
// coordinates) and is not clamped: -halfExtent maps to 0 and
// +halfExtent maps to npix. The caller must guarantee halfExtent > 0.
func CoordToPixel(coord float64, npix int, halfExtent float64) int {
	return int(math.Floor(float64(npix)/2.0 + coord*float64(npix)/(2.0*halfExtent)))
}

// Grid is a square density map of NPix x NPix pixels spanning
// [-HalfExtent, +HalfExtent] on both axes, centered on the origin.
//
// X, Y and Z are flat row-major arrays of length NPix*NPix with pixel
// (i, j) at index i*NPix + j; X and Y hold the physical coordinates of
// each pixel center and Z accumulates the splatted quantity.
type Grid struct {
	NPix       int
	HalfExtent float64

	X, Y, Z []float64
}

// NewGrid allocates a grid with pixel-center coordinate arrays and a
// zeroed Z.
func NewGrid(npix int, halfExtent float64) (*Grid, error) {
	if npix <= 0 || halfExtent <= 0 {
		return nil, fmt.Errorf("%w: npix=%d halfExtent=%g", ErrBadGeometry, npix, halfExtent)
	}

	n := npix * npix
	g := &Grid{
		NPix:       npix,
		HalfExtent: halfExtent,
		X:          make([]float64, n),
		Y:          make([]float64, n),
		Z:          make([]float64, n),
	}

	// Pixel centers: xc[j] = -R + (j+0.5) * 2R/npix.
	step := 2.0 * halfExtent / float64(npix)
	for i := 0; i < npix; i++ {
		yc := -halfExtent + (float64(i)+0.5)*step
		for j := 0; j < npix; j++ {
			n := i*npix + j
			g.X[n] = -halfExtent + (float64(j)+0.5)*step
			g.Y[n] = yc
		}
	}
	return g, nil
}

// PixelSize returns the physical width of one pixel.
func (g *Grid) PixelSize() float64 {
	return 2.0 * g.HalfExtent / float64(g.NPix)
}

// Reset zeroes the accumulated map, keeping the coordinate arrays.
func (g *Grid) Reset() {
	for i := range g.Z {
		g.Z[i] = 0
	}
}

// At returns the accumulated value at pixel (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.Z[i*g.NPix+j]
}

// Accumulate splats the given particles into the grid. The slices are
// parallel per-particle arrays and must be of equal length.
func (g *Grid) Accumulate(x, y, weights, hsml []float64) (Stats, error) {
	return Add(g.X, g.Y, g.Z, g.NPix, g.NPix, x, y, weights, hsml, g.HalfExtent)
}
