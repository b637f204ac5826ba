package sph

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// parallelThreshold is the minimum point count to fan out across
// workers. Below this the partial-grid reduction costs more than the
// splat itself.
const parallelThreshold = 2048

// Splatter accumulates particles into a grid using a pool of workers.
// Each worker splats a contiguous chunk of points into a private
// partial map; the partials are summed into the grid afterwards, so no
// two goroutines ever write the same pixel. The final values equal the
// serial accumulation up to floating-point summation order.
//
// A Splatter keeps its partial maps between calls and is not safe for
// concurrent use.
type Splatter struct {
	workers  int
	partials [][]float64
}

// NewSplatter creates a splatter with the given worker count.
// workers <= 0 selects GOMAXPROCS.
func NewSplatter(workers int) *Splatter {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Splatter{
		workers:  workers,
		partials: make([][]float64, workers),
	}
}

// Workers returns the worker count the splatter fans out to.
func (s *Splatter) Workers() int { return s.workers }

// Accumulate splats the particles into g, in parallel when the point
// count warrants it.
func (s *Splatter) Accumulate(g *Grid, x, y, weights, hsml []float64) (Stats, error) {
	return s.Add(g.X, g.Y, g.Z, g.NPix, g.NPix, x, y, weights, hsml, g.HalfExtent)
}

// Add is the parallel counterpart of the package-level Add, with the
// same contract and validation.
func (s *Splatter) Add(X, Y, Z []float64, nx, ny int, x0, y0, weights, hsml []float64, halfExtent float64) (Stats, error) {
	npoints := len(x0)
	if s.workers == 1 || npoints < parallelThreshold {
		return Add(X, Y, Z, nx, ny, x0, y0, weights, hsml, halfExtent)
	}

	var st Stats

	// Validate up front so no partial is touched on bad input.
	if nx <= 0 || ny <= 0 || halfExtent <= 0 {
		return Add(X, Y, Z, nx, ny, x0, y0, weights, hsml, halfExtent)
	}
	npixels := nx * ny
	if len(X) != npixels || len(Y) != npixels || len(Z) != npixels ||
		len(y0) != npoints || len(weights) != npoints || len(hsml) != npoints {
		return Add(X, Y, Z, nx, ny, x0, y0, weights, hsml, halfExtent)
	}

	chunk := (npoints + s.workers - 1) / s.workers
	stats := make([]Stats, s.workers)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		start := w * chunk
		end := min(start+chunk, npoints)
		if start >= end {
			s.partials[w] = s.partials[w][:0]
			continue
		}

		s.partials[w] = resizeZeroed(s.partials[w], npixels)
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			part := s.partials[w]
			for k := start; k < end; k++ {
				splatPoint(X, Y, part, nx, ny, x0[k], y0[k], weights[k], hsml[k], halfExtent, &stats[w])
			}
		}(w, start, end)
	}
	wg.Wait()

	for w := range s.partials {
		if len(s.partials[w]) == 0 {
			continue
		}
		floats.Add(Z, s.partials[w])
		st.add(stats[w])
	}
	return st, nil
}

// resizeZeroed returns buf grown to n elements, all zero.
func resizeZeroed(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}
