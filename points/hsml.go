package points

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// particle2 is a kd-tree point in the image plane.
type particle2 struct{ x, y float64 }

func (p particle2) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(particle2)
	if d == 0 {
		return p.x - q.x
	}
	return p.y - q.y
}

func (p particle2) Dims() int { return 2 }

// Distance returns the squared Euclidean distance; EstimateHsml takes
// the root once per particle.
func (p particle2) Distance(c kdtree.Comparable) float64 {
	q := c.(particle2)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type particles []particle2

func (p particles) Index(i int) kdtree.Comparable { return p[i] }
func (p particles) Len() int                      { return len(p) }
func (p particles) Pivot(d kdtree.Dim) int        { return plane{Dim: d, particles: p}.Pivot() }
func (p particles) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

type plane struct {
	kdtree.Dim
	particles
}

func (p plane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.particles[i].x < p.particles[j].x
	}
	return p.particles[i].y < p.particles[j].y
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.particles = p.particles[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.particles[i], p.particles[j] = p.particles[j], p.particles[i]
}

// EstimateHsml fills s.Hsml with the distance to each particle's k-th
// nearest neighbor (k=32 is the usual choice for simulation snapshots).
// Particles with fewer than k neighbors get the distance to the
// farthest one available; a single-particle set gets zero.
func EstimateHsml(s *Set, k int) error {
	if k <= 0 {
		return fmt.Errorf("points: neighbor count must be positive, got %d", k)
	}
	if err := s.Validate(); err != nil {
		return err
	}

	// The tree construction partitions its backing slice in place, so
	// query by fresh points to keep input order.
	ps := make(particles, s.Len())
	for i := range ps {
		ps[i] = particle2{x: s.X[i], y: s.Y[i]}
	}
	tree := kdtree.New(ps, false)

	for i := 0; i < s.Len(); i++ {
		// k+1 because the query point finds itself at distance zero.
		keep := kdtree.NewNKeeper(k + 1)
		tree.NearestSet(keep, particle2{x: s.X[i], y: s.Y[i]})

		// The keeper is seeded with an infinite sentinel that survives
		// when the set is smaller than k+1; take the largest finite
		// distance.
		worst := 0.0
		for _, cd := range keep.Heap {
			if !math.IsInf(cd.Dist, 1) && cd.Dist > worst {
				worst = cd.Dist
			}
		}
		s.Hsml[i] = math.Sqrt(worst)
	}
	return nil
}
