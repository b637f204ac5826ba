// Package telemetry summarizes accumulation runs and appends them to a
// CSV run log.
package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sphmap/sph"
)

// RunStats holds the summary of one accumulation run.
type RunStats struct {
	Timestamp  string  `csv:"timestamp"`
	Npix       int     `csv:"npix"`
	HalfExtent float64 `csv:"half_extent"`

	Splatted int `csv:"splatted"`
	Skipped  int `csv:"skipped"`
	Culled   int `csv:"culled"`

	SplatMS      float64 `csv:"splat_ms"`
	PointsPerSec float64 `csv:"points_per_sec"`

	ZSum  float64 `csv:"z_sum"`
	ZMax  float64 `csv:"z_max"`
	ZMean float64 `csv:"z_mean"`
	ZP50  float64 `csv:"z_p50"`
	ZP90  float64 `csv:"z_p90"`
	ZP99  float64 `csv:"z_p99"`

	// Mass is the map total scaled by pixel area; for well-resolved
	// footprints it approximates the summed particle weights.
	Mass float64 `csv:"mass"`
}

// Summarize computes run statistics for an accumulated grid.
func Summarize(g *sph.Grid, st sph.Stats, elapsed time.Duration) RunStats {
	r := RunStats{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Npix:       g.NPix,
		HalfExtent: g.HalfExtent,
		Splatted:   st.Splatted,
		Skipped:    st.Skipped,
		Culled:     st.Culled,
		SplatMS:    float64(elapsed.Microseconds()) / 1000.0,
	}

	if sec := elapsed.Seconds(); sec > 0 {
		r.PointsPerSec = float64(st.Splatted+st.Skipped+st.Culled) / sec
	}

	n := len(g.Z)
	if n == 0 {
		return r
	}

	r.ZSum = floats.Sum(g.Z)
	r.ZMax = floats.Max(g.Z)
	r.ZMean = r.ZSum / float64(n)

	px := g.PixelSize()
	r.Mass = r.ZSum * px * px

	sorted := make([]float64, n)
	copy(sorted, g.Z)
	sort.Float64s(sorted)
	r.ZP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	r.ZP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	r.ZP99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)

	return r
}
