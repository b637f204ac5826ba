package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pthm-cable/sphmap/sph"
)

// Options controls heatmap export.
type Options struct {
	Title        string
	SizePx       int     // output edge length in pixels
	LogScale     bool    // log10 intensity instead of linear
	ClipQuantile float64 // saturate above this quantile of nonzero values
}

// gridXYZ adapts a density grid plus intensity scale to
// plotter.GridXYZ. Column c maps to x and row r to y, matching the
// grid's row-major layout.
type gridXYZ struct {
	g *sph.Grid
	s Scale
}

func (d gridXYZ) Dims() (c, r int)   { return d.g.NPix, d.g.NPix }
func (d gridXYZ) Z(c, r int) float64 { return d.s.Intensity(d.g.Z[r*d.g.NPix+c]) }
func (d gridXYZ) X(c int) float64    { return d.g.X[c] }
func (d gridXYZ) Y(r int) float64    { return d.g.Y[r*d.g.NPix] }

// WritePNG renders the grid as a heatmap PNG.
func WritePNG(g *sph.Grid, path string, opts Options) error {
	scale := NewScale(g.Z, opts.LogScale, opts.ClipQuantile)

	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(gridXYZ{g: g, s: scale}, cm.Palette(255))
	hm.Min = 0
	hm.Max = 1

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	sizePx := opts.SizePx
	if sizePx <= 0 {
		sizePx = 1024
	}
	// vg lengths are in points; PNG output renders at 96 dpi, so 3/4
	// point per requested pixel.
	side := vg.Length(sizePx) * 3 / 4
	if err := p.Save(side, side, path); err != nil {
		return fmt.Errorf("saving heatmap %s: %w", path, err)
	}
	return nil
}
