package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sphmap/sph"
)

func TestScaleLinear(t *testing.T) {
	s := NewScale([]float64{0, 1, 2, 4}, false, 0)

	if got := s.Intensity(4); got != 1 {
		t.Errorf("Intensity(max) = %g, want 1", got)
	}
	if got := s.Intensity(2); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Intensity(max/2) = %g, want 0.5", got)
	}
	if got := s.Intensity(0); got != 0 {
		t.Errorf("Intensity(0) = %g, want 0", got)
	}
	if got := s.Intensity(-1); got != 0 {
		t.Errorf("Intensity(-1) = %g, want clamp to 0", got)
	}
}

func TestScaleClipQuantile(t *testing.T) {
	// One bright outlier among uniform values: a high quantile clip
	// saturates the outlier without dimming the rest.
	z := make([]float64, 100)
	for i := range z {
		z[i] = 1
	}
	z[0] = 1000

	s := NewScale(z, false, 0.95)
	if got := s.Intensity(1000); got != 1 {
		t.Errorf("Intensity(outlier) = %g, want saturated 1", got)
	}
	if got := s.Intensity(1); got < 0.9 {
		t.Errorf("Intensity(typical) = %g, want near 1 after clipping", got)
	}
}

func TestScaleLogMonotonic(t *testing.T) {
	s := NewScale([]float64{0, 0.001, 0.1, 10}, true, 0)
	prev := -1.0
	for _, v := range []float64{0, 0.001, 0.01, 0.1, 1, 10} {
		u := s.Intensity(v)
		if u < prev {
			t.Fatalf("log intensity decreases at %g", v)
		}
		if u < 0 || u > 1 {
			t.Fatalf("Intensity(%g) = %g outside [0,1]", v, u)
		}
		prev = u
	}
}

func TestScaleEmptyMap(t *testing.T) {
	s := NewScale(make([]float64, 16), true, 0.99)
	if got := s.Intensity(0); got != 0 {
		t.Errorf("Intensity on an empty map = %g, want 0", got)
	}
}

func TestWritePNG(t *testing.T) {
	g, err := sph.NewGrid(32, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Accumulate([]float64{0}, []float64{0}, []float64{1}, []float64{0.2}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "map.png")
	if err := WritePNG(g, path, Options{SizePx: 256, LogScale: true, ClipQuantile: 0.99}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("wrote an empty PNG")
	}
}

func TestGridXYZLayout(t *testing.T) {
	g, err := sph.NewGrid(4, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	d := gridXYZ{g: g, s: NewScale(g.Z, false, 0)}

	c, r := d.Dims()
	if c != 4 || r != 4 {
		t.Fatalf("Dims = (%d, %d), want (4, 4)", c, r)
	}
	if d.X(0) != -0.75 || d.X(3) != 0.75 {
		t.Errorf("X endpoints = %g, %g, want -0.75, 0.75", d.X(0), d.X(3))
	}
	if d.Y(0) != -0.75 || d.Y(3) != 0.75 {
		t.Errorf("Y endpoints = %g, %g, want -0.75, 0.75", d.Y(0), d.Y(3))
	}
}
