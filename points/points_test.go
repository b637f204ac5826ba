package points

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRagged(t *testing.T) {
	s := &Set{
		X:      []float64{1, 2},
		Y:      []float64{1},
		Weight: []float64{1, 1},
		Hsml:   []float64{0.1, 0.1},
	}
	if err := s.Validate(); !errors.Is(err, ErrRagged) {
		t.Fatalf("err = %v, want ErrRagged", err)
	}
}

func TestUniformWeights(t *testing.T) {
	s := NewSet(2)
	s.Append(0, 0, 0, 0.1)
	s.Append(1, 1, 0, 0.1)
	s.UniformWeights()
	for k, w := range s.Weight {
		if w != 1 {
			t.Errorf("Weight[%d] = %g, want 1", k, w)
		}
	}
}

func TestClipToExtent(t *testing.T) {
	s := NewSet(3)
	s.Append(0.5, 5.0, 1, 0.1)  // kept: |x| < r
	s.Append(5.0, 0.5, 1, 0.1)  // kept: |y| < r
	s.Append(5.0, -5.0, 1, 0.1) // dropped: both out of range

	out := s.ClipToExtent(1.0)
	if out.Len() != 2 {
		t.Fatalf("Len = %d, want 2", out.Len())
	}
	if out.X[0] != 0.5 || out.X[1] != 5.0 {
		t.Errorf("unexpected survivors: %v", out.X)
	}
}

func TestEstimateHsml(t *testing.T) {
	// Collinear particles at x = 0, 1, 3.
	s := NewSet(3)
	s.Append(0, 0, 1, 0)
	s.Append(1, 0, 1, 0)
	s.Append(3, 0, 1, 0)

	if err := EstimateHsml(s, 1); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1, 2}
	for k := range want {
		if math.Abs(s.Hsml[k]-want[k]) > 1e-12 {
			t.Errorf("Hsml[%d] = %g, want %g", k, s.Hsml[k], want[k])
		}
	}

	// Second-nearest neighbor.
	if err := EstimateHsml(s, 2); err != nil {
		t.Fatal(err)
	}
	want = []float64{3, 2, 3}
	for k := range want {
		if math.Abs(s.Hsml[k]-want[k]) > 1e-12 {
			t.Errorf("k=2: Hsml[%d] = %g, want %g", k, s.Hsml[k], want[k])
		}
	}
}

func TestEstimateHsmlFewNeighbors(t *testing.T) {
	// Asking for more neighbors than exist falls back to the farthest
	// available one.
	s := NewSet(2)
	s.Append(0, 0, 1, 0)
	s.Append(0, 2, 1, 0)

	if err := EstimateHsml(s, 32); err != nil {
		t.Fatal(err)
	}
	for k := range s.Hsml {
		if math.Abs(s.Hsml[k]-2) > 1e-12 {
			t.Errorf("Hsml[%d] = %g, want 2", k, s.Hsml[k])
		}
	}
}

func TestEstimateHsmlRejectsBadK(t *testing.T) {
	s := NewSet(1)
	s.Append(0, 0, 1, 0)
	if err := EstimateHsml(s, 0); err == nil {
		t.Fatal("want error for k = 0")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	s := NewSet(2)
	s.Append(-0.5, 0.25, 2.0, 0.1)
	s.Append(1.5, -1.0, 0.5, 0.2)

	path := filepath.Join(t.TempDir(), "cloud.csv")
	if err := s.WriteCSV(path); err != nil {
		t.Fatal(err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	for k := 0; k < 2; k++ {
		if got.X[k] != s.X[k] || got.Y[k] != s.Y[k] || got.Weight[k] != s.Weight[k] || got.Hsml[k] != s.Hsml[k] {
			t.Errorf("particle %d: got (%g,%g,%g,%g), want (%g,%g,%g,%g)",
				k, got.X[k], got.Y[k], got.Weight[k], got.Hsml[k],
				s.X[k], s.Y[k], s.Weight[k], s.Hsml[k])
		}
	}
}

func TestReadCSVDefaultsWeights(t *testing.T) {
	// A position-only snapshot gets unit weights (number density).
	path := filepath.Join(t.TempDir(), "bare.csv")
	if err := os.WriteFile(path, []byte("x,y\n0.1,0.2\n-0.3,0.4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	for k, w := range s.Weight {
		if w != 1 {
			t.Errorf("Weight[%d] = %g, want 1", k, w)
		}
	}
	for k, h := range s.Hsml {
		if h != 0 {
			t.Errorf("Hsml[%d] = %g, want 0 until estimated", k, h)
		}
	}
}

func TestSynthetic(t *testing.T) {
	s := Synthetic(SyntheticOptions{N: 500, HalfExtent: 2.0}, 42)
	if s.Len() != 500 {
		t.Fatalf("Len = %d, want 500", s.Len())
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	for k := range s.X {
		if math.Abs(s.X[k]) > 2 || math.Abs(s.Y[k]) > 2 {
			t.Fatalf("particle %d outside frame: (%g, %g)", k, s.X[k], s.Y[k])
		}
		if s.Weight[k] <= 0 {
			t.Fatalf("Weight[%d] = %g, want positive", k, s.Weight[k])
		}
	}

	// Deterministic for a fixed seed.
	again := Synthetic(SyntheticOptions{N: 500, HalfExtent: 2.0}, 42)
	for k := range s.X {
		if s.X[k] != again.X[k] || s.Y[k] != again.Y[k] {
			t.Fatal("synthetic cloud is not deterministic for a fixed seed")
		}
	}
}
