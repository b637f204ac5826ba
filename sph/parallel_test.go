package sph

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// randomCloud builds npoints random particles inside the unit frame.
func randomCloud(npoints int, seed int64) (x, y, w, h []float64) {
	rng := rand.New(rand.NewSource(seed))
	x = make([]float64, npoints)
	y = make([]float64, npoints)
	w = make([]float64, npoints)
	h = make([]float64, npoints)
	for k := 0; k < npoints; k++ {
		x[k] = rng.Float64()*2 - 1
		y[k] = rng.Float64()*2 - 1
		w[k] = rng.Float64() * 2
		h[k] = 0.01 + rng.Float64()*0.05
	}
	return x, y, w, h
}

func TestSplatterMatchesSerial(t *testing.T) {
	// Enough points to cross the parallel threshold.
	x, y, w, h := randomCloud(3*parallelThreshold, 11)

	serial, _ := NewGrid(64, 1.0)
	stSerial, err := serial.Accumulate(x, y, w, h)
	if err != nil {
		t.Fatal(err)
	}

	parallel, _ := NewGrid(64, 1.0)
	sp := NewSplatter(4)
	stParallel, err := sp.Accumulate(parallel, x, y, w, h)
	if err != nil {
		t.Fatal(err)
	}

	if stSerial != stParallel {
		t.Errorf("stats differ: serial=%+v parallel=%+v", stSerial, stParallel)
	}
	for n := range serial.Z {
		if math.Abs(serial.Z[n]-parallel.Z[n]) > 1e-9*(1+math.Abs(serial.Z[n])) {
			t.Fatalf("Z[%d]: serial=%g parallel=%g", n, serial.Z[n], parallel.Z[n])
		}
	}
}

func TestSplatterSmallSetStaysSerial(t *testing.T) {
	x, y, w, h := randomCloud(64, 3)

	want, _ := NewGrid(32, 1.0)
	if _, err := want.Accumulate(x, y, w, h); err != nil {
		t.Fatal(err)
	}

	got, _ := NewGrid(32, 1.0)
	sp := NewSplatter(8)
	if _, err := sp.Accumulate(got, x, y, w, h); err != nil {
		t.Fatal(err)
	}

	// Below the threshold the serial path runs, so values are
	// bit-identical.
	for n := range want.Z {
		if want.Z[n] != got.Z[n] {
			t.Fatalf("Z[%d]: want %g got %g", n, want.Z[n], got.Z[n])
		}
	}
}

func TestSplatterReuse(t *testing.T) {
	x, y, w, h := randomCloud(2*parallelThreshold, 5)
	sp := NewSplatter(4)

	first, _ := NewGrid(48, 1.0)
	if _, err := sp.Accumulate(first, x, y, w, h); err != nil {
		t.Fatal(err)
	}

	// Second use of the same splatter must not carry partial sums over.
	second, _ := NewGrid(48, 1.0)
	if _, err := sp.Accumulate(second, x, y, w, h); err != nil {
		t.Fatal(err)
	}

	for n := range first.Z {
		if first.Z[n] != second.Z[n] {
			t.Fatalf("Z[%d] differs across reuses: %g vs %g", n, first.Z[n], second.Z[n])
		}
	}
}

func TestSplatterValidates(t *testing.T) {
	x, y, w, h := randomCloud(2*parallelThreshold, 9)
	sp := NewSplatter(4)

	z := make([]float64, 16)
	_, err := sp.Add(make([]float64, 16), make([]float64, 16), z, 4, 4, x, y, w, h[:10], 1.0)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	for _, v := range z {
		if v != 0 {
			t.Fatal("Z mutated despite validation failure")
		}
	}
}

func TestNewSplatterDefaults(t *testing.T) {
	if got := NewSplatter(0).Workers(); got <= 0 {
		t.Errorf("Workers() = %d, want positive default", got)
	}
	if got := NewSplatter(3).Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
}
