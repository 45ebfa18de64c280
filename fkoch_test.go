package fkoch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tpmsgo/fkoch"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFischerKochSOddSymmetry(t *testing.T) {
	// The implicit equation flips sign under point reflection, so the
	// zero level set is symmetric about the origin.
	f := fkoch.FischerKochS{}
	points := []r3.Vec{
		{X: 0.1, Y: -0.7, Z: 2.2},
		{X: 1, Y: 1, Z: 1},
		{X: -3, Y: 0.25, Z: 0},
		{X: math.Pi / 3, Y: -math.Pi / 5, Z: math.Pi / 7},
	}
	for _, p := range points {
		got := f.Evaluate(p)
		neg := f.Evaluate(r3.Scale(-1, p))
		if math.Abs(got+neg) > 1e-12 {
			t.Errorf("f(%v)=%g and f(-p)=%g are not opposite", p, got, neg)
		}
	}
}

func TestGridValidation(t *testing.T) {
	f := fkoch.FischerKochS{}
	for _, bad := range []fkoch.Grid{
		{Min: -1, Max: 1, Samples: 1},
		{Min: -1, Max: 1, Samples: 0},
		{Min: -1, Max: 1, Samples: -5},
		{Min: 1, Max: 1, Samples: 10},
		{Min: 2, Max: -2, Samples: 10},
		{Min: math.Inf(-1), Max: 0, Samples: 10},
	} {
		_, err := fkoch.Sample(f, bad)
		if !errors.Is(err, fkoch.ErrInvalidGrid) {
			t.Errorf("grid %+v: got %v, want ErrInvalidGrid", bad, err)
		}
	}
}

func TestGridAxisEndpoints(t *testing.T) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 30}
	axis := g.Axis()
	if len(axis) != g.Samples {
		t.Fatalf("axis has %d values, want %d", len(axis), g.Samples)
	}
	if axis[0] != g.Min {
		t.Errorf("axis start %g, want %g", axis[0], g.Min)
	}
	if axis[len(axis)-1] != g.Max {
		t.Errorf("axis end %g, want %g", axis[len(axis)-1], g.Max)
	}
	h := g.Spacing()
	for i, x := range axis {
		want := g.Min + float64(i)*h
		if math.Abs(x-want) > 1e-12 {
			t.Errorf("axis[%d] = %g, want %g", i, x, want)
		}
	}
}

func TestSampleIdempotent(t *testing.T) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 16}
	a, err := fkoch.Sample(fkoch.FischerKochS{}, g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := fkoch.Sample(fkoch.FischerKochS{}, g)
	if err != nil {
		t.Fatal(err)
	}
	n := g.Samples
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				if a.At(i, j, k) != b.At(i, j, k) {
					t.Fatalf("volume differs at (%d,%d,%d): %g != %g", i, j, k, a.At(i, j, k), b.At(i, j, k))
				}
			}
		}
	}
}

func TestSampleMatchesField(t *testing.T) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 5}
	v, err := fkoch.Sample(fkoch.FischerKochS{}, g)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Finite() {
		t.Fatal("sampled volume contains non-finite values")
	}
	f := fkoch.FischerKochS{}
	axis := g.Axis()
	for i := 0; i < g.Samples; i++ {
		for j := 0; j < g.Samples; j++ {
			for k := 0; k < g.Samples; k++ {
				want := f.Evaluate(r3.Vec{X: axis[i], Y: axis[j], Z: axis[k]})
				if v.At(i, j, k) != want {
					t.Fatalf("value at (%d,%d,%d) = %g, want %g", i, j, k, v.At(i, j, k), want)
				}
			}
		}
	}
}

func TestSampleMinimalGrid(t *testing.T) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 2}
	v, err := fkoch.Sample(fkoch.FischerKochS{}, g)
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 2 {
		t.Fatalf("volume side %d, want 2", v.Len())
	}
}

func TestVolumeMinMax(t *testing.T) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 20}
	v, err := fkoch.Sample(fkoch.FischerKochS{}, g)
	if err != nil {
		t.Fatal(err)
	}
	min, max := v.MinMax()
	// The equation is a sum of three products of sines and cosines, so
	// it is bounded by [-3, 3] and crosses zero inside one period.
	if min < -3 || max > 3 {
		t.Errorf("volume range [%g, %g] outside [-3, 3]", min, max)
	}
	if min > 0 || max < 0 {
		t.Errorf("volume range [%g, %g] does not cross zero", min, max)
	}
}
