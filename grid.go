package fkoch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid describes uniform sampling of a cubic domain. The same bounds
// and sample count apply to all three axes. Sample i corresponds to
// coordinate Min + i*Spacing() with sample Samples-1 landing exactly
// on Max.
type Grid struct {
	// Min and Max are the inclusive domain bounds per axis.
	Min, Max float64
	// Samples is the number of grid points per axis.
	Samples int
}

// DefaultGrid returns the grid the original surface is plotted on:
// one full period of the lattice at resolution 50.
func DefaultGrid() Grid {
	return Grid{Min: -math.Pi, Max: math.Pi, Samples: 50}
}

func (g Grid) validate() error {
	if g.Samples < 2 {
		return fmt.Errorf("%w: got %d samples per axis, need at least 2", ErrInvalidGrid, g.Samples)
	}
	if !(g.Min < g.Max) || math.IsInf(g.Min, 0) || math.IsInf(g.Max, 0) {
		return fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidGrid, g.Min, g.Max)
	}
	return nil
}

// Spacing returns the distance between adjacent grid points.
func (g Grid) Spacing() float64 {
	return (g.Max - g.Min) / float64(g.Samples-1)
}

// Axis returns the Samples evenly spaced coordinate values covering
// [Min, Max], both ends included.
func (g Grid) Axis() []float64 {
	return floats.Span(make([]float64, g.Samples), g.Min, g.Max)
}
