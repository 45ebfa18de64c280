// Package fkoch samples the Fischer-Koch S triply periodic minimal
// surface as a dense scalar volume. The surface is the zero level set of
//
//	f(x,y,z) = cos(2x)·sin(y)·cos(z) + cos(2y)·sin(z)·cos(x) + cos(2z)·sin(x)·cos(y)
//
// which approximates the true minimal surface well over [-π, π]³, one
// full period of the lattice. The render package extracts triangle
// meshes from sampled volumes.
package fkoch

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Errors returned by grid and volume operations. Callers test for
// them with errors.Is; returned errors wrap these with detail.
var (
	// ErrInvalidGrid indicates a degenerate sampling grid: fewer than
	// two samples per axis or inverted/empty bounds.
	ErrInvalidGrid = errors.New("invalid sampling grid")
	// ErrNonFinite indicates NaN or Inf where a finite value is required.
	ErrNonFinite = errors.New("non-finite value")
)

// Field3 is the interface to a 3d scalar field.
type Field3 interface {
	// Evaluate takes a point in 3D space as input and returns the
	// field value at the point.
	Evaluate(p r3.Vec) float64
	// Bounds returns the box over which the field is intended to
	// be sampled. Fields may be defined outside their bounds.
	Bounds() r3.Box
}

// FischerKochS is the Fischer-Koch S implicit field. Its zero level set
// is the surface. The field is defined for all of 3D space; Bounds
// returns one period of the lattice.
type FischerKochS struct{}

var _ Field3 = FischerKochS{}

// Evaluate returns the implicit equation value at p.
func (FischerKochS) Evaluate(p r3.Vec) float64 {
	sx, cx := math.Sincos(p.X)
	sy, cy := math.Sincos(p.Y)
	sz, cz := math.Sincos(p.Z)
	c2x := math.Cos(2 * p.X)
	c2y := math.Cos(2 * p.Y)
	c2z := math.Cos(2 * p.Z)
	return c2x*sy*cz + c2y*sz*cx + c2z*sx*cy
}

// Bounds returns the canonical [-π, π]³ period of the surface.
func (FischerKochS) Bounds() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: -math.Pi, Y: -math.Pi, Z: -math.Pi},
		Max: r3.Vec{X: math.Pi, Y: math.Pi, Z: math.Pi},
	}
}
