package fkoch

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Volume is a dense scalar field sampled on a Grid. Values are stored
// flat in i-major order: value (i,j,k) lives at (i*n+j)*n+k where n is
// the per-axis sample count. A Volume is immutable once returned by
// Sample; smoothing allocates a new Volume.
type Volume struct {
	grid Grid
	data []float64
}

// Sample evaluates f at every grid point and returns the sampled
// volume. Evaluation is independent per point and is spread over
// GOMAXPROCS goroutines by i-slice; results do not depend on the
// traversal or worker schedule.
func Sample(f Field3, g Grid) (*Volume, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n := g.Samples
	axis := g.Axis()
	data := make([]float64, n*n*n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// Each worker owns the i-slices congruent to w so writes
			// are disjoint.
			for i := w; i < n; i += workers {
				p := r3.Vec{X: axis[i]}
				base := i * n * n
				for j := 0; j < n; j++ {
					p.Y = axis[j]
					row := base + j*n
					for k := 0; k < n; k++ {
						p.Z = axis[k]
						data[row+k] = f.Evaluate(p)
					}
				}
			}
		}(w)
	}
	wg.Wait()
	return &Volume{grid: g, data: data}, nil
}

// Grid returns the sampling grid of the volume.
func (v *Volume) Grid() Grid { return v.grid }

// Len returns the per-axis sample count.
func (v *Volume) Len() int { return v.grid.Samples }

// At returns the value at grid index (i,j,k). Indices are not bounds
// checked beyond the slice access itself.
func (v *Volume) At(i, j, k int) float64 {
	n := v.grid.Samples
	return v.data[(i*n+j)*n+k]
}

// Finite reports whether every value in the volume is finite.
func (v *Volume) Finite() bool {
	for _, d := range v.data {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest values in the volume.
func (v *Volume) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, d := range v.data {
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	return min, max
}
