package render

import (
	"io"

	"github.com/tpmsgo/fkoch"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridMarcher renders a sampled volume using marching cubes over the
// uniform grid, one cell per 8 neighboring samples, scanned in index
// order. Triangles are emitted with vertices in fractional grid-index
// coordinates; ExtractSurface maps them into the volume's domain.
type gridMarcher struct {
	vol   *fkoch.Volume
	level float64
	// cell is the next cell in the (n-1)³ scan.
	cell      int
	unwritten triangle3Buffer
}

// NewGridMarcher returns a marching cubes Renderer reading the iso
// level surface out of v. Vertices are produced in grid-index space:
// index 0 up to n-1 per axis, fractional on cell edges.
func NewGridMarcher(v *fkoch.Volume, level float64) Renderer {
	return &gridMarcher{
		vol:       v,
		level:     level,
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, 64)},
	}
}

// ReadTriangles writes triangles rendered from the volume into the
// argument buffer. It returns the number written and io.EOF once the
// scan is complete.
func (g *gridMarcher) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if g.unwritten.Len() > 0 {
		n += g.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	m := g.vol.Len() - 1
	cells := m * m * m
	if g.cell == cells {
		// Done rendering the volume.
		return n, io.EOF
	}
	for g.cell < cells {
		if n+marchingCubesMaxTriangles > len(dst) {
			// Not enough room in dst for the worst case cell; stage
			// through the unwritten buffer.
			var tmp [marchingCubesMaxTriangles]Triangle3
			nt := g.marchCell(tmp[:], g.cell)
			g.cell++
			g.unwritten.Write(tmp[:nt])
			n += g.unwritten.Read(dst[n:])
			return n, nil
		}
		n += g.marchCell(dst[n:], g.cell)
		g.cell++
	}
	return n, nil
}

// marchCell runs marching cubes on one cell, writing any triangles
// found to dst. Corner order matches the marching cubes tables: the
// bottom z face counterclockwise, then the top.
func (g *gridMarcher) marchCell(dst []Triangle3, cell int) int {
	m := g.vol.Len() - 1
	i := cell / (m * m)
	j := (cell / m) % m
	k := cell % m
	corners := [8]r3.Vec{
		cornerVec(i, j, k),
		cornerVec(i+1, j, k),
		cornerVec(i+1, j+1, k),
		cornerVec(i, j+1, k),
		cornerVec(i, j, k+1),
		cornerVec(i+1, j, k+1),
		cornerVec(i+1, j+1, k+1),
		cornerVec(i, j+1, k+1),
	}
	values := [8]float64{
		g.vol.At(i, j, k),
		g.vol.At(i+1, j, k),
		g.vol.At(i+1, j+1, k),
		g.vol.At(i, j+1, k),
		g.vol.At(i, j, k+1),
		g.vol.At(i+1, j, k+1),
		g.vol.At(i+1, j+1, k+1),
		g.vol.At(i, j+1, k+1),
	}
	return mcToTriangles(dst, corners, values, g.level)
}

func cornerVec(i, j, k int) r3.Vec {
	return r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}
}
