package render

import (
	"fmt"
	"io"
	"math"

	"github.com/tpmsgo/fkoch"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh: Faces reference Vertices by
// position. A mesh with zero vertices and faces is valid and
// represents an empty surface.
type Mesh struct {
	Vertices []r3.Vec
	// Faces are vertex index triples, counterclockwise seen from the
	// triangle front.
	Faces [][3]int
}

// IsoParams configures isosurface extraction.
type IsoParams struct {
	// Level is the field value the surface is extracted at.
	Level float64
	// Sigma is the standard deviation in grid units of the Gaussian
	// volume smoothing applied before extraction. Zero disables
	// smoothing.
	Sigma float64
}

// ExtractSurface extracts the iso level surface of a sampled volume as
// an indexed mesh with vertices in the volume's domain coordinates.
// A level the volume never attains yields an empty mesh and no error.
func ExtractSurface(v *fkoch.Volume, par IsoParams) (*Mesh, error) {
	if math.IsNaN(par.Level) || math.IsInf(par.Level, 0) {
		return nil, fmt.Errorf("%w: iso level %g", fkoch.ErrNonFinite, par.Level)
	}
	if math.IsNaN(par.Sigma) || math.IsInf(par.Sigma, 0) || par.Sigma < 0 {
		return nil, fmt.Errorf("invalid smoothing sigma %g", par.Sigma)
	}
	if !v.Finite() {
		return nil, fmt.Errorf("%w: volume contains NaN or Inf", fkoch.ErrNonFinite)
	}
	if par.Sigma > 0 {
		v = v.Smoothed(par.Sigma)
	}
	model, err := RenderAll(NewGridMarcher(v, par.Level))
	if err != nil {
		return nil, err
	}
	m := meshFromModel(model)
	// Rescale from grid-index space into the sampled domain. The same
	// affine map per axis: domain = Min + index*Spacing.
	g := v.Grid()
	h := g.Spacing()
	origin := r3.Vec{X: g.Min, Y: g.Min, Z: g.Min}
	for i := range m.Vertices {
		m.Vertices[i] = r3.Add(origin, r3.Scale(h, m.Vertices[i]))
	}
	return m, nil
}

// weldTol is the vertex welding tolerance in grid-index units. Marching
// cubes places identical edge vertices for neighboring cells up to
// floating point rounding, so the tolerance only needs to absorb ulps;
// it stays far below any achievable triangle size.
const weldTol = 1e-9

// meshFromModel indexes a triangle soup into a Mesh, welding vertices
// closer than weldTol.
func meshFromModel(model []Triangle3) *Mesh {
	m := &Mesh{Faces: make([][3]int, 0, len(model))}
	// Vertex index cache on the welding grid.
	cache := make(map[[3]int64]int)
	ri := 1 / weldTol
	for _, tri := range model {
		var face [3]int
		for j, vert := range tri.V {
			vi := [3]int64{
				int64(math.Round(vert.X * ri)),
				int64(math.Round(vert.Y * ri)),
				int64(math.Round(vert.Z * ri)),
			}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(m.Vertices)
				cache[vi] = vertexIdx
				m.Vertices = append(m.Vertices, vert)
			}
			face[j] = vertexIdx
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			// collapsed by welding
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}

// Model returns the mesh as a triangle soup.
func (m *Mesh) Model() []Triangle3 {
	model := make([]Triangle3, len(m.Faces))
	for i, f := range m.Faces {
		model[i] = Triangle3{V: [3]r3.Vec{
			m.Vertices[f[0]],
			m.Vertices[f[1]],
			m.Vertices[f[2]],
		}}
	}
	return model
}

// Renderer returns a Renderer reading the mesh triangles, for use with
// CreateSTL and friends.
func (m *Mesh) Renderer() Renderer {
	return &meshReader{m: m}
}

type meshReader struct {
	m    *Mesh
	next int
}

func (r *meshReader) ReadTriangles(dst []Triangle3) (n int, err error) {
	if r.next == len(r.m.Faces) {
		return 0, io.EOF
	}
	for n < len(dst) && r.next < len(r.m.Faces) {
		f := r.m.Faces[r.next]
		dst[n] = Triangle3{V: [3]r3.Vec{
			r.m.Vertices[f[0]],
			r.m.Vertices[f[1]],
			r.m.Vertices[f[2]],
		}}
		n++
		r.next++
	}
	return n, nil
}
