package render

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/tpmsgo/fkoch"
	"github.com/tpmsgo/fkoch/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMarchingCubes(t *testing.T) {
	max := 0
	for _, tri := range mcTriangleTable {
		if len(tri) > max {
			max = len(tri)
		}
	}
	got := max / 3
	if got != marchingCubesMaxTriangles {
		t.Errorf("mcTriangleTable has at most %d triangles, constant says %d", got, marchingCubesMaxTriangles)
	}
	for i, tri := range mcTriangleTable {
		if len(tri)%3 != 0 {
			t.Errorf("config %d has %d edge entries, not a multiple of 3", i, len(tri))
		}
		edges := 0
		for _, e := range tri {
			edges |= 1 << e
		}
		if edges != mcEdgeTable[i] {
			t.Errorf("config %d: triangle edges %#x disagree with edge table %#x", i, edges, mcEdgeTable[i])
		}
	}
}

// unitCorners returns the corners of the unit cube in table order.
func unitCorners() [8]r3.Vec {
	return [8]r3.Vec{
		cornerVec(0, 0, 0),
		cornerVec(1, 0, 0),
		cornerVec(1, 1, 0),
		cornerVec(0, 1, 0),
		cornerVec(0, 0, 1),
		cornerVec(1, 0, 1),
		cornerVec(1, 1, 1),
		cornerVec(0, 1, 1),
	}
}

func TestMCToTrianglesSingleCorner(t *testing.T) {
	p := unitCorners()
	v := [8]float64{1, 1, 1, 1, 1, 1, 1, 1}
	v[0] = -1
	var dst [marchingCubesMaxTriangles]Triangle3
	n := mcToTriangles(dst[:], p, v, 0)
	if n != 1 {
		t.Fatalf("one interior corner produced %d triangles, want 1", n)
	}
	// The cut plane passes through the midpoints of the three edges
	// meeting at corner 0.
	for _, vert := range dst[0].V {
		sum := vert.X + vert.Y + vert.Z
		if math.Abs(sum-0.5) > 1e-12 {
			t.Errorf("vertex %v not at an incident edge midpoint", vert)
		}
	}
}

func TestMCToTrianglesUniform(t *testing.T) {
	p := unitCorners()
	for _, val := range []float64{-1, 0, 1} {
		var v [8]float64
		for i := range v {
			v[i] = val
		}
		var dst [marchingCubesMaxTriangles]Triangle3
		if n := mcToTriangles(dst[:], p, v, 0); n != 0 {
			t.Errorf("uniform value %g produced %d triangles, want 0", val, n)
		}
	}
}

func TestMCInterpolateClamped(t *testing.T) {
	p1 := r3.Vec{X: 0}
	p2 := r3.Vec{X: 1}
	if got := mcInterpolate(p1, p2, 0, 1, 0); got != p1 {
		t.Errorf("crossing at first corner interpolated to %v", got)
	}
	if got := mcInterpolate(p1, p2, -1, 0, 0); got != p2 {
		t.Errorf("crossing at second corner interpolated to %v", got)
	}
	got := mcInterpolate(p1, p2, -1, 1, 0)
	if math.Abs(got.X-0.5) > 1e-12 {
		t.Errorf("symmetric crossing interpolated to %v, want midpoint", got)
	}
}

func TestGridMarcherEOF(t *testing.T) {
	v, err := fkoch.Sample(fkoch.FischerKochS{}, fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 4})
	if err != nil {
		t.Fatal(err)
	}
	r := NewGridMarcher(v, 0)
	buf := make([]Triangle3, 64)
	total := 0
	for {
		n, err := r.ReadTriangles(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total == 0 {
		t.Error("marcher produced no triangles at the zero level")
	}
	if n, err := r.ReadTriangles(buf); n != 0 || err != io.EOF {
		t.Errorf("read after EOF returned (%d, %v)", n, err)
	}
}

func TestGridMarcherSmallDst(t *testing.T) {
	v, err := fkoch.Sample(fkoch.FischerKochS{}, fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 6})
	if err != nil {
		t.Fatal(err)
	}
	want, err := RenderAll(NewGridMarcher(v, 0))
	if err != nil {
		t.Fatal(err)
	}
	// A destination shorter than one cell's worst case forces the
	// marcher through its overflow buffer.
	r := NewGridMarcher(v, 0)
	buf := make([]Triangle3, 1)
	var got []Triangle3
	for {
		n, err := r.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles through 1-slot reads, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("triangle %d differs between read sizes", i)
		}
	}
}

func TestSTLWriteReadback(t *testing.T) {
	v, err := fkoch.Sample(fkoch.FischerKochS{}, fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: 12})
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := ExtractSurface(v, IsoParams{})
	if err != nil {
		t.Fatal(err)
	}
	model := mesh.Model()
	var b bytes.Buffer
	if err := WriteSTL(&b, model); err != nil {
		t.Fatal(err)
	}
	got, err := readBinarySTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read back %d triangles, wrote %d", len(got), len(model))
	}
	const tol = 1e-6 // float32 storage
	for i := range got {
		for j := range got[i].V {
			if !d3.EqualWithin(got[i].V[j], model[i].V[j], tol) {
				t.Fatalf("triangle %d vertex %d: %v != %v", i, j, got[i].V[j], model[i].V[j])
			}
		}
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSTL(&b, nil); err == nil {
		t.Error("empty model should fail to write")
	}
}
