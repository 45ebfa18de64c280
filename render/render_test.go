package render_test

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	"github.com/tpmsgo/fkoch"
	"github.com/tpmsgo/fkoch/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

const (
	benchQuality = 64
	// Pixel tolerance for image comparison. Rendering is deterministic
	// so identical meshes must produce identical pixels.
	imgDelta = 0
)

// sdfxSurface adapts the implicit equation to the sdfx interface so the
// two pipelines march the same field.
type sdfxSurface struct{}

func (sdfxSurface) Evaluate(p sdfxsdf.V3) float64 {
	return fkoch.FischerKochS{}.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (sdfxSurface) BoundingBox() sdfxsdf.Box3 {
	b := fkoch.FischerKochS{}.Bounds()
	return sdfxsdf.Box3{
		Min: sdfxsdf.V3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: sdfxsdf.V3{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

func BenchmarkSDFXFischerKoch(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_fkoch.stl")
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(sdfxSurface{}, benchQuality, output, &sdfxrender.MarchingCubesUniform{})
	}
}

func BenchmarkFischerKoch(b *testing.B) {
	output := filepath.Join(b.TempDir(), "fkoch.stl")
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: benchQuality}
	for i := 0; i < b.N; i++ {
		v, err := fkoch.Sample(fkoch.FischerKochS{}, g)
		if err != nil {
			b.Fatal(err)
		}
		mesh, err := render.ExtractSurface(v, render.IsoParams{})
		if err != nil {
			b.Fatal(err)
		}
		if err := render.CreateSTL(output, mesh.Renderer()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSample(b *testing.B) {
	g := fkoch.Grid{Min: -math.Pi, Max: math.Pi, Samples: benchQuality}
	for i := 0; i < b.N; i++ {
		if _, err := fkoch.Sample(fkoch.FischerKochS{}, g); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSavePNGDeterminism(t *testing.T) {
	if testing.Short() {
		t.Skip("rendering test skipped in short mode")
	}
	v := sampleField(t, 30)
	mesh, err := render.ExtractSurface(v, render.IsoParams{Sigma: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	png1 := filepath.Join(dir, "a.png")
	png2 := filepath.Join(dir, "b.png")
	view := render.DefaultView()
	if err := render.SavePNG(png1, mesh, view); err != nil {
		t.Fatal(err)
	}
	if err := render.SavePNG(png2, mesh, view); err != nil {
		t.Fatal(err)
	}
	if !equalImages(t, png1, png2) {
		t.Error("rendering the same mesh twice produced different images")
	}
}

func TestSavePNGEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := render.SavePNG(path, &render.Mesh{}, render.DefaultView()); err == nil {
		t.Error("empty mesh should fail to render")
	}
}

func equalImages(t *testing.T, png1, png2 string) bool {
	fp1, err := os.Open(png1)
	if err != nil {
		t.Fatal(err)
	}
	defer fp1.Close()
	fp2, err := os.Open(png2)
	if err != nil {
		t.Fatal(err)
	}
	defer fp2.Close()
	b1, err := io.ReadAll(fp1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := io.ReadAll(fp2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
