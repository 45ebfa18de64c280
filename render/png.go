package render

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tpmsgo/fkoch/internal/d3"
)

// ViewConfig positions the camera for SavePNG.
type ViewConfig struct {
	// what position (point) to look at
	Lookat r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eyepos r3.Vec
	Far    float64
	Near   float64
}

// DefaultView returns an isometric-ish view from the (+x,+y,+z) octant.
func DefaultView() ViewConfig {
	return ViewConfig{
		Up:     r3.Vec{Z: 1},
		Eyepos: d3.Elem(2.4),
		Near:   1,
		Far:    10,
	}
}

// SavePNG renders the mesh with a Phong shader and writes a PNG image
// to path. The mesh is fit to a bi-unit cube centered at the origin
// before rendering so any domain scale produces a framed image.
func SavePNG(path string, m *Mesh, view ViewConfig) error {
	if len(m.Faces) == 0 {
		return errors.New("cannot render empty mesh")
	}
	const (
		width, height = 1280, 960 // output size in pixels
		scale         = 2         // supersampling factor
		fovy          = 30        // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(view.Eyepos.X, view.Eyepos.Y, view.Eyepos.Z) // camera position
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)

	triangles := make([]*fauxgl.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		triangles[i] = fauxgl.NewTriangleForPoints(
			fauxglVec(m.Vertices[f[0]]),
			fauxglVec(m.Vertices[f[1]]),
			fauxglVec(m.Vertices[f[2]]),
		)
	}
	mesh := fauxgl.NewTriangleMesh(triangles)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	// render
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(width, height, image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}

func fauxglVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
