// Command fkoch generates the Fischer-Koch S surface and writes it out
// as a binary STL model and/or a shaded PNG image.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tpmsgo/fkoch"
	"github.com/tpmsgo/fkoch/render"
)

const (
	minResolution     = 30
	maxResolution     = 100
	defaultResolution = 50
)

func main() {
	var (
		res     = flag.Int("res", 0, "grid resolution per axis, 30 to 100 (0 prompts)")
		iso     = flag.Float64("iso", 0, "iso level the surface is extracted at")
		sigma   = flag.Float64("sigma", 0.5, "gaussian smoothing sigma in grid units, 0 disables")
		stlPath = flag.String("stl", "", "write the mesh to this STL file")
		pngPath = flag.String("png", "fischer_koch_s.png", "render the mesh to this PNG file (empty disables)")
	)
	flag.Parse()
	log.SetFlags(0)

	resolution := *res
	if resolution == 0 {
		resolution = promptResolution()
	}
	resolution = clamp(resolution, minResolution, maxResolution)

	grid := fkoch.DefaultGrid()
	grid.Samples = resolution
	log.Printf("sampling %dx%dx%d grid over [%g, %g]...", resolution, resolution, resolution, grid.Min, grid.Max)
	vol, err := fkoch.Sample(fkoch.FischerKochS{}, grid)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("extracting isosurface...")
	mesh, err := render.ExtractSurface(vol, render.IsoParams{Level: *iso, Sigma: *sigma})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("vertices: %d", len(mesh.Vertices))
	log.Printf("faces: %d", len(mesh.Faces))
	if len(mesh.Faces) == 0 {
		log.Fatalf("surface does not cross level %g anywhere in the volume", *iso)
	}

	if *stlPath != "" {
		if err := render.CreateSTL(*stlPath, mesh.Renderer()); err != nil {
			log.Fatal(err)
		}
		log.Printf("mesh saved to: %s", *stlPath)
	}
	if *pngPath != "" {
		if err := render.SavePNG(*pngPath, mesh, render.DefaultView()); err != nil {
			log.Fatal(err)
		}
		log.Printf("plot saved to: %s", *pngPath)
	}
}

// promptResolution asks on stdin, falling back to the default on empty
// or invalid input.
func promptResolution() int {
	fmt.Fprintf(os.Stderr, "Enter grid resolution (%d-%d, default=%d): ", minResolution, maxResolution, defaultResolution)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return defaultResolution
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultResolution
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "using default resolution: %d\n", defaultResolution)
		return defaultResolution
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
