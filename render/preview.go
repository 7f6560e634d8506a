package render

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera used by PreviewPNG. The mesh is fit in a
// bi-unit cube centered at the origin before rendering.
type View struct {
	// Eye is the camera position.
	Eye r3.Vec
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the camera up direction.
	Up r3.Vec
	// Near and Far clip planes.
	Near, Far float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at a multiple of the output size and
	// downsamples for antialiasing. Values below 1 are treated as 1.
	Supersample int
}

// IsometricView returns a view looking down at the model from a corner
// with Z up.
func IsometricView() View {
	return View{
		Eye:         r3.Vec{X: 3, Y: -3, Z: 2.5},
		Up:          r3.Vec{Z: 1},
		Near:        1,
		Far:         10,
		Width:       800,
		Height:      800,
		Supersample: 2,
	}
}

// PreviewPNG renders a shaded image of the STL file at stlPath and saves
// it as a PNG at pngPath.
func PreviewPNG(stlPath, pngPath string, view View) error {
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("preview dimensions must be positive")
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const fovy = 30 // vertical field of view in degrees
	scale := max(view.Supersample, 1)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#468966")
	context.Shader = shader
	context.DrawMesh(mesh)

	image := context.Image()
	if scale > 1 {
		image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	}
	return fauxgl.SavePNG(pngPath, image)
}
