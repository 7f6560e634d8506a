package render_test

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/soypat/vawt"
	"github.com/soypat/vawt/render"
	"github.com/soypat/vawt/turbine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	quality      = 40
	benchQuality = 300
)

func testShape() vawt.SDF3 {
	return vawt.Cylinder(2, 1)
}

// signedVolume is positive for a closed mesh with outward normals.
func signedVolume(model []render.Triangle3) float64 {
	var v float64
	for _, t := range model {
		v += r3.Dot(t.V[0], r3.Cross(t.V[1], t.V[2])) / 6
	}
	return v
}

func TestOctreeCylinder(t *testing.T) {
	s := testShape()
	model, err := render.RenderAll(render.NewOctreeRenderer(s, quality))
	require.NoError(t, err)
	require.NotEmpty(t, model)

	cell := 2.02 / quality
	outward := 0
	for _, tri := range model {
		for _, v := range tri.V {
			require.Less(t, math.Abs(s.Evaluate(v)), cell, "vertex %v far from surface", v)
		}
		c, n := tri.Centroid(), tri.Normal()
		h := 0.1 * cell
		if s.Evaluate(r3.Add(c, r3.Scale(h, n))) > s.Evaluate(r3.Sub(c, r3.Scale(h, n))) {
			outward++
		}
	}
	assert.GreaterOrEqual(t, float64(outward)/float64(len(model)), 0.98)
	assert.InDelta(t, 2*math.Pi, signedVolume(model), 0.05*2*math.Pi)

	bb := render.Bounds(model)
	assert.InDelta(t, 1, bb.Max.X, cell)
	assert.InDelta(t, -1, bb.Min.Z, cell)
}

func TestOctreeSmallBuffer(t *testing.T) {
	s := testShape()
	want, err := render.RenderAll(render.NewOctreeRenderer(s, 10))
	require.NoError(t, err)
	r := render.NewOctreeRenderer(s, 10)
	var got []render.Triangle3
	buf := make([]render.Triangle3, 5)
	for {
		n, err := r.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestSTLCreateWriteRead(t *testing.T) {
	s := testShape()
	path := filepath.Join(t.TempDir(), "cylinder.stl")
	require.NoError(t, render.CreateSTL(path, render.NewOctreeRenderer(s, quality)))
	bfile, err := os.ReadFile(path)
	require.NoError(t, err)

	model, err := render.RenderAll(render.NewOctreeRenderer(s, quality))
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, render.WriteSTL(&b, model))
	require.Equal(t, len(bfile), b.Len(), "WriteSTL and CreateSTL output length mismatch")
	assert.True(t, bytes.Equal(bfile, b.Bytes()), "WriteSTL and CreateSTL output mismatch")

	read, err := render.ReadSTL(bytes.NewReader(bfile))
	require.NoError(t, err)
	require.Len(t, read, len(model))
}

func TestSTLErrors(t *testing.T) {
	assert.ErrorIs(t, render.WriteSTL(&bytes.Buffer{}, nil), render.ErrEmptyModel)

	_, err := render.ReadSTL(bytes.NewReader(nil))
	assert.ErrorIs(t, err, render.ErrInvalidSTL)

	header := make([]byte, 84)
	_, err = render.ReadSTL(bytes.NewReader(header))
	assert.ErrorIs(t, err, render.ErrEmptyModel)

	binary.LittleEndian.PutUint32(header[80:], 1)
	_, err = render.ReadSTL(bytes.NewReader(header))
	assert.Error(t, err, "truncated triangle")

	tri := render.Triangle3{V: [3]r3.Vec{{}, {X: 1}, {Y: 1}}}
	var b bytes.Buffer
	require.NoError(t, render.WriteSTL(&b, []render.Triangle3{tri}))
	data := b.Bytes()
	binary.LittleEndian.PutUint32(data[84+12:], math.Float32bits(float32(math.NaN())))
	_, err = render.ReadSTL(bytes.NewReader(data))
	assert.ErrorIs(t, err, render.ErrInvalidSTL)

	b.Reset()
	degenerate := render.Triangle3{V: [3]r3.Vec{{}, {}, {Y: 1}}}
	require.NoError(t, render.WriteSTL(&b, []render.Triangle3{degenerate}))
	_, err = render.ReadSTL(&b)
	assert.ErrorIs(t, err, render.ErrInvalidSTL)
}

func TestTriangle3(t *testing.T) {
	tri := render.Triangle3{V: [3]r3.Vec{{}, {X: 2}, {Y: 2}}}
	assert.Equal(t, r3.Vec{Z: 1}, tri.Normal())
	assert.InDelta(t, 2, tri.Area(), 1e-15)
	assert.False(t, tri.Degenerate(1e-9))
	assert.True(t, tri.Degenerate(2))
}

func TestPreviewPNG(t *testing.T) {
	dir := t.TempDir()
	stlPath := filepath.Join(dir, "cylinder.stl")
	pngPath := filepath.Join(dir, "cylinder.png")
	require.NoError(t, render.CreateSTL(stlPath, render.NewOctreeRenderer(testShape(), 16)))

	view := render.IsometricView()
	view.Width, view.Height = 96, 64
	require.NoError(t, render.PreviewPNG(stlPath, pngPath, view))
	fp, err := os.Open(pngPath)
	require.NoError(t, err)
	defer fp.Close()
	img, err := png.Decode(fp)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	view.Width = 0
	assert.Error(t, render.PreviewPNG(stlPath, pngPath, view))
}

func BenchmarkShaft(b *testing.B) {
	output := filepath.Join(b.TempDir(), "our_shaft.stl")
	object := turbine.Shaft(turbine.DefaultParams())
	for i := 0; i < b.N; i++ {
		if err := render.CreateSTL(output, render.NewOctreeRenderer(object, benchQuality)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSDFXShaft(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // sdfx prints render progress
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_shaft.stl")
	object, err := sdfxShaft(turbine.DefaultParams())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

// sdfxShaft builds turbine.Shaft with sdfx primitives.
func sdfxShaft(p turbine.Params) (sdf.SDF3, error) {
	outer, err := sdf.Circle2D(p.ShaftDiameter / 2)
	if err != nil {
		return nil, err
	}
	hex := vawt.Nagon(6, p.HoleDiameter/2)
	m := vawt.Rotate2D(vawt.DtoR(-30))
	v := make([]sdf.V2, len(hex))
	for i := range hex {
		h := m.MulPosition(hex[i])
		v[i] = sdf.V2{X: h.X, Y: h.Y}
	}
	bore, err := sdf.Polygon2D(v)
	if err != nil {
		return nil, err
	}
	return sdf.Extrude3D(sdf.Difference2D(outer, bore), p.Height), nil
}

func TestSDFXShaftMatches(t *testing.T) {
	p := turbine.DefaultParams()
	ours := turbine.Shaft(p)
	theirs, err := sdfxShaft(p)
	require.NoError(t, err)
	bb := ours.Bounds()
	const n = 7
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			for k := 0; k <= n; k++ {
				q := r3.Vec{
					X: bb.Min.X + (bb.Max.X-bb.Min.X)*float64(i)/n*1.2 - 0.1*(bb.Max.X-bb.Min.X),
					Y: bb.Min.Y + (bb.Max.Y-bb.Min.Y)*float64(j)/n*1.2 - 0.1*(bb.Max.Y-bb.Min.Y),
					Z: bb.Min.Z + (bb.Max.Z-bb.Min.Z)*float64(k)/n*1.2 - 0.1*(bb.Max.Z-bb.Min.Z),
				}
				want := theirs.Evaluate(sdf.V3{X: q.X, Y: q.Y, Z: q.Z})
				assert.InDelta(t, want, ours.Evaluate(q), 1e-9, "at %v", q)
			}
		}
	}
}
