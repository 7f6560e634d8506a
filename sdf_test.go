package vawt

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func square(side float64) []r2.Vec {
	h := side / 2
	return []r2.Vec{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
}

func TestPolygonDistance(t *testing.T) {
	sq := Polygon(square(2))
	assert.InDelta(t, -1, sq.Evaluate(r2.Vec{}), 1e-12)
	assert.InDelta(t, 1, sq.Evaluate(r2.Vec{X: 2}), 1e-12)
	assert.InDelta(t, math.Sqrt2, sq.Evaluate(r2.Vec{X: 2, Y: 2}), 1e-12)
	assert.InDelta(t, 0, sq.Evaluate(r2.Vec{X: 1, Y: 0.3}), 1e-12)

	// Clockwise winding gives the same field.
	v := square(2)
	cw := Polygon([]r2.Vec{v[3], v[2], v[1], v[0]})
	for _, p := range []r2.Vec{{}, {X: 0.5, Y: -0.2}, {X: 3, Y: 1}} {
		assert.InDelta(t, sq.Evaluate(p), cw.Evaluate(p), 1e-12)
	}
	bb := sq.Bounds()
	assert.Equal(t, r2.Vec{X: -1, Y: -1}, bb.Min)
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, bb.Max)
}

func TestPolygonDuplicates(t *testing.T) {
	v := square(2)
	p := Polygon([]r2.Vec{v[0], v[0], v[1], v[2], v[2], v[3], v[0]})
	assert.Len(t, p.(*polygon).Vertices(), 5)
	assert.InDelta(t, -1, p.Evaluate(r2.Vec{}), 1e-12)
	assert.Panics(t, func() { Polygon([]r2.Vec{{}, {X: 1}, {X: 1}, {}}) })
}

func TestCircleAndNagon(t *testing.T) {
	c := Circle(2)
	assert.InDelta(t, -2, c.Evaluate(r2.Vec{}), 1e-12)
	assert.InDelta(t, 1, c.Evaluate(r2.Vec{Y: 3}), 1e-12)
	assert.Panics(t, func() { Circle(0) })

	hex := Nagon(6, 1)
	require.Len(t, hex, 6)
	for i, v := range hex {
		assert.InDelta(t, 1, r2.Norm(v), 1e-12)
		want := float64(i) * math.Pi / 3
		got := math.Atan2(v.Y, v.X)
		assert.InDelta(t, 0, SawTooth(got-want, tau), 1e-12)
	}
	// Inradius of a unit hexagon is cos(30deg).
	assert.InDelta(t, -math.Cos(DtoR(30)), Polygon(hex).Evaluate(r2.Vec{}), 1e-12)
	assert.Panics(t, func() { Nagon(2, 1) })
}

func TestBooleans2D(t *testing.T) {
	ring := Difference2D(Circle(2), Circle(1))
	assert.Greater(t, ring.Evaluate(r2.Vec{}), 0.0)
	assert.Less(t, ring.Evaluate(r2.Vec{X: 1.5}), 0.0)
	assert.Greater(t, ring.Evaluate(r2.Vec{X: 2.5}), 0.0)

	u := Union2D(Transform2D(Circle(1), Translate2D(r2.Vec{X: -2})), Transform2D(Circle(1), Translate2D(r2.Vec{X: 2})))
	assert.Less(t, u.Evaluate(r2.Vec{X: -2}), 0.0)
	assert.Less(t, u.Evaluate(r2.Vec{X: 2}), 0.0)
	assert.InDelta(t, 1, u.Evaluate(r2.Vec{}), 1e-12)
	bb := u.Bounds()
	assert.InDelta(t, -3, bb.Min.X, 1e-12)
	assert.InDelta(t, 3, bb.Max.X, 1e-12)
	// A fillet pulls the surface towards the gap.
	u.SetMin(PolyMin(1))
	assert.Less(t, u.Evaluate(r2.Vec{}), 1.0)

	grown := Offset2D(Circle(1), 0.5)
	assert.InDelta(t, -1.5, grown.Evaluate(r2.Vec{}), 1e-12)
	assert.InDelta(t, 1.5, grown.Bounds().Max.X, 1e-12)
}

func TestTransform2D(t *testing.T) {
	sq := Polygon(square(2))
	m := Translate2D(r2.Vec{X: 5}).Mul(Rotate2D(DtoR(45)))
	rot := Transform2D(sq, m)
	assert.InDelta(t, -1, rot.Evaluate(r2.Vec{X: 5}), 1e-12)
	// Corner of the rotated square now lies on the x axis.
	assert.InDelta(t, 0, rot.Evaluate(r2.Vec{X: 5 + math.Sqrt2}), 1e-12)
	bb := rot.Bounds()
	assert.InDelta(t, 5-math.Sqrt2, bb.Min.X, 1e-12)
	assert.InDelta(t, math.Sqrt2, bb.Max.Y, 1e-12)

	scaled := Transform2D(Circle(1), Scale2D(r2.Vec{X: 2, Y: 1}))
	assert.InDelta(t, 0, scaled.Evaluate(r2.Vec{X: 2}), 1e-12)
	assert.Panics(t, func() { Transform2D(Circle(1), Scale2D(r2.Vec{})) })
}

func TestExtrude3D(t *testing.T) {
	e := Extrude3D(Circle(1), 4)
	assert.InDelta(t, -1, e.Evaluate(r3.Vec{}), 1e-12)
	assert.InDelta(t, 1, e.Evaluate(r3.Vec{Z: 3}), 1e-12)
	bb := e.Bounds()
	assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: -2}, bb.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 2}, bb.Max)
	assert.Panics(t, func() { Extrude3D(nil, 1) })
}

func TestTwistExtrude3D(t *testing.T) {
	bar := Polygon([]r2.Vec{{X: 0, Y: -0.1}, {X: 2, Y: -0.1}, {X: 2, Y: 0.1}, {X: 0, Y: 0.1}})
	tw := TwistExtrude3D(bar, 2, math.Pi/2)
	// Mid height is untwisted.
	assert.Less(t, tw.Evaluate(r3.Vec{X: 1}), 0.0)
	// At the top the section has turned a quarter of the total twist.
	top := Rotate2D(-math.Pi / 4).MulPosition(r2.Vec{X: 1.5})
	assert.Less(t, tw.Evaluate(r3.Vec{X: top.X, Y: top.Y, Z: 0.99}), 0.0)
	assert.Greater(t, tw.Evaluate(r3.Vec{X: 1.5, Z: 0.99}), 0.0)
	bb := tw.Bounds()
	assert.GreaterOrEqual(t, bb.Max.X, 2.0)
	assert.LessOrEqual(t, bb.Min.Y, -2.0)
}

func TestBooleans3D(t *testing.T) {
	tube := Difference3D(Cylinder(2, 2), Cylinder(4, 1))
	assert.Greater(t, tube.Evaluate(r3.Vec{}), 0.0)
	assert.Less(t, tube.Evaluate(r3.Vec{X: 1.5}), 0.0)
	assert.InDelta(t, 0.5, tube.Evaluate(r3.Vec{X: 2.5}), 1e-12)

	u := Union3D(tube, Transform3D(Cylinder(1, 0.5), Translate3D(r3.Vec{Z: 3})))
	assert.Less(t, u.Evaluate(r3.Vec{Z: 3}), 0.0)
	assert.InDelta(t, 3.5, u.Bounds().Max.Z, 1e-12)
	assert.Panics(t, func() { Union3D(tube) })
	assert.Panics(t, func() { Difference3D(tube, nil) })
}

func TestCylinderDistance(t *testing.T) {
	c := Cylinder(2, 1)
	assert.InDelta(t, -1, c.Evaluate(r3.Vec{}), 1e-12)
	assert.InDelta(t, 1, c.Evaluate(r3.Vec{X: 2}), 1e-12)
	assert.InDelta(t, 1, c.Evaluate(r3.Vec{Z: 2}), 1e-12)
	assert.InDelta(t, math.Sqrt2, c.Evaluate(r3.Vec{X: 2, Z: 2}), 1e-12)
}

func TestCylinderMatchesSDFX(t *testing.T) {
	ours := Cylinder(3, 0.75)
	theirs, err := sdf.Cylinder3D(3, 0.75, 0)
	require.NoError(t, err)
	for _, p := range []r3.Vec{
		{}, {X: 0.5, Z: 1}, {X: 1, Y: 1}, {Z: 2}, {X: 1, Y: -1, Z: -2}, {X: 0.7, Y: 0.1, Z: 1.49},
	} {
		assert.InDelta(t, theirs.Evaluate(sdf.V3{X: p.X, Y: p.Y, Z: p.Z}), ours.Evaluate(p), 1e-12, "at %v", p)
	}
}

func TestRotateCopy3D(t *testing.T) {
	blob := Transform3D(Cylinder(1, 0.5), Translate3D(r3.Vec{X: 3}))
	rc := RotateCopy3D(blob, 4)
	for i := 0; i < 4; i++ {
		p := RotateZ(float64(i) * math.Pi / 2).MulPosition(r3.Vec{X: 3})
		assert.InDelta(t, -0.5, rc.Evaluate(p), 1e-9, "copy %d", i)
	}
	assert.Greater(t, rc.Evaluate(r3.Vec{}), 0.0)
	bb := rc.Bounds()
	assert.InDelta(t, -3.5, bb.Min.X, 1e-9)
	assert.InDelta(t, 3.5, bb.Max.Y, 1e-9)
	assert.Panics(t, func() { RotateCopy3D(blob, 0) })
}

func TestMatrices(t *testing.T) {
	m := Translate3D(r3.Vec{X: 1, Y: 2, Z: 3}).Mul(RotateZ(math.Pi / 2)).Mul(Scale3D(r3.Vec{X: 2, Y: 2, Z: 2}))
	p := r3.Vec{X: 1}
	q := m.MulPosition(p)
	assert.InDelta(t, 1, q.X, 1e-12)
	assert.InDelta(t, 4, q.Y, 1e-12)
	assert.InDelta(t, 3, q.Z, 1e-12)
	back := m.Inverse().MulPosition(q)
	assert.InDelta(t, 1, back.X, 1e-12)
	assert.InDelta(t, 0, back.Y, 1e-12)
	assert.InDelta(t, 0, back.Z, 1e-12)

	id := Identity2D().Mul(Rotate2D(1)).Mul(Rotate2D(-1))
	v := id.MulPosition(r2.Vec{X: 3, Y: -2})
	assert.InDelta(t, 3, v.X, 1e-12)
	assert.InDelta(t, -2, v.Y, 1e-12)
	assert.Equal(t, r3.Vec{X: 1}, Identity3D().MulPosition(r3.Vec{X: 1}))
}

func TestUtils(t *testing.T) {
	assert.InDelta(t, math.Pi, DtoR(180), 1e-15)
	assert.InDelta(t, 90, RtoD(math.Pi/2), 1e-12)
	assert.InDelta(t, 0.5, SawTooth(2.5, 2), 1e-12)
	assert.InDelta(t, -1, SawTooth(1, 2), 1e-12)
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	// Far apart values are unaffected by blending.
	assert.Equal(t, 1.0, PolyMin(0.1)(1, 5))
	assert.Equal(t, 5.0, PolyMax(0.1)(1, 5))
	n := Normal3(Cylinder(2, 1), r3.Vec{X: 1}, 1e-6)
	assert.InDelta(t, 1, n.X, 1e-6)
}
