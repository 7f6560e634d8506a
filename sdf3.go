package vawt

import (
	"math"
	"strconv"

	"github.com/soypat/vawt/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type extrude3 struct {
	sdf     SDF2
	height  float64
	extrude ExtrudeFunc
	// lipschitz keeps the evaluated distance a lower bound for twisted extrusions.
	lipschitz float64
	bb        r3.Box
}

// Extrude3D does a linear extrude on an SDF2. The result is
// centered on the z=0 plane.
func Extrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		panic("nil argument to Extrude3D")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	s := extrude3{
		sdf:       sdf,
		height:    height / 2,
		extrude:   NormalExtrude,
		lipschitz: 1,
	}
	bb := sdf.Bounds()
	s.bb = r3.Box{Min: d3.FromR2(bb.Min, -s.height), Max: d3.FromR2(bb.Max, s.height)}
	return &s
}

// TwistExtrude3D extrudes an SDF2 while rotating by twist radians over the height of the extrusion.
func TwistExtrude3D(sdf SDF2, height, twist float64) SDF3 {
	if sdf == nil {
		panic("nil argument to TwistExtrude3D")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	s := extrude3{
		sdf:     sdf,
		height:  height / 2,
		extrude: TwistExtrude(height, twist),
	}
	// bounding box vertex farthest from the twist axis
	var l float64
	bb := sdf.Bounds()
	for _, v := range [4]r2.Vec{bb.Min, bb.Max, {X: bb.Min.X, Y: bb.Max.Y}, {X: bb.Max.X, Y: bb.Min.Y}} {
		l = math.Max(l, r2.Norm(v))
	}
	s.lipschitz = math.Hypot(1, l*twist/height)
	s.bb = r3.Box{Min: r3.Vec{X: -l, Y: -l, Z: -s.height}, Max: r3.Vec{X: l, Y: l, Z: s.height}}
	return &s
}

// Evaluate returns the minimum distance to an extrusion.
func (s *extrude3) Evaluate(p r3.Vec) float64 {
	// sdf for the projected 2d surface
	a := s.sdf.Evaluate(s.extrude(p)) / s.lipschitz
	// sdf for the extrusion region: z = [-height, height]
	b := math.Abs(p.Z) - s.height
	return math.Max(a, b)
}

// Bounds returns the bounding box for an extrusion.
func (s *extrude3) Bounds() r3.Box {
	return s.bb
}

type transform3 struct {
	sdf     SDF3
	inverse m44
	bb      r3.Box
}

// Transform3D applies a transformation matrix to an SDF3.
// Distance is *not* preserved with scaling.
func Transform3D(sdf SDF3, matrix m44) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	return &transform3{
		sdf:     sdf,
		inverse: matrix.Inverse(),
		bb:      matrix.MulBox(sdf.Bounds()),
	}
}

// Evaluate returns the minimum distance to a transformed SDF3.
func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.MulPosition(p))
}

// Bounds returns the bounding box of a transformed SDF3.
func (s *transform3) Bounds() r3.Box {
	return s.bb
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	min MinFunc
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects.
// Union3D will panic if fewer than two arguments are passed or if
// an argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3Union {
	if len(sdf) < 2 {
		panic("union require at least 2 sdfs")
	}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
	}
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	return &union3{sdf: sdf, min: math.Min, bb: r3.Box(bb)}
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *union3) SetMin(min MinFunc) {
	s.min = min
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
	bb  r3.Box
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D will panic if one any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3Diff {
	if s1 == nil || s0 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, max: math.Max, bb: s0.Bounds()}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *diff3) SetMax(max MaxFunc) {
	s.max = max
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *diff3) Bounds() r3.Box {
	return s.bb
}

// rotateCopy3 is a circular pattern of an SDF3 about the z-axis.
type rotateCopy3 struct {
	sdf SDF3
	// inverse rotations of each copy
	rot []m44
	min MinFunc
	bb  r3.Box
}

// RotateCopy3D returns num copies of an SDF3 evenly spaced about the z-axis.
// The first copy is the untransformed sdf.
func RotateCopy3D(sdf SDF3, num int) SDF3Union {
	if sdf == nil {
		panic("nil argument to RotateCopy3D")
	}
	if num < 1 {
		panic("invalid number of copies")
	}
	s := rotateCopy3{sdf: sdf, min: math.Min, rot: make([]m44, num)}
	theta := tau / float64(num)
	bb := d3.Box(sdf.Bounds())
	for i := range s.rot {
		m := RotateZ(float64(i) * theta)
		s.rot[i] = m.Inverse()
		bb = bb.Extend(d3.Box(m.MulBox(sdf.Bounds())))
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to the rotated copies.
func (s *rotateCopy3) Evaluate(p r3.Vec) float64 {
	d := s.sdf.Evaluate(p)
	for _, m := range s.rot[1:] {
		d = s.min(d, s.sdf.Evaluate(m.MulPosition(p)))
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *rotateCopy3) SetMin(min MinFunc) {
	s.min = min
}

// Bounds returns the bounding box of the rotated copies.
func (s *rotateCopy3) Bounds() r3.Box {
	return s.bb
}

// cylinder is the 3d signed distance object for a cylinder.
type cylinder struct {
	height float64
	radius float64
	bb     r3.Box
}

// Cylinder return an SDF3 for a cylinder along the z-axis centered on the origin.
func Cylinder(height, radius float64) SDF3 {
	if radius <= 0 || height <= 0 {
		panic("invalid cylinder dimensions")
	}
	s := cylinder{height: height / 2, radius: radius}
	d := r3.Vec{X: radius, Y: radius, Z: s.height}
	s.bb = r3.Box{Min: r3.Scale(-1, d), Max: d}
	return &s
}

// Evaluate returns the minimum distance to a cylinder.
func (s *cylinder) Evaluate(p r3.Vec) float64 {
	d := r2.Vec{X: math.Hypot(p.X, p.Y) - s.radius, Y: math.Abs(p.Z) - s.height}
	return math.Min(math.Max(d.X, d.Y), 0) + r2.Norm(r2.Vec{X: math.Max(d.X, 0), Y: math.Max(d.Y, 0)})
}

// Bounds returns the bounding box of a cylinder.
func (s *cylinder) Bounds() r3.Box {
	return s.bb
}
