package vawt

import (
	"github.com/soypat/vawt/internal/d2"
	"github.com/soypat/vawt/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// m33 is a 2D homogeneous transformation matrix.
type m33 struct {
	t d2.Transform
}

// m44 is a 3D homogeneous transformation matrix.
type m44 struct {
	t d3.Transform
}

// Identity2D returns the 2D identity transform.
func Identity2D() m33 { return m33{} }

// Identity3D returns the 3D identity transform.
func Identity3D() m44 { return m44{} }

// Translate2D returns a 2d translation matrix.
func Translate2D(v r2.Vec) m33 {
	return m33{t: d2.Translation(v)}
}

// Rotate2D returns an orthographic 2x2 rotation matrix (right hand rule).
func Rotate2D(angle float64) m33 {
	return m33{t: d2.Rotation(angle)}
}

// Scale2D returns a 2d scaling matrix.
// Non-uniform scaling does not preserve distance.
func Scale2D(k r2.Vec) m33 {
	return m33{t: d2.Scaling(k)}
}

// Translate3D returns a 4x4 translation matrix.
func Translate3D(v r3.Vec) m44 {
	return m44{t: d3.Translation(v)}
}

// RotateZ returns a 4x4 matrix with rotation about the Z axis.
func RotateZ(angle float64) m44 {
	return m44{t: d3.RotationZ(angle)}
}

// Scale3D returns a 4x4 scaling matrix.
// Scaling does not preserve distance.
func Scale3D(k r3.Vec) m44 {
	return m44{t: d3.Scaling(k)}
}

// Mul multiplies two matrices. The result applies b first.
func (a m33) Mul(b m33) m33 { return m33{t: a.t.Mul(b.t)} }

// Inverse returns the inverse of the matrix. It panics if a is singular.
func (a m33) Inverse() m33 { return m33{t: a.t.Inv()} }

// MulPosition applies the transform to a position.
func (a m33) MulPosition(b r2.Vec) r2.Vec { return a.t.Apply(b) }

// MulBox rotates/translates a 2d bounding box and resizes for axis-alignment.
func (a m33) MulBox(box r2.Box) r2.Box {
	return r2.Box(a.t.ApplyBox(d2.Box(box)))
}

// Mul multiplies two matrices. The result applies b first.
func (a m44) Mul(b m44) m44 { return m44{t: a.t.Mul(b.t)} }

// Inverse returns the inverse of the matrix. It panics if a is singular.
func (a m44) Inverse() m44 { return m44{t: a.t.Inv()} }

// MulPosition applies the transform to a position.
func (a m44) MulPosition(b r3.Vec) r3.Vec { return a.t.Apply(b) }

// MulBox rotates/translates a 3d bounding box and resizes for axis-alignment.
func (a m44) MulBox(box r3.Box) r3.Box {
	return r3.Box(a.t.ApplyBox(d3.Box(box)))
}
