package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform is a 2D affine transformation stored as the top two rows of a
// 3x3 homogeneous matrix. The zero value is the identity transform.
type Transform struct {
	// diagonal elements are stored with 1 subtracted so that
	// Transform{} == identity.
	d00, x01, x02 float64
	x10, d11, x12 float64
}

// NewTransform returns a Transform from the 6 leading elements of a
// row-major 3x3 matrix.
func NewTransform(a []float64) Transform {
	if len(a) != 6 {
		panic("Transform is initialized with 6 values")
	}
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2],
		x10: a[3], d11: a[4] - 1, x12: a[5],
	}
}

// Translation returns a translation by v.
func Translation(v r2.Vec) Transform {
	return Transform{x02: v.X, x12: v.Y}
}

// Rotation returns a counter clockwise rotation about the origin.
func Rotation(angle float64) Transform {
	s, c := math.Sincos(angle)
	return NewTransform([]float64{c, -s, 0, s, c, 0})
}

// Scaling returns a scaling about the origin.
func Scaling(k r2.Vec) Transform {
	return Transform{d00: k.X - 1, d11: k.Y - 1}
}

// Apply transforms the point v.
func (t Transform) Apply(v r2.Vec) r2.Vec {
	return r2.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12,
	}
}

// Mul returns the transform t*b, which applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	x00, x11 := t.d00+1, t.d11+1
	y00, y11 := b.d00+1, b.d11+1
	return Transform{
		d00: x00*y00 + t.x01*b.x10 - 1,
		x01: x00*b.x01 + t.x01*y11,
		x02: x00*b.x02 + t.x01*b.x12 + t.x02,
		x10: t.x10*y00 + x11*b.x10,
		d11: t.x10*b.x01 + x11*y11 - 1,
		x12: t.x10*b.x02 + x11*b.x12 + t.x12,
	}
}

// Det returns the determinant of the linear part of t.
func (t Transform) Det() float64 {
	return (t.d00+1)*(t.d11+1) - t.x01*t.x10
}

// Inv returns the inverse of t. Singular transforms panic.
func (t Transform) Inv() Transform {
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		panic("singular transform")
	}
	d := 1 / det
	a, b, c := (t.d11+1)*d, -t.x01*d, -t.x10*d
	e := (t.d00 + 1) * d
	return Transform{
		d00: a - 1, x01: b, x02: -(a*t.x02 + b*t.x12),
		x10: c, d11: e - 1, x12: -(c*t.x02 + e*t.x12),
	}
}

// ApplyBox transforms a box and returns the axis aligned box enclosing the result.
func (t Transform) ApplyBox(box Box) Box {
	v := box.Vertices()
	for i := range v {
		v[i] = t.Apply(v[i])
	}
	return Box{Min: v.Min(), Max: v.Max()}
}
