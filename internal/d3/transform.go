package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 3D affine transformation p -> A*p + b stored as the top
// three rows of a 4x4 homogeneous matrix. The zero value is the identity.
type Transform struct {
	// a holds the linear part with the identity subtracted so that
	// Transform{} == identity.
	a [3][3]float64
	b r3.Vec
}

// NewTransform returns a Transform from the 12 leading elements of a
// row-major 4x4 matrix.
func NewTransform(v []float64) Transform {
	if len(v) != 12 {
		panic("Transform is initialized with 12 values")
	}
	var t Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.a[i][j] = v[4*i+j]
			if i == j {
				t.a[i][j]--
			}
		}
	}
	t.b = r3.Vec{X: v[3], Y: v[7], Z: v[11]}
	return t
}

// Translation returns a translation by v.
func Translation(v r3.Vec) Transform {
	return Transform{b: v}
}

// Scaling returns a scaling about the origin.
func Scaling(k r3.Vec) Transform {
	var t Transform
	t.a[0][0], t.a[1][1], t.a[2][2] = k.X-1, k.Y-1, k.Z-1
	return t
}

// RotationZ returns a counter clockwise rotation about the Z axis.
func RotationZ(angle float64) Transform {
	s, c := math.Sincos(angle)
	return NewTransform([]float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
	})
}

// linear returns the i,j element of A.
func (t Transform) linear(i, j int) float64 {
	if i == j {
		return t.a[i][j] + 1
	}
	return t.a[i][j]
}

func (t Transform) matrix() (m [3][3]float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = t.linear(i, j)
		}
	}
	return m
}

func fromMatrix(m [3][3]float64, b r3.Vec) Transform {
	t := Transform{a: m, b: b}
	for i := 0; i < 3; i++ {
		t.a[i][i]--
	}
	return t
}

// Apply transforms the point v.
func (t Transform) Apply(v r3.Vec) r3.Vec {
	m := t.matrix()
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + t.b.X,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + t.b.Y,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + t.b.Z,
	}
}

// linearApply applies only the linear part of t.
func (t Transform) linearApply(v r3.Vec) r3.Vec {
	return r3.Sub(t.Apply(v), t.b)
}

// Mul returns the transform t*b, which applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x, y := t.matrix(), b.matrix()
	var m [3][3]float64
	for i := range m {
		for j := range m[i] {
			m[i][j] = x[i][0]*y[0][j] + x[i][1]*y[1][j] + x[i][2]*y[2][j]
		}
	}
	return fromMatrix(m, t.Apply(b.b))
}

// Det returns the determinant of the linear part of t.
func (t Transform) Det() float64 {
	m := t.matrix()
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inv returns the inverse of t. Singular transforms panic.
func (t Transform) Inv() Transform {
	if t == (Transform{}) {
		return t
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		panic("singular transform")
	}
	d := 1 / det
	m := t.matrix()
	var inv [3][3]float64
	// Cofactor expansion, transposed.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			i1, i2 := (j+1)%3, (j+2)%3
			j1, j2 := (i+1)%3, (i+2)%3
			inv[i][j] = (m[i1][j1]*m[i2][j2] - m[i1][j2]*m[i2][j1]) * d
		}
	}
	r := fromMatrix(inv, r3.Vec{})
	r.b = r3.Scale(-1, r.linearApply(t.b))
	return r
}

// ApplyBox transforms a box and returns the axis aligned box enclosing the result.
func (t Transform) ApplyBox(a Box) Box {
	v := a.Vertices()
	for i := range v {
		v[i] = t.Apply(v[i])
	}
	return Box{Min: v.Min(), Max: v.Max()}
}
