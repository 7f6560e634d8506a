package vawt

import (
	"math"

	"github.com/soypat/vawt/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygon is an SDF2 made from a closed set of line segments.
type polygon struct {
	vertex []r2.Vec  // vertices
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     r2.Box    // bounding box
}

// Polygon returns an SDF2 made from a closed set of line segments.
// Repeated consecutive vertices are dropped. It panics if fewer than 3
// distinct vertices remain.
func Polygon(vertex []r2.Vec) SDF2 {
	s := polygon{}
	for _, v := range vertex {
		if len(s.vertex) > 0 && d2.EqualWithin(v, s.vertex[len(s.vertex)-1], tolerance) {
			continue
		}
		s.vertex = append(s.vertex, v)
	}
	n := len(s.vertex)
	if n > 1 && d2.EqualWithin(s.vertex[0], s.vertex[n-1], tolerance) {
		n--
		s.vertex = s.vertex[:n]
	}
	if n < 3 {
		panic("number of vertices < 3")
	}
	// Close the loop.
	s.vertex = append(s.vertex, s.vertex[0])

	nsegs := len(s.vertex) - 1
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		s.vector[i] = r2.Unit(l)
	}
	vs := d2.Set(s.vertex)
	s.bb = r2.Box{Min: vs.Min(), Max: vs.Max()}
	return &s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // d^2 to polygon (>0)
	wn := 0               // winding number (inside/outside)

	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])
	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]

		pa := pb
		pb = r2.Sub(p, b)

		t := r2.Dot(pa, s.vector[i])                                  // t-parameter of projection onto line
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X}) // normal distance from p to line

		switch {
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(pb))
		default:
			dd = math.Min(dd, dn*dn)
		}

		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 { // upward crossing, p left of segment
				wn++
			}
		} else if b.Y <= p.Y && dn > 0 { // downward crossing, p right of segment
			wn--
		}
	}

	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box {
	return s.bb
}

// Vertices returns the closed vertex loop of the polygon. The first vertex is repeated at the end.
func (s *polygon) Vertices() []r2.Vec {
	return append([]r2.Vec(nil), s.vertex...)
}

// circle is the 2d signed distance object for a circle.
type circle struct {
	radius float64
	bb     r2.Box
}

// Circle returns the SDF2 for a 2d circle.
func Circle(radius float64) SDF2 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	d := r2.Vec{X: radius, Y: radius}
	return &circle{
		radius: radius,
		bb:     r2.Box{Min: r2.Scale(-1, d), Max: d},
	}
}

// Evaluate returns the minimum distance to a 2d circle.
func (s *circle) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d circle.
func (s *circle) Bounds() r2.Box {
	return s.bb
}

// Nagon returns the vertices of an n sided regular polygon with
// circumradius radius. The first vertex lies on the positive x axis.
func Nagon(n int, radius float64) d2.Set {
	if n < 3 {
		panic("n < 3")
	}
	m := Rotate2D(tau / float64(n))
	v := make(d2.Set, n)
	p := r2.Vec{X: radius}
	for i := range v {
		v[i] = p
		p = m.MulPosition(p)
	}
	return v
}

// union2 is a union of multiple SDF2 objects.
type union2 struct {
	sdf []SDF2
	min MinFunc
	bb  r2.Box
}

// Union2D returns the union of multiple SDF2 objects.
func Union2D(sdf ...SDF2) SDF2Union {
	if len(sdf) < 2 {
		panic("union requires at least 2 sdfs")
	}
	for _, x := range sdf {
		if x == nil {
			panic("nil argument found")
		}
	}
	bb := d2.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d2.Box(x.Bounds()))
	}
	return &union2{sdf: sdf, min: math.Min, bb: r2.Box(bb)}
}

// Evaluate returns the minimum distance to the SDF2 union.
func (s *union2) Evaluate(p r2.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *union2) SetMin(min MinFunc) {
	s.min = min
}

// Bounds returns the bounding box of an SDF2 union.
func (s *union2) Bounds() r2.Box {
	return s.bb
}

// diff2 is the difference of two SDF2s.
type diff2 struct {
	s0  SDF2
	s1  SDF2
	max MaxFunc
	bb  r2.Box
}

// Difference2D returns the difference of two SDF2 objects, s0 - s1.
func Difference2D(s0, s1 SDF2) SDF2 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference2D")
	}
	return &diff2{s0: s0, s1: s1, max: math.Max, bb: s0.Bounds()}
}

// Evaluate returns the minimum distance to the difference of two SDF2s.
func (s *diff2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the difference of two SDF2s.
func (s *diff2) Bounds() r2.Box {
	return s.bb
}

// offset2 offsets the distance function of an existing SDF2.
type offset2 struct {
	sdf      SDF2
	distance float64
	bb       r2.Box
}

// Offset2D returns an SDF2 that offsets the distance function of another SDF2.
// A positive offset grows the shape.
func Offset2D(sdf SDF2, offset float64) SDF2 {
	if sdf == nil {
		panic("nil argument to Offset2D")
	}
	bb := d2.Box(sdf.Bounds()).Enlarge(d2.Elem(2 * offset))
	return &offset2{sdf: sdf, distance: offset, bb: r2.Box(bb)}
}

// Evaluate returns the minimum distance to an offset SDF2.
func (s *offset2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(p) - s.distance
}

// Bounds returns the bounding box of an offset SDF2.
func (s *offset2) Bounds() r2.Box {
	return s.bb
}

// transform2 transforms an SDF2 with rotation, translation and scaling.
type transform2 struct {
	sdf  SDF2
	mInv m33
	bb   r2.Box
}

// Transform2D applies a transformation matrix to an SDF2.
// Distance is *not* preserved with scaling.
func Transform2D(sdf SDF2, m m33) SDF2 {
	if sdf == nil {
		panic("nil argument to Transform2D")
	}
	return &transform2{
		sdf:  sdf,
		mInv: m.Inverse(),
		bb:   m.MulBox(sdf.Bounds()),
	}
}

// Evaluate returns the minimum distance to a transformed SDF2.
func (s *transform2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(s.mInv.MulPosition(p))
}

// Bounds returns the bounding box of a transformed SDF2.
func (s *transform2) Bounds() r2.Box {
	return s.bb
}
