// Package render converts SDF3 objects into triangle meshes and writes them
// as binary STL.
package render

import (
	"github.com/soypat/vawt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer produces the triangles of a model in batches. ReadTriangles
// returns io.EOF once every triangle has been read.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. The winding is counter clockwise when viewed
// from outside the model.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal to the triangle surface.
func (t Triangle3) Normal() r3.Vec {
	return d3.Triangle(t.V).Normal()
}

// Area returns the triangle area.
func (t Triangle3) Area() float64 {
	return d3.Triangle(t.V).Area()
}

// Centroid returns the mean of the triangle vertices.
func (t Triangle3) Centroid() r3.Vec {
	return d3.Set(t.V[:]).Centroid()
}

// Degenerate returns true if two vertices of the triangle are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// Bounds returns the bounding box of a set of triangles.
func Bounds(model []Triangle3) r3.Box {
	if len(model) == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: model[0].V[0], Max: model[0].V[0]}
	for _, t := range model {
		for _, v := range t.V {
			bb = bb.Include(v)
		}
	}
	return r3.Box(bb)
}
