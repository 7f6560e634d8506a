package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// tetraMaxTriangles is the most triangles a single cube can emit:
// two per tetrahedron.
const tetraMaxTriangles = 12

// snapFraction moves crossings this close to a cube corner onto the corner.
const snapFraction = 1e-3

// cubeTetrahedra splits a cube into six tetrahedra sharing the 0-6 diagonal.
// Corner numbering follows the octree corner order.
var cubeTetrahedra = [6][4]int{
	{0, 6, 1, 2},
	{0, 6, 2, 3},
	{0, 6, 3, 7},
	{0, 6, 7, 4},
	{0, 6, 4, 5},
	{0, 6, 5, 1},
}

// mtToTriangles polygonizes a cube and writes the triangles to dst.
// dst must have room for tetraMaxTriangles.
func mtToTriangles(dst []Triangle3, p [8]r3.Vec, v [8]float64) int {
	n := 0
	for _, tet := range cubeTetrahedra {
		var in, out [4]int
		var nin, nout int
		for _, c := range tet {
			if v[c] < 0 {
				in[nin] = c
				nin++
			} else {
				out[nout] = c
				nout++
			}
		}
		var tris [2]Triangle3
		var nt int
		switch nin {
		case 1:
			a := in[0]
			tris[0] = Triangle3{V: [3]r3.Vec{
				crossing(p, v, a, out[0]), crossing(p, v, a, out[1]), crossing(p, v, a, out[2]),
			}}
			nt = 1
		case 3:
			a := out[0]
			tris[0] = Triangle3{V: [3]r3.Vec{
				crossing(p, v, in[0], a), crossing(p, v, in[1], a), crossing(p, v, in[2], a),
			}}
			nt = 1
		case 2:
			a, b, c, d := in[0], in[1], out[0], out[1]
			ac, ad := crossing(p, v, a, c), crossing(p, v, a, d)
			bc, bd := crossing(p, v, b, c), crossing(p, v, b, d)
			tris[0] = Triangle3{V: [3]r3.Vec{ac, ad, bd}}
			tris[1] = Triangle3{V: [3]r3.Vec{ac, bd, bc}}
			nt = 2
		default:
			continue
		}
		// Outward points from the inside corners to the outside corners.
		var cin, cout r3.Vec
		for _, c := range in[:nin] {
			cin = r3.Add(cin, p[c])
		}
		for _, c := range out[:nout] {
			cout = r3.Add(cout, p[c])
		}
		outward := r3.Sub(r3.Scale(1/float64(nout), cout), r3.Scale(1/float64(nin), cin))
		for _, t := range tris[:nt] {
			if t.Degenerate(0) || t.Area() == 0 {
				continue
			}
			e1, e2 := r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0])
			if r3.Dot(r3.Cross(e1, e2), outward) < 0 {
				t.V[1], t.V[2] = t.V[2], t.V[1]
			}
			dst[n] = t
			n++
		}
	}
	return n
}

// crossing returns the surface crossing on the edge from inside corner i
// to outside corner o.
func crossing(p [8]r3.Vec, v [8]float64, i, o int) r3.Vec {
	t := v[i] / (v[i] - v[o])
	switch {
	case t < snapFraction:
		return p[i]
	case t > 1-snapFraction:
		return p[o]
	}
	return r3.Add(p[i], r3.Scale(t, r3.Sub(p[o], p[i])))
}
