package render

import (
	"io"
	"math"
	"sync"

	"github.com/soypat/vawt"
	"github.com/soypat/vawt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// octree renders using marching tetrahedra with octree space sampling.
type octree struct {
	dc        dc3
	todo      []cube
	unwritten triangle3Buffer
}

type cube struct {
	vawt.V3i      // origin of cube as integers
	n        uint // level of cube, size = 1 << n
}

// NewOctreeRenderer returns a marching tetrahedra renderer using octree
// cube sampling. meshCells is the number of cells along the longest axis
// of the bounding box.
func NewOctreeRenderer(s vawt.SDF3, meshCells int) *octree {
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	// Scale the bounding box about the center to make sure the boundaries
	// aren't on the object surface.
	bb := d3.Box(s.Bounds())
	bb = bb.ScaleAboutCenter(1.01)
	longAxis := d3.Max(bb.Size())
	// The smallest cube (side == resolution) is tested for emptiness
	// so the level 0 cube is at half resolution.
	resolution := 0.5 * longAxis / float64(meshCells)
	levels := uint(math.Ceil(math.Log2(longAxis/resolution))) + 1

	divisions := r3.Scale(1/resolution, bb.Size())
	maxCubes := int(divisions.X) * int(divisions.Y) * int(divisions.Z)
	cubes := make([]cube, 1, max(1, maxCubes/64))
	cubes[0] = cube{vawt.V3i{0, 0, 0}, levels - 1} // start at the top level
	return &octree{
		dc:        *newDc3(s, bb.Min, resolution, levels),
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, 1024)},
		todo:      cubes,
	}
}

// ReadTriangles writes triangles rendered from the model into the argument buffer.
// returns number of triangles written and an error if present.
func (oc *octree) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if oc.unwritten.Len() > 0 {
		n += oc.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	if len(oc.todo) == 0 && oc.unwritten.Len() == 0 {
		return n, io.EOF
	}
	n += oc.readTriangles(dst[n:])
	return n, nil
}

// readTriangles processes queued cubes until dst is full or the queue empties.
func (oc *octree) readTriangles(dst []Triangle3) (n int) {
	processed := 0
	var newCubes []cube
	for _, c := range oc.todo {
		if n == len(dst) {
			break
		}
		if n+tetraMaxTriangles > len(dst) {
			// Not enough room for a full cube, stash the overflow.
			var tmp [tetraMaxTriangles]Triangle3
			nt, cubes := oc.processCube(tmp[:], c)
			oc.unwritten.Write(tmp[:nt])
			newCubes = append(newCubes, cubes...)
			processed++
			break
		}
		nt, cubes := oc.processCube(dst[n:], c)
		newCubes = append(newCubes, cubes...)
		processed++
		n += nt
	}
	oc.todo = append(oc.todo[processed:], newCubes...)
	return n
}

// processCube generates triangles for a leaf cube or returns its non-empty sub cubes.
func (oc *octree) processCube(dst []Triangle3, c cube) (written int, newCubes []cube) {
	if c.n == 1 {
		var corners [8]r3.Vec
		var values [8]float64
		for i, off := range cubeCorners {
			corners[i], values[i] = oc.dc.Evaluate(c.Add(off))
		}
		return mtToTriangles(dst, corners, values), nil
	}
	n := c.n - 1
	s := 1 << n
	for _, off := range cubeCorners {
		candidate := cube{c.Add(vawt.V3i{off[0] / 2 * s, off[1] / 2 * s, off[2] / 2 * s}), n}
		if !oc.dc.IsEmpty(&candidate) {
			newCubes = append(newCubes, candidate)
		}
	}
	return 0, newCubes
}

// cubeCorners are the corner offsets of a level 1 cube.
var cubeCorners = [8]vawt.V3i{
	{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0},
	{0, 0, 2}, {2, 0, 2}, {2, 2, 2}, {0, 2, 2},
}

// dc3 is a distance cache that avoids repeated evaluations of shared cube corners.
type dc3 struct {
	mu         sync.Mutex
	cache      map[vawt.V3i]float64
	origin     r3.Vec    // origin of the overall bounding cube
	resolution float64   // size of smallest octree cube
	hdiag      []float64 // lookup table of cube half diagonals
	s          vawt.SDF3
}

func newDc3(s vawt.SDF3, origin r3.Vec, resolution float64, n uint) *dc3 {
	if n >= 64 {
		panic("size of n must be less than size of word for hdiag generation")
	}
	dc := dc3{
		origin:     origin,
		resolution: resolution,
		hdiag:      make([]float64, n),
		s:          s,
		cache:      make(map[vawt.V3i]float64),
	}
	for i := range dc.hdiag {
		side := float64(uint(1)<<uint(i)) * dc.resolution
		dc.hdiag[i] = 0.5 * math.Sqrt(3.0*side*side)
	}
	return &dc
}

// Evaluate returns the position of grid point vi and the distance there.
func (dc *dc3) Evaluate(vi vawt.V3i) (r3.Vec, float64) {
	v := r3.Add(dc.origin, r3.Scale(dc.resolution, vi.ToV3()))
	dc.mu.Lock()
	dist, found := dc.cache[vi]
	dc.mu.Unlock()
	if found {
		return v, dist
	}
	dist = dc.s.Evaluate(v)
	dc.mu.Lock()
	dc.cache[vi] = dist
	dc.mu.Unlock()
	return v, dist
}

// IsEmpty returns true if the cube contains no SDF surface.
func (dc *dc3) IsEmpty(c *cube) bool {
	s := 1 << (c.n - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	return math.Abs(d) >= dc.hdiag[c.n]
}
