package naca

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Curve is a closed airfoil outline: upper surface from leading to trailing
// edge followed by the lower surface from trailing to leading edge.
// The last point connects back to the first.
type Curve []r2.Vec

// Stations returns the number of points on each surface.
func (c Curve) Stations() int { return len(c) / 2 }

// Upper returns the upper surface ordered from leading to trailing edge.
func (c Curve) Upper() []r2.Vec {
	n := c.Stations()
	upper := make([]r2.Vec, n)
	copy(upper, c[:n])
	return upper
}

// Lower returns the lower surface ordered from leading to trailing edge.
func (c Curve) Lower() []r2.Vec {
	n := c.Stations()
	lower := make([]r2.Vec, n)
	for i := range lower {
		lower[i] = c[len(c)-1-i]
	}
	return lower
}

// MeanLine returns the midpoints between matching upper and lower stations.
func (c Curve) MeanLine() []r2.Vec {
	upper, lower := c.Upper(), c.Lower()
	mean := make([]r2.Vec, len(upper))
	for i := range mean {
		mean[i] = r2.Scale(0.5, r2.Add(upper[i], lower[i]))
	}
	return mean
}

// Bounds returns the axis aligned bounding box of the outline.
func (c Curve) Bounds() r2.Box {
	if len(c) == 0 {
		return r2.Box{}
	}
	bb := r2.Box{Min: c[0], Max: c[0]}
	for _, v := range c[1:] {
		bb.Min = r2.Vec{X: min(bb.Min.X, v.X), Y: min(bb.Min.Y, v.Y)}
		bb.Max = r2.Vec{X: max(bb.Max.X, v.X), Y: max(bb.Max.Y, v.Y)}
	}
	return bb
}

// Scale returns a copy of the outline scaled by chord.
func (c Curve) Scale(chord float64) Curve {
	scaled := make(Curve, len(c))
	for i, v := range c {
		scaled[i] = r2.Scale(chord, v)
	}
	return scaled
}

// Map returns a copy of the outline with f applied to each point.
func (c Curve) Map(f func(r2.Vec) r2.Vec) Curve {
	mapped := make(Curve, len(c))
	for i, v := range c {
		mapped[i] = f(v)
	}
	return mapped
}
