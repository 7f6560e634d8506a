// Package naca generates NACA 4-digit airfoil sections in chord-normalized
// coordinates.
package naca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Thickness distribution coefficients.
const (
	a0 = 0.2969
	a1 = -0.1260
	a2 = -0.3516
	a3 = 0.2843
	// a4Open leaves a small finite thickness at the trailing edge.
	a4Open = -0.1015
	// a4Closed closes the trailing edge.
	a4Closed = -0.1036
)

// Sampling controls how the chord is discretized.
type Sampling struct {
	// Points is the number of chordwise intervals. Points+1 stations are
	// evaluated on each surface.
	Points int
	// HalfCosine clusters stations near the leading and trailing edges.
	HalfCosine bool
	// FiniteTrailingEdge uses the open trailing edge thickness coefficient.
	FiniteTrailingEdge bool
}

func (s Sampling) validate() error {
	if s.Points < 1 {
		return fmt.Errorf("%w: point count %d must be at least 1", ErrInvalidSampling, s.Points)
	}
	return nil
}

// Generate returns the closed outline of the airfoil d sampled according to s.
// The upper surface runs from leading to trailing edge and is followed by the
// lower surface from trailing to leading edge.
func Generate(d Designation, s Sampling) (Curve, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	m, p := d.camber()
	t := d.thickness()
	x := Stations(s.Points, s.HalfCosine)
	n := len(x)
	c := make(Curve, 2*n)
	for i, xi := range x {
		yc, slope := Camber(xi, m, p)
		yt := Thickness(xi, t, s.FiniteTrailingEdge)
		sin, cos := math.Sincos(math.Atan(slope))
		c[i] = r2.Vec{X: xi - yt*sin, Y: yc + yt*cos}
		c[2*n-1-i] = r2.Vec{X: xi + yt*sin, Y: yc - yt*cos}
	}
	return c, nil
}

// GenerateCode parses code and generates its outline.
func GenerateCode(code string, s Sampling) (Curve, error) {
	d, err := ParseDesignation(code)
	if err != nil {
		return nil, err
	}
	return Generate(d, s)
}

// Stations returns n+1 chordwise stations in [0,1].
func Stations(n int, halfCosine bool) []float64 {
	if n < 1 {
		panic("need at least one interval")
	}
	x := make([]float64, n+1)
	for i := range x {
		if halfCosine {
			x[i] = 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n)))
		} else {
			x[i] = float64(i) / float64(n)
		}
	}
	return x
}

// Thickness returns the half thickness at chord station x for an airfoil of
// maximum thickness t (fraction of chord).
func Thickness(x, t float64, finiteTE bool) float64 {
	a4 := a4Closed
	if finiteTE {
		a4 = a4Open
	}
	x2 := x * x
	return 5 * t * (a0*math.Sqrt(x) + a1*x + a2*x2 + a3*x2*x + a4*x2*x2)
}

// Camber returns the camber line ordinate and slope at chord station x for
// maximum camber m located at p. Both are zero when p is zero.
func Camber(x, m, p float64) (yc, slope float64) {
	switch {
	case p == 0:
		return 0, 0
	case x < p:
		k := m / (p * p)
		return k * (2*p*x - x*x), 2 * k * (p - x)
	case x == p:
		return m, 0
	default:
		q := 1 - p
		k := m / (q * q)
		return k * ((1 - 2*p) + 2*p*x - x*x), 2 * k * (p - x)
	}
}
