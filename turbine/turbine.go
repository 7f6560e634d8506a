// Package turbine builds the solid model of a hybrid vertical axis wind
// turbine: a hex-socket shaft, twisted drag scoops and NACA lift blades.
// Parts share the turbine axis as z and are centered on z=0.
package turbine

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/soypat/vawt"
	"github.com/soypat/vawt/internal/d2"
	"github.com/soypat/vawt/naca"
	"gonum.org/v1/gonum/spatial/r2"
)

// arcSegments is the number of straight segments used for each scoop arc.
const arcSegments = 64

// ShapeError is returned when a shape constructor rejects its arguments.
type ShapeError struct {
	Value any
	// Stack is the goroutine stack at the point of failure.
	Stack string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("turbine: building shape: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ShapeError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// HexBore returns the hexagonal connector socket inscribed in the hole
// diameter. The first vertex sits at -30 degrees so two flats face the x axis.
func HexBore(p Params) vawt.SDF2 {
	hex := vawt.Nagon(6, p.HoleDiameter/2)
	m := vawt.Rotate2D(vawt.DtoR(-30))
	for i := range hex {
		hex[i] = m.MulPosition(hex[i])
	}
	return vawt.Polygon(hex)
}

// Shaft returns the central shaft with its hexagonal socket.
func Shaft(p Params) vawt.SDF3 {
	section := vawt.Difference2D(vawt.Circle(p.ShaftDiameter/2), HexBore(p))
	return vawt.Extrude3D(section, p.Height)
}

// ScoopProfile returns the cross section of one drag scoop: a circular arc
// from the axis to the outer radius, thickened towards its center.
func ScoopProfile(p Params) vawt.SDF2 {
	cx, r := p.scoopArc()
	center := r2.Vec{X: cx, Y: p.OuterDiameter / 4}
	// The arc endpoints (0,0) and (0,OD/2) sit at -alpha and +alpha.
	alpha := math.Atan2(p.OuterDiameter/4, -cx)
	inner := r - p.BladeThickness
	v := make([]r2.Vec, 0, 2*(arcSegments+1))
	for i := 0; i <= arcSegments; i++ {
		a := -alpha + 2*alpha*float64(i)/arcSegments
		v = append(v, r2.Add(center, d2.PolarToXY(r, a)))
	}
	for i := arcSegments; i >= 0; i-- {
		a := -alpha + 2*alpha*float64(i)/arcSegments
		v = append(v, r2.Add(center, d2.PolarToXY(inner, a)))
	}
	return vawt.Polygon(v)
}

// Scoops returns the drag scoops twisted over the height and patterned
// about the axis.
func Scoops(p Params) vawt.SDF3 {
	// Seen from above the section turns by -(360/BladeCount)*TwistCount
	// degrees from bottom to top. TwistExtrude3D turns it by -twist.
	twist := vawt.DtoR(360 / float64(p.BladeCount) * float64(p.TwistCount))
	blade := vawt.TwistExtrude3D(ScoopProfile(p), p.Height, twist)
	return vawt.RotateCopy3D(blade, p.BladeCount)
}

// AirfoilOutline maps a chord-normalized curve into the turbine frame.
// The section is mirrored along the chord so the rotor turns clockwise
// seen from above and offset by Radius from the axis.
func AirfoilOutline(p Params, c naca.Curve) []r2.Vec {
	return c.Map(func(v r2.Vec) r2.Vec {
		return r2.Vec{X: p.Chord - v.X*p.Chord, Y: p.Radius + v.Y*p.Chord}
	})
}

// AirfoilProfile returns the lift blade section.
func AirfoilProfile(p Params, c naca.Curve) vawt.SDF2 {
	return vawt.Polygon(AirfoilOutline(p, c))
}

// Airfoils returns the lift blades extruded over the height and patterned
// about the axis.
func Airfoils(p Params, c naca.Curve) vawt.SDF3 {
	blade := vawt.Extrude3D(AirfoilProfile(p, c), p.Height)
	return vawt.RotateCopy3D(blade, p.AirfoilCount)
}

// Build validates p and returns the complete turbine with the airfoil
// section used for its lift blades.
func Build(p Params) (vawt.SDF3, naca.Curve, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	c, err := p.Curve()
	if err != nil {
		return nil, nil, err
	}
	s, err := guard(func() vawt.SDF3 {
		body := vawt.Union3D(Shaft(p), Scoops(p), Airfoils(p, c))
		// Scoops cross the axis, so the socket is cut from the whole body.
		return vawt.Difference3D(body, vawt.Extrude3D(HexBore(p), 2*p.Height))
	})
	if err != nil {
		return nil, nil, err
	}
	return s, c, nil
}

// guard converts a shape constructor panic into a *ShapeError.
func guard(build func() vawt.SDF3) (s vawt.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &ShapeError{Value: a, Stack: string(debug.Stack())}
		}
	}()
	return build(), nil
}
