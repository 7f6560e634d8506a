package turbine

import (
	"errors"
	"fmt"

	"github.com/soypat/vawt"
	"github.com/soypat/vawt/naca"
)

// ErrInvalidParams is wrapped by every parameter validation error.
var ErrInvalidParams = errors.New("invalid turbine parameters")

// Params holds the turbine design inputs. Lengths are in millimetres.
type Params struct {
	// HoleDiameter is the circumscribed diameter of the hexagonal connector bore.
	HoleDiameter float64 `toml:"hole_diameter" json:"hole_diameter"`
	// ShaftDiameter is the outer diameter of the central shaft.
	ShaftDiameter float64 `toml:"shaft_diameter" json:"shaft_diameter"`
	// OuterDiameter is the diameter swept by the drag scoops.
	OuterDiameter float64 `toml:"outer_diameter" json:"outer_diameter"`
	// BladeThickness is the wall thickness of each scoop.
	BladeThickness float64 `toml:"blade_thickness" json:"blade_thickness"`
	// BladeDepth is the sagitta of the scoop arc.
	BladeDepth float64 `toml:"blade_depth" json:"blade_depth"`
	// Height of the turbine.
	Height float64 `toml:"height" json:"height"`
	// BladeCount is the number of drag scoops.
	BladeCount int `toml:"blade_count" json:"blade_count"`
	// TwistCount is the number of blade pitches each scoop twists over the height.
	TwistCount int `toml:"twist_count" json:"twist_count"`

	// NACA is the 4-digit airfoil code of the lift blades.
	NACA string `toml:"naca" json:"naca"`
	// HalfCosine clusters airfoil stations near the edges.
	HalfCosine bool `toml:"half_cosine" json:"half_cosine"`
	// Points is the number of chordwise intervals per airfoil surface.
	Points int `toml:"points" json:"points"`
	// FiniteTE leaves a finite thickness at the trailing edge.
	FiniteTE bool `toml:"finite_te" json:"finite_te"`
	// Chord is the airfoil chord length.
	Chord float64 `toml:"chord" json:"chord"`
	// Radius is the distance from the axis to the airfoil chord line.
	Radius float64 `toml:"radius" json:"radius"`
	// AirfoilCount is the number of lift blades.
	AirfoilCount int `toml:"airfoil_count" json:"airfoil_count"`

	// Resolution is the number of mesh cells along the longest model axis.
	Resolution int `toml:"resolution" json:"resolution"`
}

const inch = vawt.MillimetresPerInch

// DefaultParams returns the stock turbine design.
func DefaultParams() Params {
	return Params{
		HoleDiameter:   1 * inch,
		ShaftDiameter:  1.5 * inch,
		OuterDiameter:  10 * inch,
		BladeThickness: 0.125 * inch,
		BladeDepth:     1 * inch,
		Height:         10 * inch,
		BladeCount:     2,
		TwistCount:     1,
		NACA:           "0015",
		HalfCosine:     true,
		Points:         100,
		FiniteTE:       false,
		Chord:          3 * inch,
		Radius:         15 * inch,
		AirfoilCount:   3,
		Resolution:     400,
	}
}

// Designation parses the airfoil code.
func (p Params) Designation() (naca.Designation, error) {
	return naca.ParseDesignation(p.NACA)
}

// Sampling returns the airfoil sampling settings.
func (p Params) Sampling() naca.Sampling {
	return naca.Sampling{Points: p.Points, HalfCosine: p.HalfCosine, FiniteTrailingEdge: p.FiniteTE}
}

// Curve generates the chord-normalized airfoil section.
func (p Params) Curve() (naca.Curve, error) {
	d, err := p.Designation()
	if err != nil {
		return nil, err
	}
	return naca.Generate(d, p.Sampling())
}

// scoopArc returns the center x coordinate and radius of the scoop arc
// running from the axis to the outer radius with sagitta BladeDepth.
func (p Params) scoopArc() (cx, radius float64) {
	a := p.OuterDiameter / 4
	d := p.BladeDepth
	return (d - a*a/d) / 2, (a*a + d*d) / (2 * d)
}

// Validate reports every problem found in p.
func (p Params) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
	}
	for _, dim := range []struct {
		name string
		v    float64
	}{
		{"hole_diameter", p.HoleDiameter},
		{"shaft_diameter", p.ShaftDiameter},
		{"outer_diameter", p.OuterDiameter},
		{"blade_thickness", p.BladeThickness},
		{"blade_depth", p.BladeDepth},
		{"height", p.Height},
		{"chord", p.Chord},
		{"radius", p.Radius},
	} {
		if !(dim.v > 0) {
			bad("%s must be positive, got %g", dim.name, dim.v)
		}
	}
	for _, count := range []struct {
		name string
		v    int
	}{
		{"blade_count", p.BladeCount},
		{"twist_count", p.TwistCount},
		{"points", p.Points},
		{"airfoil_count", p.AirfoilCount},
	} {
		if count.v < 1 {
			bad("%s must be at least 1, got %d", count.name, count.v)
		}
	}
	if p.Resolution < 2 {
		bad("resolution must be at least 2, got %d", p.Resolution)
	}
	if p.HoleDiameter >= p.ShaftDiameter {
		bad("hole_diameter %g must be smaller than shaft_diameter %g", p.HoleDiameter, p.ShaftDiameter)
	}
	if p.ShaftDiameter > p.OuterDiameter {
		bad("shaft_diameter %g exceeds outer_diameter %g", p.ShaftDiameter, p.OuterDiameter)
	}
	if p.BladeDepth > p.OuterDiameter/4 {
		bad("blade_depth %g exceeds a quarter of outer_diameter (%g)", p.BladeDepth, p.OuterDiameter/4)
	}
	if p.BladeDepth > 0 && p.OuterDiameter > 0 {
		if _, r := p.scoopArc(); p.BladeThickness >= r {
			bad("blade_thickness %g must be smaller than the scoop radius %g", p.BladeThickness, r)
		}
	}
	if d, err := p.Designation(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidParams, err))
	} else if d.MaxThickness == 0 {
		bad("airfoil %s has zero thickness", p.NACA)
	}
	return errors.Join(errs...)
}
