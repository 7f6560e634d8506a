package naca

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDesignation is returned for codes that are not exactly four ASCII digits.
	ErrInvalidDesignation = errors.New("invalid NACA designation")
	// ErrInvalidSampling is returned when the sampling configuration cannot produce a curve.
	ErrInvalidSampling = errors.New("invalid airfoil sampling")
)

// Designation is a decoded NACA 4-digit airfoil code.
type Designation struct {
	// MaxCamber is the maximum camber in percent of chord (first digit).
	MaxCamber int
	// CamberPosition is the chordwise location of maximum camber
	// in tenths of chord (second digit).
	CamberPosition int
	// MaxThickness is the maximum thickness in percent of chord (last two digits).
	MaxThickness int
}

// ParseDesignation decodes a 4-digit NACA code such as "2412".
func ParseDesignation(code string) (Designation, error) {
	if len(code) != 4 {
		return Designation{}, fmt.Errorf("%w: %q must have 4 digits", ErrInvalidDesignation, code)
	}
	var digits [4]int
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < '0' || c > '9' {
			return Designation{}, fmt.Errorf("%w: %q has non-digit %q at position %d", ErrInvalidDesignation, code, c, i)
		}
		digits[i] = int(c - '0')
	}
	return Designation{
		MaxCamber:      digits[0],
		CamberPosition: digits[1],
		MaxThickness:   digits[2]*10 + digits[3],
	}, nil
}

// MustParseDesignation is like ParseDesignation but panics on error.
func MustParseDesignation(code string) Designation {
	d, err := ParseDesignation(code)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the 4-digit code of d.
func (d Designation) String() string {
	return fmt.Sprintf("%d%d%02d", d.MaxCamber, d.CamberPosition, d.MaxThickness)
}

// Symmetric reports whether the camber line of d is flat. A zero camber
// position is treated as symmetric regardless of MaxCamber.
func (d Designation) Symmetric() bool {
	return d.MaxCamber == 0 || d.CamberPosition == 0
}

func (d Designation) validate() error {
	switch {
	case d.MaxCamber < 0 || d.MaxCamber > 9:
		return fmt.Errorf("%w: max camber %d out of range [0,9]", ErrInvalidDesignation, d.MaxCamber)
	case d.CamberPosition < 0 || d.CamberPosition > 9:
		return fmt.Errorf("%w: camber position %d out of range [0,9]", ErrInvalidDesignation, d.CamberPosition)
	case d.MaxThickness < 0 || d.MaxThickness > 99:
		return fmt.Errorf("%w: thickness %d out of range [0,99]", ErrInvalidDesignation, d.MaxThickness)
	}
	return nil
}

// camber returns the chord-normalized maximum camber m and its position p.
// p is zero for symmetric sections so the camber line collapses to y=0.
func (d Designation) camber() (m, p float64) {
	if d.Symmetric() {
		return 0, 0
	}
	return float64(d.MaxCamber) / 100, float64(d.CamberPosition) / 10
}

func (d Designation) thickness() float64 {
	return float64(d.MaxThickness) / 100
}
