// Package export writes airfoil sections to formats used in the shop:
// CSV and XLSX coordinate tables, DXF outlines for laser and CNC work,
// printable PDF rib templates and plots.
//
// Outline coordinates are chord-normalized on input and scaled by the
// chord length given to each writer.
package export

import (
	"errors"
	"fmt"

	"github.com/soypat/vawt/naca"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrEmptyCurve is returned when a writer receives an outline with no points.
	ErrEmptyCurve = errors.New("export: empty airfoil curve")
	// ErrMalformed is returned by readers when the input is not an airfoil table.
	ErrMalformed = errors.New("export: malformed airfoil data")
)

func checkCurve(c naca.Curve, chord float64) error {
	if len(c) == 0 {
		return ErrEmptyCurve
	}
	if len(c)%2 != 0 {
		return fmt.Errorf("export: outline has odd point count %d", len(c))
	}
	if chord <= 0 {
		return fmt.Errorf("export: chord %g must be positive", chord)
	}
	return nil
}

// loop returns the outline scaled by chord for closed entities, which
// connect the last vertex to the first themselves. A last vertex equal to
// the first would add a zero length closing segment and is dropped.
func loop(c naca.Curve, chord float64) []r2.Vec {
	v := c.Scale(chord)
	if len(v) > 1 && v[len(v)-1] == v[0] {
		v = v[:len(v)-1]
	}
	return v
}
