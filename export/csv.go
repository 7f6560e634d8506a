package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/soypat/vawt/naca"
	"gonum.org/v1/gonum/spatial/r2"
)

var csvHeader = []string{"x", "y"}

// WriteCSV writes the outline scaled by chord as x,y rows in outline order
// preceded by a header row.
func WriteCSV(w io.Writer, c naca.Curve, chord float64) error {
	if err := checkCurve(c, chord); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range c.Scale(chord) {
		err := cw.Write([]string{formatFloat(v.X), formatFloat(v.Y)})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads an outline written by WriteCSV. Coordinates are returned as
// stored, without undoing the chord scaling.
func ReadCSV(r io.Reader) (naca.Curve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(records) == 0 || records[0][0] != csvHeader[0] || records[0][1] != csvHeader[1] {
		return nil, fmt.Errorf("%w: missing x,y header", ErrMalformed)
	}
	c := make(naca.Curve, 0, len(records)-1)
	for i, rec := range records[1:] {
		v, err := parseVec(rec[0], rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, i+2, err)
		}
		c = append(c, v)
	}
	if len(c) == 0 {
		return nil, ErrEmptyCurve
	}
	return c, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func parseVec(xs, ys string) (r2.Vec, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return r2.Vec{}, err
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{X: x, Y: y}, nil
}
