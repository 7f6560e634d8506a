package export

import (
	"fmt"
	"strconv"

	"github.com/soypat/vawt/naca"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

var xlsxHeader = []any{"station", "x_upper", "y_upper", "x_lower", "y_lower"}

// WriteXLSX writes a coordinate table with one row per chord station.
// Upper and lower surfaces sit side by side, both ordered from leading to
// trailing edge, scaled by chord.
func WriteXLSX(path string, c naca.Curve, chord float64) error {
	if err := checkCurve(c, chord); err != nil {
		return err
	}
	scaled := c.Scale(chord)
	upper, lower := scaled.Upper(), scaled.Lower()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, xlsxHeader); err != nil {
		return err
	}
	for i := range upper {
		row := []any{i, upper[i].X, upper[i].Y, lower[i].X, lower[i].Y}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for j, v := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("setting %s: %w", cell, err)
		}
	}
	return nil
}

// ReadXLSX reads a table written by WriteXLSX back into outline order.
func ReadXLSX(path string) (naca.Curve, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyCurve
	}
	n := len(rows) - 1
	c := make(naca.Curve, 2*n)
	for i, row := range rows[1:] {
		if len(row) < len(xlsxHeader) {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformed, i+2, len(row))
		}
		if _, err := strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("%w: row %d station: %w", ErrMalformed, i+2, err)
		}
		var up, lo r2.Vec
		if up, err = parseVec(row[1], row[2]); err == nil {
			lo, err = parseVec(row[3], row[4])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, i+2, err)
		}
		c[i] = up
		c[2*n-1-i] = lo
	}
	return c, nil
}
