package export

import (
	"fmt"

	"github.com/soypat/vawt/naca"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"
	"gonum.org/v1/gonum/spatial/r2"
)

// DXF layer names.
const (
	LayerAirfoil = "AIRFOIL"
	LayerChord   = "CHORD"
)

// WriteDXF writes the outline scaled by chord as a closed LWPOLYLINE on
// layer AIRFOIL and the chord line from leading to trailing edge on layer CHORD.
func WriteDXF(path string, c naca.Curve, chord float64) error {
	if err := checkCurve(c, chord); err != nil {
		return err
	}
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerChord, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerChord, err)
	}
	if _, err := d.AddLayer(LayerAirfoil, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerAirfoil, err)
	}
	outline := loop(c, chord)
	vertices := make([][]float64, len(outline))
	for i, v := range outline {
		vertices[i] = []float64{v.X, v.Y}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("writing outline: %w", err)
	}
	if err := d.ChangeLayer(LayerChord); err != nil {
		return err
	}
	if _, err := d.Line(0, 0, 0, chord, 0, 0); err != nil {
		return fmt.Errorf("writing chord line: %w", err)
	}
	return d.SaveAs(path)
}

// ReadDXF returns the vertices of the first closed polyline found in the
// drawing at path. Other entities are skipped.
func ReadDXF(path string) (naca.Curve, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DXF file: %w", err)
	}
	for _, ent := range drawing.Entities() {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok || len(lw.Vertices) < 3 {
			continue
		}
		c := make(naca.Curve, len(lw.Vertices))
		for i, v := range lw.Vertices {
			c[i] = r2.Vec{X: v[0], Y: v[1]}
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: no polyline in %s", ErrMalformed, path)
}
