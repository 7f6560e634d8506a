package export

import (
	"fmt"
	"io"

	"github.com/soypat/vawt/naca"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot image size.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 3 * vg.Inch
)

// WritePlot writes a chord-normalized plot of the upper and lower surfaces
// and the camber line. format is any format accepted by gonum/plot, such as
// "png" or "svg".
func WritePlot(w io.Writer, c naca.Curve, title, format string) error {
	if len(c) == 0 {
		return ErrEmptyCurve
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"
	p.Add(plotter.NewGrid())

	err := plotutil.AddLines(p,
		"Upper", xys(c.Upper()),
		"Lower", xys(c.Lower()),
		"Camber", xys(c.MeanLine()),
	)
	if err != nil {
		return fmt.Errorf("plotting failed: %w", err)
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func xys(v []r2.Vec) plotter.XYs {
	pts := make(plotter.XYs, len(v))
	for i := range v {
		pts[i].X = v[i].X
		pts[i].Y = v[i].Y
	}
	return pts
}
