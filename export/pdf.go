package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/soypat/vawt/naca"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrTemplateTooLarge is returned when a rib template does not fit on the page
// at full scale.
var ErrTemplateTooLarge = errors.New("export: template does not fit on page")

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	margin       = 15.0
	headerHeight = 12.0
	qrSize       = 30.0
	drawAreaTop  = margin + headerHeight + 5
)

// Template describes a printable full scale rib template.
type Template struct {
	Designation string
	Curve       naca.Curve
	// Chord in millimetres.
	Chord    float64
	Sampling naca.Sampling
	// RunID links the sheet to the manifest of the run that produced it.
	RunID string
}

// SectionInfo is the metadata encoded in the template QR code.
type SectionInfo struct {
	Designation string  `json:"naca"`
	Chord       float64 `json:"chord_mm"`
	Points      int     `json:"points"`
	HalfCosine  bool    `json:"half_cosine"`
	FiniteTE    bool    `json:"finite_te"`
	RunID       string  `json:"run_id,omitempty"`
}

func (t Template) info() SectionInfo {
	return SectionInfo{
		Designation: t.Designation,
		Chord:       t.Chord,
		Points:      t.Sampling.Points,
		HalfCosine:  t.Sampling.HalfCosine,
		FiniteTE:    t.Sampling.FiniteTrailingEdge,
		RunID:       t.RunID,
	}
}

// WritePDF writes a one page A4 landscape PDF with the outline drawn 1:1 in
// millimetres, its chord line, a title and a QR code holding SectionInfo as JSON.
func WritePDF(path string, t Template) error {
	if err := checkCurve(t.Curve, t.Chord); err != nil {
		return err
	}
	scaled := t.Curve.Scale(t.Chord)
	bb := scaled.Bounds()
	drawW := pageWidth - 3*margin - qrSize
	drawH := pageHeight - drawAreaTop - margin
	if bb.Max.X-bb.Min.X > drawW || bb.Max.Y-bb.Min.Y > drawH {
		return fmt.Errorf("%w: %.1fx%.1f mm exceeds %.1fx%.1f mm",
			ErrTemplateTooLarge, bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y, drawW, drawH)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, margin)
	title := fmt.Sprintf("NACA %s rib template", t.Designation)
	pdf.CellFormat(pageWidth-2*margin, headerHeight/2, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(margin)
	sub := fmt.Sprintf("Chord %.2f mm, %d stations per surface, print at 100%% scale", t.Chord, scaled.Stations())
	pdf.CellFormat(pageWidth-2*margin, headerHeight/2, sub, "", 1, "L", false, 0, "")

	// PDF y grows downwards. Center the section vertically in the draw area.
	originX := margin - bb.Min.X
	originY := drawAreaTop + drawH/2 + (bb.Max.Y+bb.Min.Y)/2
	outline := loop(t.Curve, t.Chord)
	points := make([]fpdf.PointType, len(outline))
	for i, v := range outline {
		points[i] = fpdf.PointType{X: originX + v.X, Y: originY - v.Y}
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Polygon(points, "D")

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.1)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	pdf.Line(originX, originY, originX+t.Chord, originY)
	pdf.SetDashPattern(nil, 0)

	if err := drawQR(pdf, t.info()); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

func drawQR(pdf *fpdf.Fpdf, info SectionInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal section info: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	const name = "qr_section"
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	x := pageWidth - margin - qrSize
	pdf.ImageOptions(name, x, drawAreaTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}
