package export_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/vawt/export"
	"github.com/soypat/vawt/naca"
	"github.com/soypat/vawt/turbine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func section(t *testing.T, code string, points int) naca.Curve {
	t.Helper()
	c, err := naca.GenerateCode(code, naca.Sampling{Points: points, HalfCosine: true})
	require.NoError(t, err)
	return c
}

func TestCSVRoundTrip(t *testing.T) {
	c := section(t, "2412", 40)
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, c, 100))
	assert.True(t, strings.HasPrefix(buf.String(), "x,y\n"))

	got, err := export.ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(c))
	for i := range c {
		assert.Equal(t, 100*c[i].X, got[i].X)
		assert.Equal(t, 100*c[i].Y, got[i].Y)
	}
}

func TestCSVErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, export.WriteCSV(&buf, nil, 1), export.ErrEmptyCurve)
	assert.Error(t, export.WriteCSV(&buf, section(t, "0012", 4), 0))

	_, err := export.ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.ErrorIs(t, err, export.ErrMalformed)
	_, err = export.ReadCSV(strings.NewReader("x,y\n1,nope\n"))
	assert.ErrorIs(t, err, export.ErrMalformed)
	_, err = export.ReadCSV(strings.NewReader("x,y\n"))
	assert.ErrorIs(t, err, export.ErrEmptyCurve)
}

func TestDXFRoundTrip(t *testing.T) {
	c := section(t, "4415", 30)
	path := filepath.Join(t.TempDir(), "section.dxf")
	require.NoError(t, export.WriteDXF(path, c, 80))

	got, err := export.ReadDXF(path)
	require.NoError(t, err)
	// The closed polyline does not repeat the leading edge point.
	require.Equal(t, c[0], c[len(c)-1])
	require.Len(t, got, len(c)-1)
	for i := range got {
		assert.InDelta(t, 80*c[i].X, got[i].X, 1e-4)
		assert.InDelta(t, 80*c[i].Y, got[i].Y, 1e-4)
	}
	assert.Greater(t, r2.Norm(r2.Sub(got[len(got)-1], got[0])), 1e-6)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), export.LayerAirfoil)
	assert.Contains(t, string(raw), export.LayerChord)
}

func TestXLSXRoundTrip(t *testing.T) {
	c := section(t, "0015", 25)
	path := filepath.Join(t.TempDir(), "section.xlsx")
	require.NoError(t, export.WriteXLSX(path, c, 50))

	got, err := export.ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, got, len(c))
	for i := range c {
		assert.InDelta(t, 50*c[i].X, got[i].X, 1e-9)
		assert.InDelta(t, 50*c[i].Y, got[i].Y, 1e-9)
	}
}

func TestWritePDF(t *testing.T) {
	c := section(t, "0015", 60)
	path := filepath.Join(t.TempDir(), "rib.pdf")
	tmpl := export.Template{
		Designation: "0015",
		Curve:       c,
		Chord:       76.2,
		Sampling:    naca.Sampling{Points: 60, HalfCosine: true},
		RunID:       "abc12345",
	}
	require.NoError(t, export.WritePDF(path, tmpl))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	tmpl.Chord = 1000
	err = export.WritePDF(filepath.Join(t.TempDir(), "big.pdf"), tmpl)
	assert.ErrorIs(t, err, export.ErrTemplateTooLarge)
}

func TestWritePlot(t *testing.T) {
	c := section(t, "2412", 40)
	var buf bytes.Buffer
	require.NoError(t, export.WritePlot(&buf, c, "NACA 2412", "png"))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())

	buf.Reset()
	require.NoError(t, export.WritePlot(&buf, c, "NACA 2412", "svg"))
	assert.Contains(t, buf.String(), "<svg")

	assert.ErrorIs(t, export.WritePlot(&buf, nil, "", "png"), export.ErrEmptyCurve)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(artifact, make([]byte, 2048), 0o644))

	m := export.NewManifest("airfoil", turbine.DefaultParams())
	assert.Len(t, m.RunID, 8)
	a, err := m.Add("csv", artifact)
	require.NoError(t, err)
	assert.EqualValues(t, 2048, a.Bytes)
	assert.Equal(t, "2.0 kB", a.Size)
	assert.Equal(t, "2.0 kB", m.TotalSize())
	_, err = m.Add("dxf", filepath.Join(dir, "missing.dxf"))
	assert.Error(t, err)

	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, m.Write(path))
	got, err := export.ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, m.Params, got.Params)
	assert.Equal(t, m.Artifacts, got.Artifacts)

	var raw map[string]any
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "run_id")
	assert.Contains(t, raw, "params")
}
