package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

var (
	windColor    = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	seismicColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	shellColor   = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	limitColor   = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

var errTooFewLevels = errors.New("need at least two levels to plot")

// MomentPlot draws the wind and seismic moments against elevation
func MomentPlot(t chimney.Table) (*plot.Plot, error) {
	if len(t) < 2 {
		return nil, errTooFewLevels
	}

	p := plot.New()
	p.Title.Text = "Bending Moment Envelope"
	p.X.Label.Text = "Moment (t·m)"
	p.Y.Label.Text = "Elevation (m)"
	p.Legend.Top = true

	wind, err := profileLine(t, func(lv chimney.Level) float64 { return lv.WindMoment }, windColor, nil)
	if err != nil {
		return nil, err
	}
	seismic, err := profileLine(t, func(lv chimney.Level) float64 { return lv.SeismicMoment }, seismicColor,
		[]vg.Length{vg.Points(5), vg.Points(3)})
	if err != nil {
		return nil, err
	}
	p.Add(wind, seismic, plotter.NewGrid())
	p.Legend.Add("Wind", wind)
	p.Legend.Add("Seismic", seismic)

	return p, nil
}

// StressPlot draws the extreme fibre stresses against elevation, with the
// permissible compression as a limit line when it is positive
func StressPlot(t chimney.Table, permissible float64) (*plot.Plot, error) {
	if len(t) < 2 {
		return nil, errTooFewLevels
	}

	p := plot.New()
	p.Title.Text = "Extreme Fibre Stresses"
	p.X.Label.Text = "Stress (t/m²)"
	p.Y.Label.Text = "Elevation (m)"
	p.Legend.Top = true

	maxC, err := profileLine(t, func(lv chimney.Level) float64 { return lv.MaxCompression }, seismicColor, nil)
	if err != nil {
		return nil, err
	}
	minS, err := profileLine(t, func(lv chimney.Level) float64 { return lv.MinStress }, windColor, nil)
	if err != nil {
		return nil, err
	}
	p.Add(maxC, minS, plotter.NewGrid())
	p.Legend.Add("Max compression", maxC)
	p.Legend.Add("Min stress", minS)

	top, bottom := t[0].Elevation, t[len(t)-1].Elevation

	// Zero stress reference line
	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: bottom}, {X: 0, Y: top}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	if permissible > 0 {
		limit, err := plotter.NewLine(plotter.XYs{{X: permissible, Y: bottom}, {X: permissible, Y: top}})
		if err != nil {
			return nil, err
		}
		limit.LineStyle.Color = limitColor
		limit.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(limit)
		p.Legend.Add("Permissible", limit)
	}

	// Mark levels in tension
	var tension plotter.XYs
	for _, lv := range t {
		if lv.Status == chimney.StatusTension {
			tension = append(tension, plotter.XY{X: lv.MinStress, Y: lv.Elevation})
		}
	}
	if len(tension) > 0 {
		marks, err := plotter.NewScatter(tension)
		if err != nil {
			return nil, err
		}
		marks.GlyphStyle.Color = seismicColor
		marks.GlyphStyle.Radius = vg.Points(4)
		marks.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(marks)
		p.Legend.Add("Tension", marks)
	}

	return p, nil
}

// ShellPlot draws the half section of the shell wall against elevation
func ShellPlot(t chimney.Table) (*plot.Plot, error) {
	if len(t) < 2 {
		return nil, errTooFewLevels
	}

	p := plot.New()
	p.Title.Text = "Shell Profile"
	p.X.Label.Text = "Radius (m)"
	p.Y.Label.Text = "Elevation (m)"

	// Wall polygon: down the outer face, back up the inner face
	wall := make(plotter.XYs, 0, 2*len(t))
	for _, lv := range t {
		wall = append(wall, plotter.XY{X: lv.OuterDiameter / 2, Y: lv.Elevation})
	}
	for i := len(t) - 1; i >= 0; i-- {
		wall = append(wall, plotter.XY{X: t[i].InnerDiameter / 2, Y: t[i].Elevation})
	}

	poly, err := plotter.NewPolygon(wall)
	if err != nil {
		return nil, err
	}
	poly.Color = shellColor
	poly.LineStyle.Color = windColor
	p.Add(poly)

	// Axis of the chimney
	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: t[len(t)-1].Elevation}, {X: 0, Y: t[0].Elevation}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(axis)

	return p, nil
}

func profileLine(t chimney.Table, value func(chimney.Level) float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(t))
	for i, lv := range t {
		pts[i] = plotter.XY{X: value(lv), Y: lv.Elevation}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = c
	line.LineStyle.Dashes = dashes
	return line, nil
}

// Save writes a plot to filename. The format follows the extension (.png,
// .svg or .pdf); any other extension gets .png appended.
func Save(p *plot.Plot, filename string) error {
	width := 6 * vg.Inch
	height := 8 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// PNG renders a plot into memory
func PNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(6*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("rendering png: %w", err)
	}
	return buf.Bytes(), nil
}
