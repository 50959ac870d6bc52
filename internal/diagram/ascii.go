package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

// DrawShellElevation draws the chimney wall, one row per level. Each side of
// the wall is scaled to the largest outer diameter.
func DrawShellElevation(t chimney.Table) string {
	var sb strings.Builder

	widthChars := 40
	maxOuter := 0.0
	for _, lv := range t {
		maxOuter = math.Max(maxOuter, lv.OuterDiameter)
	}
	if maxOuter == 0 {
		return ""
	}
	scale := float64(widthChars) / maxOuter

	sb.WriteString("\n")
	sb.WriteString("  SHELL ELEVATION                                   Level     Do      t\n")
	sb.WriteString("  ───────────────                                   ─────     ──      ─\n")

	for i, lv := range t {
		outer := int(math.Round(lv.OuterDiameter * scale))
		inner := int(math.Round(lv.InnerDiameter * scale))
		wall := max((outer-inner)/2, 1)
		pad := (widthChars - outer) / 2

		line := strings.Repeat(" ", max(pad, 0)) +
			strings.Repeat("█", wall) +
			strings.Repeat(" ", max(outer-2*wall, 0)) +
			strings.Repeat("█", wall)

		marker := " "
		if lv.Status == chimney.StatusTension {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("  %-*s %s  %7.2f  %5.2f  %4.2f\n", widthChars+6, line, marker, lv.Elevation, lv.OuterDiameter, lv.Thickness))
		if i == len(t)-1 {
			sb.WriteString("  " + strings.Repeat("▀", widthChars+6) + "\n")
		}
	}

	sb.WriteString("\n  ! = tension at the extreme fibre\n")
	return sb.String()
}

// DrawMomentProfile plots the wind and seismic moments from the top level
// (left) to the base (right)
func DrawMomentProfile(t chimney.Table) string {
	if len(t) < 2 {
		return ""
	}
	wind := make([]float64, len(t))
	seismic := make([]float64, len(t))
	for i, lv := range t {
		wind[i] = lv.WindMoment
		seismic[i] = lv.SeismicMoment
	}

	return asciigraph.PlotMany([][]float64{wind, seismic},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("wind", "seismic"),
		asciigraph.Caption("Moment (t.m), top to base"),
	)
}

// DrawStressProfile plots the extreme fibre stresses from the top level to
// the base. Values below zero on the lower curve are tension.
func DrawStressProfile(t chimney.Table) string {
	if len(t) < 2 {
		return ""
	}
	maxC := make([]float64, len(t))
	minS := make([]float64, len(t))
	for i, lv := range t {
		maxC[i] = lv.MaxCompression
		minS[i] = lv.MinStress
	}

	return asciigraph.PlotMany([][]float64{maxC, minS},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.SeriesLegends("max compression", "min stress"),
		asciigraph.Caption("Stress (t/m2), top to base"),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
