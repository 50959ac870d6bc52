package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

const rule = "───────────────────────────────────────────────────────────────"

func printHeading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, rule)
}

func printInputs(w io.Writer, name string, p chimney.Params, res *chimney.Result) {
	printSection(w, "INPUT DATA")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Project:\t%s\n", name)
	fmt.Fprintf(tw, "  Levels:\t%d\n", len(res.Table))
	if top, ok := first(res.Table); ok {
		base, _ := res.Table.Base()
		fmt.Fprintf(tw, "  Top / base level:\t%.2f m / %.2f m\n", top.Elevation, base.Elevation)
	}
	fmt.Fprintf(tw, "  Self-weight method:\t%s\n", res.Policy)
	fmt.Fprintf(tw, "  Basic wind speed (Vb):\t%.1f m/s\n", p.Wind.BasicSpeed)
	fmt.Fprintf(tw, "  k1 / k3 / Cd:\t%.2f / %.2f / %.2f\n", p.Wind.K1, p.Wind.K3, p.Wind.Cd)
	fmt.Fprintf(tw, "  Z / I / R / Sa/g:\t%.2f / %.2f / %.2f / %.2f\n",
		p.Seismic.ZoneFactor, p.Seismic.Importance, p.Seismic.ResponseReduction, p.Seismic.SpectralCoefficient)
	if res.Material != nil {
		fmt.Fprintf(tw, "  Concrete:\t%s (σcbc = %.1f MPa)\n", res.Material.Grade, res.Material.Sigma)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printGeometry(w io.Writer, t chimney.Table) {
	printSection(w, "DEAD LOADS")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No.\tLevel (m)\th (m)\tDo (m)\tDi (m)\tt (m)\tA (m²)\tI (m⁴)\tZ (m³)\tShell (t)\tLiner (t)\tPlatf. (t)\tCorbel (t)\tW (t)\t")
	for i, lv := range t {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.3f\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, lv.Elevation, lv.SegmentHeight, lv.OuterDiameter, lv.InnerDiameter, lv.Thickness,
			lv.Area, lv.MomentOfInertia, lv.SectionModulus,
			lv.ShellWeight, lv.LinerLoad, lv.PlatformLoad, lv.CorbelLoad, lv.TotalWeight)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printWind(w io.Writer, t chimney.Table) {
	printSection(w, "WIND LOADS (IS 875 Part 3)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No.\tLevel (m)\tk2\tVz (m/s)\tpz (kN/m²)\tF (t)\tV (t)\tM (t·m)\t")
	for i, lv := range t {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.4f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, lv.Elevation, lv.K2, lv.WindSpeed, lv.WindPressure, lv.WindForce, lv.WindShear, lv.WindMoment)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printSeismic(w io.Writer, res *chimney.Result) {
	printSection(w, "SEISMIC LOADS (IS 1893)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No.\tLevel (m)\tW (t)\th (m)\tW·h² (t·m²)\tQ (t)\tV (t)\tM (t·m)\t")
	for i, lv := range res.Table {
		fmt.Fprintf(tw, "%d\t%.2f\t%.3f\t%.2f\t%.2f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, lv.Elevation, lv.TotalWeight, lv.HeightAboveBase, lv.WeightHeight2,
			lv.SeismicForce, lv.SeismicShear, lv.SeismicMoment)
	}
	tw.Flush()
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Ah:\t%.4f\n", res.Seismic.Ah)
	fmt.Fprintf(tw, "  Total weight (W):\t%.3f t\n", res.Seismic.TotalWeight)
	fmt.Fprintf(tw, "  Base shear (VB):\t%.3f t\n", res.Seismic.BaseShear)
	fmt.Fprintf(tw, "  Σ W·h²:\t%.2f t·m²\n", res.Seismic.SumWH2)
	tw.Flush()
	fmt.Fprintln(w)
}

func printStress(w io.Writer, t chimney.Table) {
	printSection(w, "STRESS RESULTS")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No.\tLevel (m)\tP (t)\tM (t·m)\tGoverns\tP/A (t/m²)\tM/Z (t/m²)\tσmax (t/m²)\tσmin (t/m²)\tStatus\t")
	for i, lv := range t {
		fmt.Fprintf(tw, "%d\t%.2f\t%.3f\t%.3f\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t\n",
			i+1, lv.Elevation, lv.AxialLoad, lv.DesignMoment, governs(lv),
			lv.StressDirect, lv.StressBending, lv.MaxCompression, lv.MinStress, statusMark(lv.Status))
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// summaryLines feeds the result box
func summaryLines(res *chimney.Result) []string {
	lines := []string{
		fmt.Sprintf("Total weight W      = %.3f t", res.Seismic.TotalWeight),
		fmt.Sprintf("Seismic base shear  = %.3f t", res.Seismic.BaseShear),
	}
	if base, ok := res.Table.Base(); ok {
		lines = append(lines,
			fmt.Sprintf("Base wind moment    = %.3f t·m", base.WindMoment),
			fmt.Sprintf("Base seismic moment = %.3f t·m", base.SeismicMoment),
		)
	}
	if res.CriticalLevel >= 0 {
		lv := res.Table[res.CriticalLevel]
		lines = append(lines, fmt.Sprintf("σmax = %.2f t/m² at level %d (%.2f m)", res.MaxCompression, res.CriticalLevel+1, lv.Elevation))
	}
	if res.Material != nil {
		check := "✓"
		if res.MaxCompression > res.Material.SigmaTonne {
			check = "⚠ exceeds permissible"
		}
		lines = append(lines, fmt.Sprintf("σcbc = %.2f t/m² (%s) %s", res.Material.SigmaTonne, res.Material.Grade, check))
	}
	if res.HasTension() {
		levels := make([]string, len(res.TensionLevels))
		for i, idx := range res.TensionLevels {
			levels[i] = fmt.Sprint(idx + 1)
		}
		lines = append(lines, fmt.Sprintf("⚠ TENSION at level(s) %s", joinShort(levels)))
	} else {
		lines = append(lines, "No tension at any level ✓")
	}
	return lines
}

func governs(lv chimney.Level) string {
	if lv.Governs == "" {
		return "-"
	}
	return string(lv.Governs)
}

func statusMark(s chimney.Status) string {
	if s == chimney.StatusTension {
		return "⚠ " + string(s)
	}
	return string(s)
}

func first(t chimney.Table) (chimney.Level, bool) {
	if len(t) == 0 {
		return chimney.Level{}, false
	}
	return t[0], true
}

func joinShort(items []string) string {
	const limit = 8
	if len(items) <= limit {
		return fmt.Sprint(items)
	}
	return fmt.Sprintf("%v and %d more", items[:limit], len(items)-limit)
}
