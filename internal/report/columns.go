// Package report exports chimney results as CSV, XLSX and PDF documents and
// imports level grids from XLSX workbooks.
package report

import (
	"strconv"
	"time"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/project"
)

// Report is everything an export needs
type Report struct {
	Name      string
	ID        string
	Params    chimney.Params
	Result    *chimney.Result
	Generated time.Time
}

// column is one exported field of a level
type column struct {
	Header string
	Value  func(lv chimney.Level) float64
}

// textColumn is a non-numeric exported field
type textColumn struct {
	Header string
	Value  func(lv chimney.Level) string
}

var (
	colElevation = column{"Level (m)", func(lv chimney.Level) float64 { return lv.Elevation }}
	colSegment   = column{"Segment_H (m)", func(lv chimney.Level) float64 { return lv.SegmentHeight }}
	colOuter     = column{"Outer_Dia (m)", func(lv chimney.Level) float64 { return lv.OuterDiameter }}
	colInner     = column{"Inner_Dia (m)", func(lv chimney.Level) float64 { return lv.InnerDiameter }}
	colThickness = column{"Thickness (m)", func(lv chimney.Level) float64 { return lv.Thickness }}
	colDensity   = column{"Density (t/m3)", func(lv chimney.Level) float64 { return lv.Density }}
	colArea      = column{"Area (m2)", func(lv chimney.Level) float64 { return lv.Area }}
	colInertia   = column{"Inertia (m4)", func(lv chimney.Level) float64 { return lv.MomentOfInertia }}
	colModulus   = column{"Z_Modulus (m3)", func(lv chimney.Level) float64 { return lv.SectionModulus }}
	colShell     = column{"Shell_Wt (t)", func(lv chimney.Level) float64 { return lv.ShellWeight }}
	colLiner     = column{"Liner_Load (t)", func(lv chimney.Level) float64 { return lv.LinerLoad }}
	colPlatform  = column{"Platform_Load (t)", func(lv chimney.Level) float64 { return lv.PlatformLoad }}
	colCorbel    = column{"Corbel_Load (t)", func(lv chimney.Level) float64 { return lv.CorbelLoad }}
	colTotal     = column{"Total_Node_Wt (t)", func(lv chimney.Level) float64 { return lv.TotalWeight }}

	colK2         = column{"k2", func(lv chimney.Level) float64 { return lv.K2 }}
	colVz         = column{"Vz (m/s)", func(lv chimney.Level) float64 { return lv.WindSpeed }}
	colPz         = column{"pz (kN/m2)", func(lv chimney.Level) float64 { return lv.WindPressure }}
	colWindForce  = column{"Wind_Force (t)", func(lv chimney.Level) float64 { return lv.WindForce }}
	colWindShear  = column{"Wind_Shear (t)", func(lv chimney.Level) float64 { return lv.WindShear }}
	colWindMoment = column{"Wind_Moment (t.m)", func(lv chimney.Level) float64 { return lv.WindMoment }}
	colHeight     = column{"Height_h (m)", func(lv chimney.Level) float64 { return lv.HeightAboveBase }}
	colWH2        = column{"Wi_hi2 (t.m2)", func(lv chimney.Level) float64 { return lv.WeightHeight2 }}
	colSeisForce  = column{"Seismic_Force (t)", func(lv chimney.Level) float64 { return lv.SeismicForce }}
	colSeisShear  = column{"Seismic_Shear (t)", func(lv chimney.Level) float64 { return lv.SeismicShear }}
	colSeisMoment = column{"Seismic_Moment (t.m)", func(lv chimney.Level) float64 { return lv.SeismicMoment }}
	colAxial      = column{"Axial_P (t)", func(lv chimney.Level) float64 { return lv.AxialLoad }}
	colDesign     = column{"Moment_M (t.m)", func(lv chimney.Level) float64 { return lv.DesignMoment }}
	colDirect     = column{"Stress_Direct (t/m2)", func(lv chimney.Level) float64 { return lv.StressDirect }}
	colBending    = column{"Stress_Bending (t/m2)", func(lv chimney.Level) float64 { return lv.StressBending }}
	colMaxComp    = column{"Max_Comp (t/m2)", func(lv chimney.Level) float64 { return lv.MaxCompression }}
	colMinStress  = column{"Min_Stress (t/m2)", func(lv chimney.Level) float64 { return lv.MinStress }}
	colGoverns    = textColumn{"Governs", func(lv chimney.Level) string { return string(lv.Governs) }}
	colStatus     = textColumn{"Status", func(lv chimney.Level) string { return string(lv.Status) }}
)

// sheet is a group of columns exported together
type sheet struct {
	Name    string
	Numbers []column
	Texts   []textColumn
}

// stageSheets mirrors the four stages of the calculation
var stageSheets = []sheet{
	{
		Name: "Dead Loads",
		Numbers: []column{
			colElevation, colSegment, colOuter, colInner, colThickness, colDensity,
			colArea, colInertia, colModulus, colShell, colLiner, colPlatform, colCorbel, colTotal,
		},
	},
	{
		Name:    "Wind Loads",
		Numbers: []column{colElevation, colK2, colVz, colPz, colWindForce, colWindShear, colWindMoment},
	},
	{
		Name:    "Seismic Loads",
		Numbers: []column{colElevation, colTotal, colHeight, colWH2, colSeisForce, colSeisShear, colSeisMoment},
	},
	{
		Name:    "Stress Results",
		Numbers: []column{colElevation, colAxial, colDesign, colDirect, colBending, colMaxComp, colMinStress},
		Texts:   []textColumn{colGoverns, colStatus},
	},
}

// fullSheet has every column, for flat exports
var fullSheet = sheet{
	Name: "Calculation",
	Numbers: []column{
		colElevation, colSegment, colOuter, colInner, colThickness, colDensity,
		colArea, colInertia, colModulus, colShell, colLiner, colPlatform, colCorbel, colTotal,
		colK2, colVz, colPz, colWindForce, colWindShear, colWindMoment,
		colHeight, colWH2, colSeisForce, colSeisShear, colSeisMoment,
		colAxial, colDesign, colDirect, colBending, colMaxComp, colMinStress,
	},
	Texts: []textColumn{colGoverns, colStatus},
}

// gridSheetName holds the importable input grid
const gridSheetName = "Grid"

func (s sheet) headers() []string {
	out := make([]string, 0, len(s.Numbers)+len(s.Texts))
	for _, c := range s.Numbers {
		out = append(out, c.Header)
	}
	for _, c := range s.Texts {
		out = append(out, c.Header)
	}
	return out
}

func (s sheet) row(lv chimney.Level) []any {
	out := make([]any, 0, len(s.Numbers)+len(s.Texts))
	for _, c := range s.Numbers {
		out = append(out, c.Value(lv))
	}
	for _, c := range s.Texts {
		out = append(out, c.Value(lv))
	}
	return out
}

func (s sheet) strings(lv chimney.Level) []string {
	out := make([]string, 0, len(s.Numbers)+len(s.Texts))
	for _, c := range s.Numbers {
		out = append(out, formatFloat(c.Value(lv)))
	}
	for _, c := range s.Texts {
		out = append(out, c.Value(lv))
	}
	return out
}

func gridRow(r project.Record) []any {
	vals := r.Values()
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
