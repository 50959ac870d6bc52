package chimney

import (
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// integrate turns per-level lateral forces into cumulative shear and
// overturning moment by the top-down cantilever method. Shear at level i is
// the sum of forces at and above i; moment grows by the shear of the level
// above times the height of the segment just traversed.
func integrate(forces, heights []float64) (shear, moment []float64) {
	n := len(forces)
	shear = make([]float64, n)
	moment = make([]float64, n)
	if n == 0 {
		return shear, moment
	}

	floats.CumSum(shear, forces)
	for i := 1; i < n; i++ {
		moment[i] = moment[i-1] + shear[i-1]*heights[i-1]
	}
	return shear, moment
}

// Wind distributes the design wind load over the levels of t.
// The force on each segment is attributed to the level at its top.
func Wind(t Table, p WindParams) Table {
	out := t.Clone()

	forces := make([]float64, len(out))
	for i := range out {
		lv := &out[i]
		lv.K2 = iscode.K2(lv.Elevation)
		lv.WindSpeed = iscode.DesignWindSpeed(p.BasicSpeed, p.K1, lv.K2, p.K3)
		lv.WindPressure = iscode.DesignWindPressure(lv.WindSpeed)

		projected := lv.OuterDiameter * lv.SegmentHeight
		lv.WindForce = iscode.KNToTonne(lv.WindPressure * projected * p.Cd)
		forces[i] = lv.WindForce
	}

	shear, moment := integrate(forces, out.column(func(lv *Level) float64 { return lv.SegmentHeight }))
	for i := range out {
		out[i].WindShear = shear[i]
		out[i].WindMoment = moment[i]
	}
	return out
}

// SeismicSummary holds the global results of the seismic distribution
type SeismicSummary struct {
	TotalWeight float64 // ΣW (tf)
	Ah          float64 // Horizontal seismic coefficient
	BaseShear   float64 // Ah·ΣW (tf)
	SumWH2      float64 // Σ W·h² (tf·m²)
}

// Seismic distributes the seismic base shear over the levels of t in
// proportion to W·h², h being the height above the lowest level.
func Seismic(t Table, p SeismicParams) (Table, SeismicSummary) {
	out := t.Clone()
	var sum SeismicSummary
	if len(out) == 0 {
		return out, sum
	}

	weights := out.column(func(lv *Level) float64 { return lv.TotalWeight })
	base := floats.Min(out.column(func(lv *Level) float64 { return lv.Elevation }))

	sum.TotalWeight = floats.Sum(weights)
	sum.Ah = iscode.HorizontalCoefficient(p.ZoneFactor, p.Importance, p.ResponseReduction, p.SpectralCoefficient)
	sum.BaseShear = sum.Ah * sum.TotalWeight

	for i := range out {
		lv := &out[i]
		lv.HeightAboveBase = lv.Elevation - base
		lv.WeightHeight2 = lv.TotalWeight * lv.HeightAboveBase * lv.HeightAboveBase
		sum.SumWH2 += lv.WeightHeight2
	}

	forces := make([]float64, len(out))
	if sum.SumWH2 != 0 {
		for i := range out {
			forces[i] = sum.BaseShear * out[i].WeightHeight2 / sum.SumWH2
		}
	}

	shear, moment := integrate(forces, out.column(func(lv *Level) float64 { return lv.SegmentHeight }))
	for i := range out {
		out[i].SeismicForce = forces[i]
		out[i].SeismicShear = shear[i]
		out[i].SeismicMoment = moment[i]
	}
	return out, sum
}
