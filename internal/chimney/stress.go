package chimney

import (
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// Stress combines the cumulative axial load with the governing lateral
// moment of each level into direct and bending stresses.
// t must already carry both the wind and the seismic moment series.
func Stress(t Table) Table {
	out := t.Clone()
	if len(out) == 0 {
		return out
	}

	axial := make([]float64, len(out))
	floats.CumSum(axial, out.column(func(lv *Level) float64 { return lv.TotalWeight }))

	for i := range out {
		lv := &out[i]
		lv.AxialLoad = axial[i]
		lv.DesignMoment, lv.Governs = iscode.Envelope(iscode.LateralMoments{
			Wind:    lv.WindMoment,
			Seismic: lv.SeismicMoment,
		})

		lv.StressDirect = 0
		if lv.Area != 0 {
			lv.StressDirect = lv.AxialLoad / lv.Area
		}
		lv.StressBending = 0
		if lv.SectionModulus != 0 {
			lv.StressBending = lv.DesignMoment / lv.SectionModulus
		}

		lv.MaxCompression = lv.StressDirect + lv.StressBending
		lv.MinStress = lv.StressDirect - lv.StressBending
		lv.Status = Classify(lv.MinStress)
	}
	return out
}

// Classify returns TENSION for a negative minimum stress. Zero is OK.
func Classify(minStress float64) Status {
	if minStress < 0 {
		return StatusTension
	}
	return StatusOK
}
