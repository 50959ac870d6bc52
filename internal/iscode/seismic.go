package iscode

// Seismic coefficient provisions, IS:1893 (Part 1) equivalent static method

// Default seismic factors of a Zone III power-plant chimney
const (
	DefaultZoneFactor          = 0.16
	DefaultImportanceFactor    = 1.5
	DefaultResponseReduction   = 3.0
	DefaultSpectralCoefficient = 2.5
)

// Zones maps the IS:1893 seismic zone to its zone factor Z
var Zones = map[string]float64{
	"II":  0.10,
	"III": 0.16,
	"IV":  0.24,
	"V":   0.36,
}

// HorizontalCoefficient calculates Ah = (Z/2)·(I/R)·(Sa/g).
// A zero response reduction factor yields 0 rather than a division fault.
func HorizontalCoefficient(z, importance, r, saG float64) float64 {
	if r == 0 {
		return 0
	}
	return (z / 2) * (importance / r) * saG
}
