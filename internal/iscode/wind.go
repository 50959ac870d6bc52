package iscode

// Wind pressure provisions, IS:875 (Part 3) as simplified for IS:4998 chimneys

// k2Band is one step of the terrain/height multiplier
type k2Band struct {
	MaxHeight float64 // upper bound of the band (m), inclusive
	K2        float64
}

// k2Bands are ordered by height. Heights above the last band use K2Above.
var k2Bands = []k2Band{
	{MaxHeight: 10, K2: 1.00},
	{MaxHeight: 15, K2: 1.05},
	{MaxHeight: 20, K2: 1.07},
	{MaxHeight: 30, K2: 1.12},
}

// K2Above is the multiplier for heights beyond the last tabulated band
const K2Above = 1.15

// Default wind factors
const (
	DefaultK1 = 1.0 // risk coefficient
	DefaultK3 = 1.0 // topography factor
	DefaultCd = 0.8 // drag coefficient of a circular shell
)

// K2 returns the terrain/height multiplier for a height above ground (m).
// Negative heights (levels below grade) are treated as 0.
func K2(height float64) float64 {
	if height < 0 {
		height = 0
	}
	for _, band := range k2Bands {
		if height <= band.MaxHeight {
			return band.K2
		}
	}
	return K2Above
}

// DesignWindSpeed calculates Vz = Vb·k1·k2·k3 (m/s)
func DesignWindSpeed(vb, k1, k2, k3 float64) float64 {
	return vb * k1 * k2 * k3
}

// DesignWindPressure calculates pz = 0.6·Vz² in kN/m² for Vz in m/s
func DesignWindPressure(vz float64) float64 {
	return 0.6 * vz * vz / 1000
}
