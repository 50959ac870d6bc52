// Package chimney derives level-wise loads and stresses of a reinforced
// concrete chimney shell.
//
// The shell is discretised into an ordered Table of levels, top (index 0) to
// base (last index). Each stage of the pipeline is a pure function that takes
// a Table and returns a new enriched Table:
//
//	Generate / Derive  geometry, section properties, self-weight
//	Wind               wind force, shear, moment
//	Seismic            seismic force, shear, moment
//	Stress             axial load, design moment, stresses, tension flag
//
// Units are metres and tonne-force throughout: loads in tf, moments in tf·m,
// stresses in tf/m², density in t/m³.
package chimney

import (
	"fmt"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// Status classifies the extreme fibre stress at a level
type Status string

const (
	StatusOK      Status = "OK"
	StatusTension Status = "TENSION"
)

// Level is one station of the discretised shell
type Level struct {
	// Geometry (m)
	Elevation     float64 // Elevation of this station, decreasing down the table
	OuterDiameter float64 // Do
	InnerDiameter float64 // Di
	Thickness     float64 // (Do - Di)/2
	SegmentHeight float64 // Height of the shell segment below this level, 0 at the base

	// Section properties
	Density         float64 // Concrete density (t/m³)
	Area            float64 // Cross-sectional area (m²)
	MomentOfInertia float64 // Second moment of area (m⁴)
	SectionModulus  float64 // I / (Do/2) (m³)

	// Vertical loads (tf)
	ShellWeight  float64 // Derived self-weight of the segment below
	LinerLoad    float64 // User supplied
	PlatformLoad float64 // User supplied
	CorbelLoad   float64 // User supplied
	TotalWeight  float64 // Sum of the four components

	// Wind
	K2           float64 // Terrain/height multiplier used
	WindSpeed    float64 // Vz (m/s)
	WindPressure float64 // pz (kN/m²)
	WindForce    float64 // tf
	WindShear    float64 // Cumulative from top (tf)
	WindMoment   float64 // Cumulative from top (tf·m)

	// Seismic
	HeightAboveBase float64 // elevation - min(elevation) (m)
	WeightHeight2   float64 // W·h² (tf·m²)
	SeismicForce    float64 // tf
	SeismicShear    float64 // Cumulative from top (tf)
	SeismicMoment   float64 // Cumulative from top (tf·m)

	// Combined
	AxialLoad      float64       // Cumulative total weight from top (tf)
	DesignMoment   float64       // max(WindMoment, SeismicMoment) (tf·m)
	Governs        iscode.Action // Action producing DesignMoment
	StressDirect   float64       // P/A (tf/m²)
	StressBending  float64       // M/Z (tf/m²)
	MaxCompression float64       // direct + bending (tf/m²)
	MinStress      float64       // direct - bending (tf/m²)
	Status         Status
}

// Table is the ordered list of levels, top to base
type Table []Level

// Clone returns an independent copy of the table
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Base returns the structural base level (last in the table)
func (t Table) Base() (Level, bool) {
	if len(t) == 0 {
		return Level{}, false
	}
	return t[len(t)-1], true
}

// column extracts one float field of every level
func (t Table) column(field func(*Level) float64) []float64 {
	out := make([]float64, len(t))
	for i := range t {
		out[i] = field(&t[i])
	}
	return out
}

// ValidationError reports invalid input geometry or parameters
type ValidationError struct {
	Level int // Index of the offending level, -1 for global parameters
	msg   string
}

func (e *ValidationError) Error() string {
	if e.Level < 0 {
		return e.msg
	}
	return fmt.Sprintf("level %d: %s", e.Level+1, e.msg)
}

func paramError(format string, args ...any) error {
	return &ValidationError{Level: -1, msg: fmt.Sprintf(format, args...)}
}

func levelError(i int, format string, args ...any) error {
	return &ValidationError{Level: i, msg: fmt.Sprintf(format, args...)}
}
