package chimney

import (
	"math"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// LegacyElevations is the fixed station list of the reference 30 m chimney:
// a 0.3 m cap above the shell top, 2.5 m lifts to grade, and two stations
// below grade down to the raft interface.
var LegacyElevations = []float64{
	30.3, 30.0, 27.5, 25.0, 22.5, 20.0, 17.5, 15.0,
	12.5, 10.0, 7.5, 5.0, 2.5, 0.0, -1.7, -3.0,
}

// GeometryParams are the global inputs of the geometry generator
type GeometryParams struct {
	TotalHeight      float64 // m
	TopInnerDiameter float64 // m
	Thickness        float64 // Default shell thickness (m)
	Density          float64 // t/m³

	// TaperRatio is X in "1 in X": the radius grows by 1 per X of depth.
	// 0 means a cylindrical shell.
	TaperRatio float64

	// SegmentStep walks from TotalHeight down to 0 when Elevations is empty
	SegmentStep float64

	// Elevations, when given, fixes the stations (top to bottom)
	Elevations []float64
}

// Slope returns the radius increase per metre of depth
func (p GeometryParams) Slope() float64 {
	if p.TaperRatio <= 0 {
		return 0
	}
	return 1 / p.TaperRatio
}

// Validate checks the generator inputs
func (p GeometryParams) Validate() error {
	if p.TopInnerDiameter < 0 || !finite(p.TopInnerDiameter) {
		return paramError("top inner diameter must be non-negative, got %.3f", p.TopInnerDiameter)
	}
	if p.Thickness < 0 || !finite(p.Thickness) {
		return paramError("thickness must be non-negative, got %.3f", p.Thickness)
	}
	if p.Density < 0 || !finite(p.Density) {
		return paramError("density must be non-negative, got %.3f", p.Density)
	}
	if p.TaperRatio < 0 {
		return paramError("taper ratio must be non-negative, got %.3f", p.TaperRatio)
	}
	if len(p.Elevations) > 0 {
		return nil
	}
	if p.TotalHeight <= 0 || !finite(p.TotalHeight) {
		return paramError("total height must be positive, got %.3f", p.TotalHeight)
	}
	if p.SegmentStep <= 0 || !finite(p.SegmentStep) {
		return paramError("segment step must be positive, got %.3f", p.SegmentStep)
	}
	return nil
}

// WindParams are the inputs of the wind load distributor
type WindParams struct {
	BasicSpeed float64 // Vb (m/s)
	K1         float64 // Risk coefficient
	K3         float64 // Topography factor
	Cd         float64 // Drag coefficient
}

// SeismicParams are the inputs of the seismic load distributor
type SeismicParams struct {
	ZoneFactor          float64 // Z
	Importance          float64 // I
	ResponseReduction   float64 // R
	SpectralCoefficient float64 // Sa/g
}

// SelfWeightPolicy selects how shell self-weight is integrated
type SelfWeightPolicy string

const (
	// SelfWeightAuto uses frustum integration when diameters vary, simple otherwise
	SelfWeightAuto SelfWeightPolicy = "auto"
	// SelfWeightSimple is the prismatic approximation area·h·ρ
	SelfWeightSimple SelfWeightPolicy = "simple"
	// SelfWeightFrustum integrates the hollow cone between adjacent levels
	SelfWeightFrustum SelfWeightPolicy = "frustum"
)

// ParsePolicy resolves a policy name, defaulting to auto for ""
func ParsePolicy(name string) (SelfWeightPolicy, error) {
	switch SelfWeightPolicy(name) {
	case "", SelfWeightAuto:
		return SelfWeightAuto, nil
	case SelfWeightSimple, SelfWeightFrustum:
		return SelfWeightPolicy(name), nil
	}
	return "", paramError("unknown self-weight policy %q (auto, simple, frustum)", name)
}

// Params bundles every global input of the pipeline
type Params struct {
	Geometry   GeometryParams
	Wind       WindParams
	Seismic    SeismicParams
	Grade      string
	SelfWeight SelfWeightPolicy
}

// DefaultParams returns the parameters of the reference 30 m chimney
func DefaultParams() Params {
	return Params{
		Geometry: GeometryParams{
			TotalHeight:      30,
			TopInnerDiameter: 1.35,
			Thickness:        0.20,
			Density:          2.5,
			SegmentStep:      2.5,
		},
		Wind: WindParams{
			BasicSpeed: 47,
			K1:         iscode.DefaultK1,
			K3:         iscode.DefaultK3,
			Cd:         iscode.DefaultCd,
		},
		Seismic: SeismicParams{
			ZoneFactor:          iscode.DefaultZoneFactor,
			Importance:          iscode.DefaultImportanceFactor,
			ResponseReduction:   iscode.DefaultResponseReduction,
			SpectralCoefficient: iscode.DefaultSpectralCoefficient,
		},
		Grade:      iscode.DefaultGrade,
		SelfWeight: SelfWeightAuto,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
