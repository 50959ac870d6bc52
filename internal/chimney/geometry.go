package chimney

import "math"

// elevationTolerance absorbs floating-point drift when stepping to grade
const elevationTolerance = 1e-9

// Generate builds the level table from the global geometry parameters.
// With fixed Elevations every station is used as given; otherwise stations
// are spaced SegmentStep apart from TotalHeight down to exactly 0.
func Generate(p GeometryParams) (Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	elevations := p.Elevations
	if len(elevations) == 0 {
		elevations = SteppedElevations(p.TotalHeight, p.SegmentStep)
	}

	top := elevations[0]
	slope := p.Slope()

	t := make(Table, len(elevations))
	for i, z := range elevations {
		depth := top - z
		inner := p.TopInnerDiameter + 2*depth*slope
		t[i] = Level{
			Elevation:     z,
			InnerDiameter: inner,
			OuterDiameter: inner + 2*p.Thickness,
			Thickness:     p.Thickness,
			Density:       p.Density,
		}
	}

	return Derive(t, SelfWeightAuto)
}

// SteppedElevations walks from height down to 0 inclusive in steps of step.
// The final step is clamped so the list ends exactly at 0.
func SteppedElevations(height, step float64) []float64 {
	if height <= 0 || step <= 0 {
		return []float64{0}
	}

	n := int(math.Ceil(height/step - elevationTolerance))
	out := make([]float64, 0, n+1)
	for k := 0; k < n; k++ {
		z := height - float64(k)*step
		if z <= elevationTolerance {
			break
		}
		out = append(out, z)
	}
	return append(out, 0)
}

// Section holds the properties of an annular cross-section
type Section struct {
	Area            float64 // m²
	MomentOfInertia float64 // m⁴
	SectionModulus  float64 // m³
}

// AnnularSection calculates the properties of a hollow circular section
func AnnularSection(outer, inner float64) Section {
	d2 := outer*outer - inner*inner
	d4 := math.Pow(outer, 4) - math.Pow(inner, 4)

	s := Section{
		Area:            math.Pi / 4 * d2,
		MomentOfInertia: math.Pi / 64 * d4,
	}
	if outer > 0 {
		s.SectionModulus = s.MomentOfInertia / (outer / 2)
	}
	return s
}

// FrustumVolume is the volume of a solid cone frustum of height h with end radii r1 and r2
func FrustumVolume(h, r1, r2 float64) float64 {
	return math.Pi * h / 3 * (r1*r1 + r1*r2 + r2*r2)
}

// ShellFrustumWeight is the weight of the hollow tapered segment between an
// upper and a lower level. Diameters are converted to radii here.
func ShellFrustumWeight(upper, lower Level, h, density float64) float64 {
	if h <= 0 {
		return 0
	}
	outer := FrustumVolume(h, upper.OuterDiameter/2, lower.OuterDiameter/2)
	inner := FrustumVolume(h, upper.InnerDiameter/2, lower.InnerDiameter/2)
	return density * (outer - inner)
}

// Validate checks the level table for invalid geometry.
// Elevations must not increase down the table. Equal adjacent elevations are
// accepted as a zero-height segment marking a construction joint.
func (t Table) Validate() error {
	if len(t) == 0 {
		return paramError("level table is empty")
	}
	for i, lv := range t {
		if !finite(lv.Elevation) || !finite(lv.OuterDiameter) || !finite(lv.InnerDiameter) {
			return levelError(i, "non-numeric geometry")
		}
		if lv.InnerDiameter < 0 {
			return levelError(i, "inner diameter %.3f m is negative", lv.InnerDiameter)
		}
		if lv.OuterDiameter < lv.InnerDiameter {
			return levelError(i, "outer diameter %.3f m is smaller than inner diameter %.3f m", lv.OuterDiameter, lv.InnerDiameter)
		}
		if lv.Density < 0 || !finite(lv.Density) {
			return levelError(i, "density %.3f t/m³ is invalid", lv.Density)
		}
		if i > 0 && lv.Elevation > t[i-1].Elevation {
			return levelError(i, "elevation %.3f m is above the level before it (%.3f m)", lv.Elevation, t[i-1].Elevation)
		}
	}
	return nil
}

// Derive recomputes segment heights, thickness, section properties and shell
// self-weight from the geometry and user loads of t. User loads are kept.
func Derive(t Table, policy SelfWeightPolicy) (Table, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if policy == SelfWeightAuto || policy == "" {
		policy = SelfWeightSimple
		if t.Tapered() {
			policy = SelfWeightFrustum
		}
	}

	out := t.Clone()
	last := len(out) - 1

	for i := range out {
		lv := &out[i]
		lv.Thickness = (lv.OuterDiameter - lv.InnerDiameter) / 2

		sec := AnnularSection(lv.OuterDiameter, lv.InnerDiameter)
		lv.Area = sec.Area
		lv.MomentOfInertia = sec.MomentOfInertia
		lv.SectionModulus = sec.SectionModulus
	}

	// Walk adjacent (upper, lower) pairs; the base has no segment below it.
	for i := 0; i < last; i++ {
		upper, lower := &out[i], out[i+1]
		upper.SegmentHeight = upper.Elevation - lower.Elevation

		switch policy {
		case SelfWeightFrustum:
			upper.ShellWeight = ShellFrustumWeight(*upper, lower, upper.SegmentHeight, upper.Density)
		default:
			upper.ShellWeight = upper.Area * upper.SegmentHeight * upper.Density
		}
	}
	out[last].SegmentHeight = 0
	out[last].ShellWeight = 0

	for i := range out {
		lv := &out[i]
		lv.TotalWeight = lv.ShellWeight + lv.LinerLoad + lv.PlatformLoad + lv.CorbelLoad
	}

	return out, nil
}

// Tapered reports whether any diameter varies from level to level
func (t Table) Tapered() bool {
	for i := 1; i < len(t); i++ {
		if t[i].OuterDiameter != t[0].OuterDiameter || t[i].InnerDiameter != t[0].InnerDiameter {
			return true
		}
	}
	return false
}
