package chimney

import (
	"fmt"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// Result holds the fully enriched table and its summary values
type Result struct {
	Table    Table
	Seismic  SeismicSummary
	Policy   SelfWeightPolicy
	Material *iscode.GradeProperties // nil when no grade was given

	// Summary
	TensionLevels  []int   // Indices of levels with tension at the extreme fibre
	MaxCompression float64 // Largest extreme fibre compression (tf/m²)
	CriticalLevel  int     // Index of the level with MaxCompression, -1 if empty
}

// HasTension reports whether any level is in tension
func (r *Result) HasTension() bool {
	return len(r.TensionLevels) > 0
}

// Analyze runs the full pipeline on t. The input table is not modified.
func Analyze(t Table, p Params) (*Result, error) {
	policy, err := ParsePolicy(string(p.SelfWeight))
	if err != nil {
		return nil, err
	}

	result := &Result{Policy: policy, CriticalLevel: -1}

	if p.Grade != "" {
		g, err := iscode.Grade(p.Grade)
		if err != nil {
			return nil, err
		}
		result.Material = &g
	}

	if policy == SelfWeightAuto {
		result.Policy = SelfWeightSimple
		if t.Tapered() {
			result.Policy = SelfWeightFrustum
		}
	}

	base, err := Derive(t, result.Policy)
	if err != nil {
		return nil, fmt.Errorf("deriving geometry: %w", err)
	}

	// Wind and seismic each write only their own columns, so chaining them
	// is the same as running both on base and merging.
	withWind := Wind(base, p.Wind)
	withSeismic, summary := Seismic(withWind, p.Seismic)

	result.Table = Stress(withSeismic)
	result.Seismic = summary

	for i, lv := range result.Table {
		if lv.Status == StatusTension {
			result.TensionLevels = append(result.TensionLevels, i)
		}
		if result.CriticalLevel < 0 || lv.MaxCompression > result.MaxCompression {
			result.MaxCompression = lv.MaxCompression
			result.CriticalLevel = i
		}
	}

	return result, nil
}
