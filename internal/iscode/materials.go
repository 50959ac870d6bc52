package iscode

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Unit conversion constants
const (
	// Gravity converts kN to tonne-force (1 tf = 9.81 kN)
	Gravity = 9.81

	// TonnePerM2PerMPa converts MPa to tf/m² (1 MPa = 1000 kN/m²)
	TonnePerM2PerMPa = 1000 / Gravity
)

// KNToTonne converts a force in kN to tonne-force
func KNToTonne(kn float64) float64 {
	return kn / Gravity
}

// MPaToTonnePerM2 converts a stress in MPa (N/mm²) to tf/m²
func MPaToTonnePerM2(mpa float64) float64 {
	return mpa * TonnePerM2PerMPa
}

// permissibleCompression holds σcbc (MPa) per concrete grade
// IS:456 Table 21, as used for chimney shells under IS:4998
var permissibleCompression = map[string]float64{
	"M20": 7.0,
	"M25": 8.5,
	"M30": 10.0,
	"M35": 11.5,
	"M40": 13.0,
}

// DefaultGrade is used when a project does not name one
const DefaultGrade = "M30"

// GradeProperties holds the derived material constants of a concrete grade.
// These are informational and not consumed by the stress pipeline.
type GradeProperties struct {
	Grade string

	Fck   float64 // Characteristic cube strength (MPa)
	Sigma float64 // Permissible compressive stress σcbc (MPa)

	ModularRatio float64 // m = 280 / (3·σcbc)
	Ec           float64 // Static modulus 5700·√fck (MPa)

	SigmaTonne float64 // σcbc in tf/m²
	EcTonne    float64 // Ec in tf/m²
}

// Grades returns the supported concrete grade names in ascending strength order
func Grades() []string {
	names := make([]string, 0, len(permissibleCompression))
	for name := range permissibleCompression {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return permissibleCompression[names[i]] < permissibleCompression[names[j]]
	})
	return names
}

// Grade resolves a grade name (e.g. "M30", case-insensitive) to its material constants
func Grade(name string) (GradeProperties, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	sigma, ok := permissibleCompression[key]
	if !ok {
		return GradeProperties{}, fmt.Errorf("unknown concrete grade %q (supported: %s)", name, strings.Join(Grades(), ", "))
	}

	fck, err := strconv.ParseFloat(strings.TrimPrefix(key, "M"), 64)
	if err != nil {
		return GradeProperties{}, fmt.Errorf("invalid concrete grade %q: %w", name, err)
	}

	ec := 5700 * math.Sqrt(fck)

	return GradeProperties{
		Grade:        key,
		Fck:          fck,
		Sigma:        sigma,
		ModularRatio: 280 / (3 * sigma),
		Ec:           ec,
		SigmaTonne:   MPaToTonnePerM2(sigma),
		EcTonne:      MPaToTonnePerM2(ec),
	}, nil
}
