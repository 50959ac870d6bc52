// Package config loads the global design parameters of a chimney from TOML files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/iscode"
)

// Config mirrors chimney.Params in a file-friendly layout
type Config struct {
	Geometry Geometry `toml:"geometry" json:"geometry" yaml:"geometry"`
	Wind     Wind     `toml:"wind" json:"wind" yaml:"wind"`
	Seismic  Seismic  `toml:"seismic" json:"seismic" yaml:"seismic"`
	Material Material `toml:"material" json:"material" yaml:"material"`
}

// Geometry holds the generator inputs
type Geometry struct {
	TotalHeight      float64   `toml:"total_height" json:"total_height" yaml:"total_height"`
	TopInnerDiameter float64   `toml:"top_inner_diameter" json:"top_inner_diameter" yaml:"top_inner_diameter"`
	Thickness        float64   `toml:"thickness" json:"thickness" yaml:"thickness"`
	TaperRatio       float64   `toml:"taper_ratio" json:"taper_ratio" yaml:"taper_ratio"`
	SegmentStep      float64   `toml:"segment_step" json:"segment_step" yaml:"segment_step"`
	Elevations       []float64 `toml:"elevations,omitempty" json:"elevations,omitempty" yaml:"elevations,omitempty"`
	SelfWeight       string    `toml:"self_weight" json:"self_weight" yaml:"self_weight"`
}

// Wind holds the wind load inputs
type Wind struct {
	BasicSpeed float64 `toml:"basic_speed" json:"basic_speed" yaml:"basic_speed"`
	K1         float64 `toml:"k1" json:"k1" yaml:"k1"`
	K3         float64 `toml:"k3" json:"k3" yaml:"k3"`
	Cd         float64 `toml:"cd" json:"cd" yaml:"cd"`
}

// Seismic holds the seismic load inputs
type Seismic struct {
	ZoneFactor          float64 `toml:"zone_factor" json:"zone_factor" yaml:"zone_factor"`
	Importance          float64 `toml:"importance" json:"importance" yaml:"importance"`
	ResponseReduction   float64 `toml:"response_reduction" json:"response_reduction" yaml:"response_reduction"`
	SpectralCoefficient float64 `toml:"spectral_coefficient" json:"spectral_coefficient" yaml:"spectral_coefficient"`
}

// Material holds the concrete inputs
type Material struct {
	Grade   string  `toml:"grade" json:"grade" yaml:"grade"`
	Density float64 `toml:"density" json:"density" yaml:"density"`
}

// Default returns the configuration of the reference 30 m chimney
func Default() Config {
	return FromParams(chimney.DefaultParams())
}

// FromParams converts pipeline parameters to their file layout
func FromParams(p chimney.Params) Config {
	return Config{
		Geometry: Geometry{
			TotalHeight:      p.Geometry.TotalHeight,
			TopInnerDiameter: p.Geometry.TopInnerDiameter,
			Thickness:        p.Geometry.Thickness,
			TaperRatio:       p.Geometry.TaperRatio,
			SegmentStep:      p.Geometry.SegmentStep,
			Elevations:       append([]float64(nil), p.Geometry.Elevations...),
			SelfWeight:       string(p.SelfWeight),
		},
		Wind: Wind{
			BasicSpeed: p.Wind.BasicSpeed,
			K1:         p.Wind.K1,
			K3:         p.Wind.K3,
			Cd:         p.Wind.Cd,
		},
		Seismic: Seismic{
			ZoneFactor:          p.Seismic.ZoneFactor,
			Importance:          p.Seismic.Importance,
			ResponseReduction:   p.Seismic.ResponseReduction,
			SpectralCoefficient: p.Seismic.SpectralCoefficient,
		},
		Material: Material{
			Grade:   p.Grade,
			Density: p.Geometry.Density,
		},
	}
}

// Params converts the configuration to pipeline parameters
func (c Config) Params() (chimney.Params, error) {
	policy, err := chimney.ParsePolicy(c.Geometry.SelfWeight)
	if err != nil {
		return chimney.Params{}, err
	}

	p := chimney.Params{
		Geometry: chimney.GeometryParams{
			TotalHeight:      c.Geometry.TotalHeight,
			TopInnerDiameter: c.Geometry.TopInnerDiameter,
			Thickness:        c.Geometry.Thickness,
			Density:          c.Material.Density,
			TaperRatio:       c.Geometry.TaperRatio,
			SegmentStep:      c.Geometry.SegmentStep,
			Elevations:       append([]float64(nil), c.Geometry.Elevations...),
		},
		Wind: chimney.WindParams{
			BasicSpeed: c.Wind.BasicSpeed,
			K1:         c.Wind.K1,
			K3:         c.Wind.K3,
			Cd:         c.Wind.Cd,
		},
		Seismic: chimney.SeismicParams{
			ZoneFactor:          c.Seismic.ZoneFactor,
			Importance:          c.Seismic.Importance,
			ResponseReduction:   c.Seismic.ResponseReduction,
			SpectralCoefficient: c.Seismic.SpectralCoefficient,
		},
		Grade:      c.Material.Grade,
		SelfWeight: policy,
	}

	if err := p.Geometry.Validate(); err != nil {
		return chimney.Params{}, err
	}
	if p.Grade != "" {
		if _, err := iscode.Grade(p.Grade); err != nil {
			return chimney.Params{}, err
		}
	}
	return p, nil
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}

// Write saves the configuration as TOML
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
