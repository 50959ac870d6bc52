package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

func TestDefaultParams(t *testing.T) {
	p, err := Default().Params()
	if err != nil {
		t.Fatalf("Default().Params() error = %v", err)
	}
	want := chimney.DefaultParams()
	if p.Geometry.TotalHeight != want.Geometry.TotalHeight ||
		p.Geometry.TopInnerDiameter != want.Geometry.TopInnerDiameter ||
		p.Geometry.Density != want.Geometry.Density {
		t.Errorf("geometry = %+v, want %+v", p.Geometry, want.Geometry)
	}
	if p.Wind != want.Wind {
		t.Errorf("wind = %+v, want %+v", p.Wind, want.Wind)
	}
	if p.Seismic != want.Seismic {
		t.Errorf("seismic = %+v, want %+v", p.Seismic, want.Seismic)
	}
	if p.Grade != "M30" {
		t.Errorf("grade = %s, want M30", p.Grade)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chimney.toml")
	content := `
[geometry]
total_height = 45.0
taper_ratio = 60.0
self_weight = "frustum"

[wind]
basic_speed = 50.0

[seismic]
zone_factor = 0.24

[material]
grade = "M35"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error = %v", err)
	}

	if p.Geometry.TotalHeight != 45 || p.Geometry.TaperRatio != 60 {
		t.Errorf("geometry = %+v", p.Geometry)
	}
	if p.Geometry.TopInnerDiameter != 1.35 {
		t.Errorf("unset top inner diameter = %v, want default 1.35", p.Geometry.TopInnerDiameter)
	}
	if p.SelfWeight != chimney.SelfWeightFrustum {
		t.Errorf("self weight = %s, want frustum", p.SelfWeight)
	}
	if p.Wind.BasicSpeed != 50 || p.Wind.Cd != 0.8 {
		t.Errorf("wind = %+v", p.Wind)
	}
	if p.Seismic.ZoneFactor != 0.24 || p.Seismic.Importance != 1.5 {
		t.Errorf("seismic = %+v", p.Seismic)
	}
	if p.Grade != "M35" {
		t.Errorf("grade = %s, want M35", p.Grade)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[geometry\ntotal_height = 3"},
		{"unknown key", "[wind]\ngust_factor = 2.0"},
		{"wrong type", "[geometry]\ntotal_height = \"tall\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Geometry.TotalHeight != 30 {
		t.Errorf("TotalHeight = %v, want 30", cfg.Geometry.TotalHeight)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")

	cfg := Default()
	cfg.Geometry.Elevations = []float64{20, 15, 10, 5, 0}
	cfg.Material.Grade = "M40"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Geometry.Elevations) != 5 || got.Geometry.Elevations[1] != 15 {
		t.Errorf("Elevations = %v", got.Geometry.Elevations)
	}
	if got.Material.Grade != "M40" || got.Wind != cfg.Wind || got.Seismic != cfg.Seismic {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestParamsRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Geometry.SegmentStep = 0
	if _, err := cfg.Params(); err == nil {
		t.Error("Params() accepted zero segment step")
	}

	cfg = Default()
	cfg.Geometry.SelfWeight = "lumped"
	if _, err := cfg.Params(); err == nil {
		t.Error("Params() accepted unknown self-weight policy")
	}
}
