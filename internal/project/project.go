// Package project reads and writes persisted chimney projects.
//
// A project document has a meta object (identity, height, grade and the full
// parameter set) and a grid of level records, top to bottom. JSON is the
// native format; YAML and TOML documents with the same schema are accepted
// and chosen by file extension.
package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/config"
)

// Document is a persisted project
type Document struct {
	Meta Meta     `json:"meta" yaml:"meta" toml:"meta"`
	Grid []Record `json:"grid" yaml:"grid" toml:"grid"`
}

// Meta identifies the project and carries its global parameters
type Meta struct {
	ID     string        `json:"id" yaml:"id" toml:"id"`
	Name   string        `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Height float64       `json:"height" yaml:"height" toml:"height"`
	Grade  string        `json:"grade" yaml:"grade" toml:"grade"`
	Params config.Config `json:"params" yaml:"params" toml:"params"`
}

// Record is one row of the user-editable level grid
type Record struct {
	Elevation     float64 `json:"elevation" yaml:"elevation" toml:"elevation"`
	OuterDiameter float64 `json:"outer_diameter" yaml:"outer_diameter" toml:"outer_diameter"`
	InnerDiameter float64 `json:"inner_diameter" yaml:"inner_diameter" toml:"inner_diameter"`
	Thickness     float64 `json:"thickness" yaml:"thickness" toml:"thickness"`
	Density       float64 `json:"density" yaml:"density" toml:"density"`
	PlatformLoad  float64 `json:"platform_load" yaml:"platform_load" toml:"platform_load"`
	LinerLoad     float64 `json:"liner_load" yaml:"liner_load" toml:"liner_load"`
	CorbelLoad    float64 `json:"corbel_load" yaml:"corbel_load" toml:"corbel_load"`
}

// Columns lists the grid columns in persisted order
var Columns = []string{
	"elevation", "outer_diameter", "inner_diameter", "thickness",
	"density", "platform_load", "liner_load", "corbel_load",
}

// Values returns the record fields in Columns order
func (r Record) Values() []float64 {
	return []float64{
		r.Elevation, r.OuterDiameter, r.InnerDiameter, r.Thickness,
		r.Density, r.PlatformLoad, r.LinerLoad, r.CorbelLoad,
	}
}

// RecordFromValues builds a record from values in Columns order
func RecordFromValues(v []float64) (Record, error) {
	if len(v) != len(Columns) {
		return Record{}, fmt.Errorf("expected %d columns (%s), got %d", len(Columns), strings.Join(Columns, ", "), len(v))
	}
	return Record{
		Elevation:     v[0],
		OuterDiameter: v[1],
		InnerDiameter: v[2],
		Thickness:     v[3],
		Density:       v[4],
		PlatformLoad:  v[5],
		LinerLoad:     v[6],
		CorbelLoad:    v[7],
	}, nil
}

// New creates a project document for a table and its parameters
func New(name string, p chimney.Params, t chimney.Table) *Document {
	return &Document{
		Meta: Meta{
			ID:     uuid.New().String(),
			Name:   name,
			Height: p.Geometry.TotalHeight,
			Grade:  p.Grade,
			Params: config.FromParams(p),
		},
		Grid: FromTable(t),
	}
}

// FromTable extracts the user-entered and geometry columns of a table
func FromTable(t chimney.Table) []Record {
	grid := make([]Record, len(t))
	for i, lv := range t {
		grid[i] = Record{
			Elevation:     lv.Elevation,
			OuterDiameter: lv.OuterDiameter,
			InnerDiameter: lv.InnerDiameter,
			Thickness:     lv.Thickness,
			Density:       lv.Density,
			PlatformLoad:  lv.PlatformLoad,
			LinerLoad:     lv.LinerLoad,
			CorbelLoad:    lv.CorbelLoad,
		}
	}
	return grid
}

// ToTable builds a level table from grid records. Derived columns are left
// zero; run chimney.Derive or chimney.Analyze to fill them.
func ToTable(grid []Record) chimney.Table {
	t := make(chimney.Table, len(grid))
	for i, r := range grid {
		t[i] = chimney.Level{
			Elevation:     r.Elevation,
			OuterDiameter: r.OuterDiameter,
			InnerDiameter: r.InnerDiameter,
			Thickness:     r.Thickness,
			Density:       r.Density,
			PlatformLoad:  r.PlatformLoad,
			LinerLoad:     r.LinerLoad,
			CorbelLoad:    r.CorbelLoad,
		}
	}
	return t
}

// Table returns the project grid as a level table
func (d *Document) Table() chimney.Table {
	return ToTable(d.Grid)
}

// Params returns the pipeline parameters stored in the project.
// The meta height and grade take precedence over the nested parameter set.
func (d *Document) Params() (chimney.Params, error) {
	cfg := d.Meta.Params
	if d.Meta.Grade != "" {
		cfg.Material.Grade = d.Meta.Grade
	}
	if d.Meta.Height > 0 {
		cfg.Geometry.TotalHeight = d.Meta.Height
	}
	// Stations of the grid stay in the grid. Stored stepped settings keep
	// driving regeneration.
	return cfg.Params()
}

// Validate checks the grid geometry and the stored parameters
func (d *Document) Validate() error {
	if len(d.Grid) == 0 {
		return fmt.Errorf("grid has no levels")
	}
	if err := d.Table().Validate(); err != nil {
		return err
	}
	if _, err := d.Params(); err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	return nil
}
