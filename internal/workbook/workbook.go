// Package workbook holds the application state of an open chimney project:
// the global parameters, the user-editable level grid and the latest results.
//
// The chimney pipeline itself is stateless. A Workbook takes a consistent
// snapshot of its inputs, runs the pipeline outside its lock, and swaps the
// new results in as one unit, so concurrent readers never see a partially
// recomputed table.
package workbook

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/project"
)

// Field names a user-editable grid column
type Field string

const (
	FieldElevation     Field = "elevation"
	FieldOuterDiameter Field = "outer_diameter"
	FieldInnerDiameter Field = "inner_diameter"
	FieldThickness     Field = "thickness"
	FieldDensity       Field = "density"
	FieldPlatformLoad  Field = "platform_load"
	FieldLinerLoad     Field = "liner_load"
	FieldCorbelLoad    Field = "corbel_load"
)

// Workbook is the state of one open project
type Workbook struct {
	// writeMu serialises mutations; mu guards the fields below
	writeMu sync.Mutex
	mu      sync.RWMutex

	id     string
	name   string
	params chimney.Params
	grid   chimney.Table
	result *chimney.Result

	logger *log.Logger
}

// New generates a fresh grid from p and computes it
func New(name string, p chimney.Params, logger *log.Logger) (*Workbook, error) {
	if logger == nil {
		logger = log.Default()
	}
	table, err := chimney.Generate(p.Geometry)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{id: uuid.New().String(), name: name, params: p, grid: table, logger: logger}
	if err := wb.Recompute(); err != nil {
		return nil, err
	}
	return wb, nil
}

// Open builds a workbook from a loaded project document
func Open(doc *project.Document, logger *log.Logger) (*Workbook, error) {
	if logger == nil {
		logger = log.Default()
	}
	p, err := doc.Params()
	if err != nil {
		return nil, err
	}

	wb := &Workbook{
		id:     doc.Meta.ID,
		name:   doc.Meta.Name,
		params: p,
		grid:   doc.Table(),
		logger: logger,
	}
	if err := wb.Recompute(); err != nil {
		return nil, err
	}
	return wb, nil
}

// Load reads a project file and replaces the workbook contents.
// On any error the workbook is left unchanged.
func (w *Workbook) Load(path string) error {
	doc, err := project.LoadFromFile(path)
	if err != nil {
		w.logger.Warn("project not loaded", "path", path, "err", err)
		return err
	}
	p, err := doc.Params()
	if err != nil {
		return err
	}
	grid := doc.Table()

	result, err := chimney.Analyze(grid, p)
	if err != nil {
		return fmt.Errorf("analysing %s: %w", path, err)
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	w.id, w.name = doc.Meta.ID, doc.Meta.Name
	w.params, w.grid, w.result = p, grid, result
	w.mu.Unlock()

	w.logger.Info("project loaded", "path", path, "levels", len(grid))
	return nil
}

// Save writes the workbook as a project document
func (w *Workbook) Save(path string) error {
	doc := w.Document()
	if err := project.SaveToFile(path, doc); err != nil {
		return err
	}
	w.logger.Info("project saved", "path", path, "levels", len(doc.Grid))
	return nil
}

// Document returns the current state as a project document
func (w *Workbook) Document() *project.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := project.New(w.name, w.params, w.grid)
	if w.id != "" {
		doc.Meta.ID = w.id
	}
	return doc
}

// snapshot copies the current inputs
func (w *Workbook) snapshot() (chimney.Table, chimney.Params) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Clone(), w.params
}

// Params returns the current global parameters
func (w *Workbook) Params() chimney.Params {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.params
}

// Grid returns a copy of the user-editable grid
func (w *Workbook) Grid() chimney.Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Clone()
}

// Result returns the latest pipeline result
func (w *Workbook) Result() *chimney.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.result
}

// Recompute runs the pipeline on a snapshot of the current inputs
func (w *Workbook) Recompute() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	grid, p := w.snapshot()

	result, err := chimney.Analyze(grid, p)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.result = result
	w.mu.Unlock()

	w.logger.Debug("recomputed",
		"levels", len(result.Table),
		"policy", result.Policy,
		"base_shear", result.Seismic.BaseShear,
		"tension_levels", len(result.TensionLevels),
	)
	return nil
}

// SetParams replaces the global parameters and recomputes. The grid is kept;
// call Regenerate to rebuild it from the new geometry.
func (w *Workbook) SetParams(p chimney.Params) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	grid, _ := w.snapshot()

	result, err := chimney.Analyze(grid, p)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.params, w.result = p, result
	w.mu.Unlock()
	return nil
}

// Regenerate discards the grid and all user edits and rebuilds it from the
// geometry parameters
func (w *Workbook) Regenerate() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	_, p := w.snapshot()
	table, err := chimney.Generate(p.Geometry)
	if err != nil {
		return err
	}
	result, err := chimney.Analyze(table, p)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.grid, w.result = table, result
	w.mu.Unlock()

	w.logger.Info("grid regenerated", "levels", len(table))
	return nil
}

// Edit sets one grid cell and recomputes. Editing thickness moves the outer
// face; editing a diameter updates thickness. Rejected edits change nothing.
func (w *Workbook) Edit(level int, field Field, value float64) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	grid, p := w.snapshot()

	if level < 0 || level >= len(grid) {
		return fmt.Errorf("level %d out of range (1-%d)", level+1, len(grid))
	}
	if err := applyEdit(&grid[level], field, value); err != nil {
		return err
	}

	result, err := chimney.Analyze(grid, p)
	if err != nil {
		w.logger.Debug("edit rejected", "level", level+1, "field", field, "value", value, "err", err)
		return err
	}

	w.mu.Lock()
	w.grid, w.result = grid, result
	w.mu.Unlock()

	w.logger.Debug("cell edited", "level", level+1, "field", field, "value", value)
	return nil
}

func applyEdit(lv *chimney.Level, field Field, value float64) error {
	switch field {
	case FieldElevation:
		lv.Elevation = value
	case FieldOuterDiameter:
		lv.OuterDiameter = value
		lv.Thickness = (lv.OuterDiameter - lv.InnerDiameter) / 2
	case FieldInnerDiameter:
		lv.InnerDiameter = value
		lv.Thickness = (lv.OuterDiameter - lv.InnerDiameter) / 2
	case FieldThickness:
		if value < 0 {
			return fmt.Errorf("thickness must be non-negative, got %.3f", value)
		}
		lv.Thickness = value
		lv.OuterDiameter = lv.InnerDiameter + 2*value
	case FieldDensity:
		lv.Density = value
	case FieldPlatformLoad:
		lv.PlatformLoad = value
	case FieldLinerLoad:
		lv.LinerLoad = value
	case FieldCorbelLoad:
		lv.CorbelLoad = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}
