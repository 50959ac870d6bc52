package report

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/project"
)

// ImportError reports a problem in an imported workbook
type ImportError struct {
	Sheet string
	Row   int // 1-based spreadsheet row, 0 when not row specific
	msg   string
}

func (e *ImportError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("sheet %q row %d: %s", e.Sheet, e.Row, e.msg)
	}
	return fmt.Sprintf("sheet %q: %s", e.Sheet, e.msg)
}

// ImportGrid reads a level grid from an XLSX workbook. It uses the "Grid"
// sheet when present and the first sheet otherwise. The first row must name
// the grid columns in any order. Thickness defaults to the wall between the
// diameters, density to the reference concrete and loads to zero.
func ImportGrid(r io.Reader) ([]project.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if slices.Contains(f.GetSheetList(), gridSheetName) {
		sheet = gridSheetName
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, &ImportError{Sheet: sheet, msg: "need a header row and at least one level"}
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, &ImportError{Sheet: sheet, Row: 1, msg: err.Error()}
	}

	var grid []project.Record
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		values := make([]float64, len(project.Columns))
		for col, at := range index {
			if at < 0 || at >= len(row) || strings.TrimSpace(row[at]) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[at]), 64)
			if err != nil {
				return nil, &ImportError{Sheet: sheet, Row: i + 2, msg: fmt.Sprintf("%s: %q is not a number", project.Columns[col], row[at])}
			}
			values[col] = v
		}
		rec, err := project.RecordFromValues(values)
		if err != nil {
			return nil, &ImportError{Sheet: sheet, Row: i + 2, msg: err.Error()}
		}
		if index[3] < 0 {
			rec.Thickness = (rec.OuterDiameter - rec.InnerDiameter) / 2
		}
		if index[4] < 0 {
			rec.Density = chimney.DefaultParams().Geometry.Density
		}
		grid = append(grid, rec)
	}

	if len(grid) == 0 {
		return nil, &ImportError{Sheet: sheet, msg: "no levels found"}
	}
	if err := project.ToTable(grid).Validate(); err != nil {
		return nil, &ImportError{Sheet: sheet, msg: err.Error()}
	}
	return grid, nil
}

// ImportGridFile reads a level grid from an XLSX file
func ImportGridFile(path string) ([]project.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, err := ImportGrid(f)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return grid, nil
}

// required grid columns, by position in project.Columns
var requiredColumns = []int{0, 1, 2}

// headerIndex maps each grid column to its spreadsheet column, -1 if absent
func headerIndex(header []string) ([]int, error) {
	index := make([]int, len(project.Columns))
	for i := range index {
		index[i] = -1
	}
	for at, name := range header {
		key := normalizeHeader(name)
		for col, want := range project.Columns {
			if key == want {
				index[col] = at
			}
		}
	}

	for _, col := range requiredColumns {
		if index[col] < 0 {
			return nil, fmt.Errorf("missing column %q", project.Columns[col])
		}
	}
	return index, nil
}

// normalizeHeader turns "Outer Diameter (m)" into "outer_diameter"
func normalizeHeader(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
