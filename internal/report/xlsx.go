package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/project"
)

const summarySheetName = "Summary"

// WriteXLSX writes the importable grid, one sheet per calculation stage and
// a summary sheet
func WriteXLSX(w io.Writer, rep Report) error {
	f, err := buildWorkbook(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// SaveXLSX writes the report workbook to path
func SaveXLSX(path string, rep Report) error {
	f, err := buildWorkbook(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(rep Report) (*excelize.File, error) {
	if rep.Result == nil {
		return nil, errors.New("report has no results")
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	// The grid goes first so the workbook can be imported back
	if err := f.SetSheetName("Sheet1", gridSheetName); err != nil {
		return nil, err
	}
	if err := writeRows(f, gridSheetName, bold, toAny(project.Columns), gridRows(rep.Result.Table)); err != nil {
		return nil, err
	}

	for _, s := range stageSheets {
		if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}
		rows := make([][]any, len(rep.Result.Table))
		for i, lv := range rep.Result.Table {
			rows[i] = s.row(lv)
		}
		if err := writeRows(f, s.Name, bold, toAny(s.headers()), rows); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheetName); err != nil {
		return nil, err
	}
	if err := writeRows(f, summarySheetName, bold, []any{"Item", "Value"}, summaryRows(rep)); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func gridRows(t chimney.Table) [][]any {
	grid := project.FromTable(t)
	rows := make([][]any, len(grid))
	for i, r := range grid {
		rows[i] = gridRow(r)
	}
	return rows
}

func summaryRows(rep Report) [][]any {
	res := rep.Result
	p := rep.Params

	rows := [][]any{
		{"Project", rep.Name},
		{"Project ID", rep.ID},
		{"Levels", len(res.Table)},
		{"Self-weight method", string(res.Policy)},
		{"Basic wind speed Vb (m/s)", p.Wind.BasicSpeed},
		{"Drag coefficient Cd", p.Wind.Cd},
		{"Zone factor Z", p.Seismic.ZoneFactor},
		{"Importance factor I", p.Seismic.Importance},
		{"Response reduction R", p.Seismic.ResponseReduction},
		{"Ah", res.Seismic.Ah},
		{"Total weight W (t)", res.Seismic.TotalWeight},
		{"Base shear VB (t)", res.Seismic.BaseShear},
		{"Max compression (t/m2)", res.MaxCompression},
	}
	if res.Material != nil {
		rows = append(rows,
			[]any{"Concrete grade", res.Material.Grade},
			[]any{"Permissible compression (t/m2)", res.Material.SigmaTonne},
			[]any{"Modular ratio m", res.Material.ModularRatio},
		)
	}
	if base, ok := res.Table.Base(); ok {
		rows = append(rows,
			[]any{"Base wind moment (t.m)", base.WindMoment},
			[]any{"Base seismic moment (t.m)", base.SeismicMoment},
			[]any{"Governing action at base", string(base.Governs)},
		)
	}

	status := string(chimney.StatusOK)
	if res.HasTension() {
		status = fmt.Sprintf("%s at %d level(s)", chimney.StatusTension, len(res.TensionLevels))
	}
	rows = append(rows, []any{"Section status", status})
	if res.Material != nil && res.MaxCompression > res.Material.SigmaTonne {
		rows = append(rows, []any{"Compression check", fmt.Sprintf("exceeds %s permissible", res.Material.Grade)})
	}
	if !rep.Generated.IsZero() {
		rows = append(rows, []any{"Generated", rep.Generated.Format("2006-01-02 15:04")})
	}
	return rows
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
