package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/diagram"
	"github.com/alexiusacademia/gochimney/internal/project"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	p := chimney.DefaultParams()
	p.Geometry.TaperRatio = 50
	table, err := chimney.Generate(p.Geometry)
	if err != nil {
		t.Fatal(err)
	}
	table[3].PlatformLoad = 2.5
	table[8].LinerLoad = 0.75

	res, err := chimney.Analyze(table, p)
	if err != nil {
		t.Fatal(err)
	}
	return Report{
		Name:      "Boiler stack",
		ID:        "0c5a4c3e-1111-2222-3333-444455556666",
		Params:    p,
		Result:    res,
		Generated: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep.Result.Table); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(rep.Result.Table)+1 {
		t.Fatalf("rows = %d, want %d", len(records), len(rep.Result.Table)+1)
	}
	header := records[0]
	if header[0] != "Level (m)" || header[len(header)-1] != "Status" {
		t.Errorf("header = %v", header)
	}
	for i, row := range records {
		if len(row) != len(header) {
			t.Errorf("row %d has %d fields, want %d", i, len(row), len(header))
		}
	}
	if records[1][0] != "30" || records[len(records)-1][0] != "0" {
		t.Errorf("elevations = %s .. %s", records[1][0], records[len(records)-1][0])
	}
	if got := records[1][len(header)-1]; got != string(rep.Result.Table[0].Status) {
		t.Errorf("status = %q", got)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Grid", "Dead Loads", "Wind Loads", "Seismic Loads", "Stress Results", "Summary"}
	got := f.GetSheetList()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sheets = %v, want %v", got, want)
	}
	f.Close()

	grid, err := ImportGrid(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportGrid() error = %v", err)
	}
	expected := project.FromTable(rep.Result.Table)
	if len(grid) != len(expected) {
		t.Fatalf("levels = %d, want %d", len(grid), len(expected))
	}
	for i := range expected {
		g, e := grid[i].Values(), expected[i].Values()
		for j := range e {
			if math.Abs(g[j]-e[j]) > 1e-9 {
				t.Errorf("level %d %s = %v, want %v", i, project.Columns[j], g[j], e[j])
			}
		}
	}
}

func gridWorkbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestImportGridLooseHeaders(t *testing.T) {
	buf := gridWorkbook(t,
		[]any{"Inner Diameter (m)", "Elevation", "Outer_Diameter", "Platform Load"},
		[]any{1.4, 20.0, 1.8, 1.5},
		[]any{},
		[]any{1.4, 0.0, 1.8, ""},
	)

	grid, err := ImportGrid(buf)
	if err != nil {
		t.Fatalf("ImportGrid() error = %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("levels = %d, want 2 (blank rows skipped)", len(grid))
	}
	top := grid[0]
	if top.Elevation != 20 || top.OuterDiameter != 1.8 || top.InnerDiameter != 1.4 || top.PlatformLoad != 1.5 {
		t.Errorf("top = %+v", top)
	}
	if math.Abs(top.Thickness-0.2) > 1e-12 {
		t.Errorf("Thickness = %v, want 0.2 from the diameters", top.Thickness)
	}
	if top.Density != chimney.DefaultParams().Geometry.Density {
		t.Errorf("Density = %v, want the default", top.Density)
	}
	if grid[1].PlatformLoad != 0 {
		t.Errorf("empty cell should import as zero, got %v", grid[1].PlatformLoad)
	}
}

func TestImportGridErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"header only", [][]any{{"elevation", "outer_diameter", "inner_diameter"}}},
		{"missing column", [][]any{{"elevation", "outer_diameter"}, {10.0, 2.0}}},
		{"not a number", [][]any{{"elevation", "outer_diameter", "inner_diameter"}, {"top", 2.0, 1.6}}},
		{"inverted diameters", [][]any{{"elevation", "outer_diameter", "inner_diameter"}, {0.0, 1.0, 2.0}}},
		{"rising elevation", [][]any{{"elevation", "outer_diameter", "inner_diameter"}, {0.0, 2.0, 1.6}, {5.0, 2.0, 1.6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := ImportGrid(gridWorkbook(t, tt.rows...))
			if err == nil {
				t.Fatalf("ImportGrid() = %+v, want error", grid)
			}
			var ie *ImportError
			if !errors.As(err, &ie) {
				t.Errorf("error = %T %v, want *ImportError", err, err)
			}
		})
	}

	if _, err := ImportGrid(strings.NewReader("not a workbook")); err == nil {
		t.Error("ImportGrid() accepted a non-xlsx stream")
	}
}

func TestWritePDF(t *testing.T) {
	rep := sampleReport(t)

	p, err := diagram.MomentPlot(rep.Result.Table)
	if err != nil {
		t.Fatal(err)
	}
	png, err := diagram.PNG(p)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, rep, Figure{Title: "Moments", PNG: png}); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestSaveFiles(t *testing.T) {
	rep := sampleReport(t)
	dir := t.TempDir()

	saves := map[string]func(string) error{
		"calc.csv":  func(path string) error { return SaveCSV(path, rep.Result.Table) },
		"calc.xlsx": func(path string) error { return SaveXLSX(path, rep) },
		"calc.pdf":  func(path string) error { return SavePDF(path, rep) },
	}
	for name, save := range saves {
		path := filepath.Join(dir, name)
		if err := save(path); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written", name)
		}
	}

	grid, err := ImportGridFile(filepath.Join(dir, "calc.xlsx"))
	if err != nil {
		t.Fatalf("ImportGridFile() error = %v", err)
	}
	if len(grid) != len(rep.Result.Table) {
		t.Errorf("levels = %d, want %d", len(grid), len(rep.Result.Table))
	}
}

func TestReportWithoutResult(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, Report{}); err == nil {
		t.Error("WriteXLSX() accepted a report without results")
	}
	if err := WritePDF(&buf, Report{}); err == nil {
		t.Error("WritePDF() accepted a report without results")
	}
}
