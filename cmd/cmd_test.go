package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/project"
	"github.com/alexiusacademia/gochimney/internal/report"
)

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBanner(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Chimney Designer") || !strings.Contains(out, "IS 4998") {
		t.Errorf("banner = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "gochimney v") {
		t.Errorf("version output = %q", out)
	}
}

func TestMaterial(t *testing.T) {
	out, _, err := execute(t, "material", "--grade", "m35")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "M35") || strings.Contains(out, "M20") {
		t.Errorf("material output = %q", out)
	}
}

func TestGenerateAnalyzeEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.json")

	out, _, err := execute(t, "generate", "-o", path, "--taper", "50", "--name", "Stack 7")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "13 levels written") {
		t.Errorf("generate output = %q", out)
	}

	csvPath := filepath.Join(dir, "calc.csv")
	xlsxPath := filepath.Join(dir, "calc.xlsx")
	pdfPath := filepath.Join(dir, "calc.pdf")
	plotDir := filepath.Join(dir, "plots")
	out, _, err = execute(t, "analyze", path, "--diagram",
		"--csv", csvPath, "--xlsx", xlsxPath, "--pdf", pdfPath, "--plot", plotDir, "--plot-format", "svg")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"DEAD LOADS", "WIND LOADS", "SEISMIC LOADS", "STRESS RESULTS", "DESIGN SUMMARY", "SHELL ELEVATION", "Stack 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("analyze output missing %q", want)
		}
	}
	for _, f := range []string{csvPath, xlsxPath, pdfPath, filepath.Join(plotDir, "moment.svg"), filepath.Join(plotDir, "shell.svg")} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("%s not written", f)
		}
	}

	editSets = nil
	if _, _, err := execute(t, "edit", path, "--set", "1:platform_load=4.5"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	doc, err := project.LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Grid[0].PlatformLoad != 4.5 || doc.Meta.Name != "Stack 7" {
		t.Errorf("edited project = %+v", doc.Meta)
	}

	before, _ := os.ReadFile(path)
	editSets = nil
	if _, _, err := execute(t, "edit", path, "--set", "3:inner_diameter=9"); err == nil {
		t.Fatal("edit accepted an inner diameter above the outer")
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("rejected edit changed the project file")
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	p := chimney.DefaultParams()
	table, err := chimney.Generate(p.Geometry)
	if err != nil {
		t.Fatal(err)
	}
	table[2].CorbelLoad = 3
	res, err := chimney.Analyze(table, p)
	if err != nil {
		t.Fatal(err)
	}
	grid := filepath.Join(dir, "grid.xlsx")
	if err := report.SaveXLSX(grid, report.Report{Name: "source", Params: p, Result: res}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "imported.yaml")
	out, _, err := execute(t, "import", grid, "-o", path, "--name", "Imported")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "13 levels imported") {
		t.Errorf("import output = %q", out)
	}

	doc, err := project.LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.Name != "Imported" || len(doc.Grid) != 13 || doc.Grid[2].CorbelLoad != 3 {
		t.Errorf("imported project = %+v, %d levels", doc.Meta, len(doc.Grid))
	}
}

func TestProjectFlagsOverrideStoredParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.json")
	if _, _, err := execute(t, "generate", "-o", path); err != nil {
		t.Fatalf("generate: %v", err)
	}

	stored, _, err := execute(t, "wind", path)
	if err != nil {
		t.Fatalf("wind: %v", err)
	}
	faster, _, err := execute(t, "wind", path, "--vb", "80", "--k1", "1.08")
	if err != nil {
		t.Fatalf("wind --vb 80: %v", err)
	}
	if stored == faster {
		t.Fatal("--vb had no effect on a saved project")
	}
	// Vz at the top station is 80 × 1.08 × k2 with k2 > 1
	if !strings.Contains(stored, "52.64") || strings.Contains(faster, "52.64") {
		t.Errorf("top Vz not recomputed:\n%s", faster)
	}

	doc, err := project.LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.Params.Wind.BasicSpeed != 47 {
		t.Errorf("stored Vb = %v, want the file left untouched", doc.Meta.Params.Wind.BasicSpeed)
	}
}

func TestProjectGeometryFlagRegenerates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.json")
	if _, _, err := execute(t, "generate", "-o", path); err != nil {
		t.Fatalf("generate: %v", err)
	}

	analyzeExport = exportFlags{plotFormat: "png"}
	analyzeDiagram = false
	saved := filepath.Join(filepath.Dir(path), "tall.json")
	if _, _, err := execute(t, "analyze", path, "--height", "40", "--sa-g", "2.0", "-o", saved); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	doc, err := project.LoadFromFile(saved)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Grid) != 17 || doc.Grid[0].Elevation != 40 {
		t.Errorf("grid = %d levels from %v m, want 17 from 40 m", len(doc.Grid), doc.Grid[0].Elevation)
	}
	if doc.Meta.Params.Seismic.SpectralCoefficient != 2.0 {
		t.Errorf("Sa/g = %v, want 2.0", doc.Meta.Params.Seismic.SpectralCoefficient)
	}
}

func TestUnknownZone(t *testing.T) {
	_, _, err := execute(t, "seismic", "--zone", "VI")
	if err == nil || !strings.Contains(err.Error(), "seismic zone") {
		t.Errorf("err = %v, want unknown zone", err)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.toml")

	if _, _, err := execute(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, _, err := execute(t, "config", "init", path); err == nil {
		t.Error("config init overwrote an existing file")
	}

	out, _, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[geometry]") || !strings.Contains(out, "basic_speed = 47.0") {
		t.Errorf("config show = %q", out)
	}
	configPath = ""
}

func TestParseCellEdit(t *testing.T) {
	tests := []struct {
		in      string
		want    cellEdit
		wantErr bool
	}{
		{"1:platform_load=4.5", cellEdit{0, "platform_load", 4.5}, false},
		{" 12 : Thickness = 0.3", cellEdit{11, "thickness", 0.3}, false},
		{"0:liner_load=1", cellEdit{}, true},
		{"3-liner_load=1", cellEdit{}, true},
		{"3:liner_load", cellEdit{}, true},
		{"3:liner_load=heavy", cellEdit{}, true},
	}
	for _, tt := range tests {
		got, err := parseCellEdit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCellEdit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCellEdit(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
