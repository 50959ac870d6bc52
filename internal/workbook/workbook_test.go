package workbook

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

func newTestWorkbook(t *testing.T) (*Workbook, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	wb, err := New("test", chimney.DefaultParams(), logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return wb, &buf
}

func TestNewComputesResult(t *testing.T) {
	wb, buf := newTestWorkbook(t)

	res := wb.Result()
	if res == nil || len(res.Table) != 13 {
		t.Fatalf("Result() = %+v", res)
	}
	if res.Seismic.BaseShear <= 0 {
		t.Errorf("BaseShear = %v, want > 0", res.Seismic.BaseShear)
	}
	if buf.Len() == 0 {
		t.Error("recompute should log at debug level")
	}
}

func TestEditLoadRecomputes(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	before := wb.Result()

	if err := wb.Edit(2, FieldPlatformLoad, 5); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	after := wb.Result()
	if after == before {
		t.Fatal("Result() not replaced after edit")
	}
	if after.Table[2].PlatformLoad != 5 {
		t.Errorf("PlatformLoad = %v, want 5", after.Table[2].PlatformLoad)
	}
	diff := after.Seismic.TotalWeight - before.Seismic.TotalWeight
	if math.Abs(diff-5) > 1e-9 {
		t.Errorf("total weight grew by %v, want 5", diff)
	}
	if wb.Grid()[2].PlatformLoad != 5 {
		t.Error("grid not updated")
	}
}

func TestEditThicknessMovesOuterFace(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	if err := wb.Edit(12, FieldThickness, 0.35); err != nil {
		t.Fatal(err)
	}
	lv := wb.Grid()[12]
	if math.Abs(lv.OuterDiameter-(lv.InnerDiameter+0.7)) > 1e-12 {
		t.Errorf("OuterDiameter = %v, want %v", lv.OuterDiameter, lv.InnerDiameter+0.7)
	}
	if res := wb.Result(); res.Policy != chimney.SelfWeightFrustum {
		t.Errorf("Policy = %s, want frustum after a diameter change", res.Policy)
	}
}

func TestEditDiameterUpdatesThickness(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	if err := wb.Edit(0, FieldOuterDiameter, 1.95); err != nil {
		t.Fatal(err)
	}
	lv := wb.Grid()[0]
	if math.Abs(lv.Thickness-0.3) > 1e-12 {
		t.Errorf("Thickness = %v, want 0.3", lv.Thickness)
	}
}

func TestRejectedEditLeavesStateUnchanged(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	grid := wb.Grid()
	res := wb.Result()

	tests := []struct {
		name  string
		level int
		field Field
		value float64
	}{
		{"inner above outer", 3, FieldInnerDiameter, 5},
		{"negative thickness", 3, FieldThickness, -0.1},
		{"rising elevation", 4, FieldElevation, 40},
		{"out of range", 99, FieldDensity, 2.4},
		{"unknown field", 1, Field("colour"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := wb.Edit(tt.level, tt.field, tt.value); err == nil {
				t.Fatal("Edit() should fail")
			}
			if wb.Result() != res {
				t.Error("result replaced by a rejected edit")
			}
			got := wb.Grid()
			for i := range grid {
				if got[i] != grid[i] {
					t.Fatalf("level %d changed", i)
				}
			}
		})
	}
}

func TestRegenerateDiscardsEdits(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	if err := wb.Edit(1, FieldCorbelLoad, 2); err != nil {
		t.Fatal(err)
	}

	p := wb.Params()
	p.Geometry.SegmentStep = 5
	if err := wb.SetParams(p); err != nil {
		t.Fatal(err)
	}
	if len(wb.Grid()) != 13 {
		t.Errorf("SetParams changed the grid")
	}

	if err := wb.Regenerate(); err != nil {
		t.Fatal(err)
	}
	grid := wb.Grid()
	if len(grid) != 7 {
		t.Errorf("len = %d, want 7", len(grid))
	}
	for i, lv := range grid {
		if lv.CorbelLoad != 0 {
			t.Errorf("level %d kept corbel load", i)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	if err := wb.Edit(5, FieldLinerLoad, 1.75); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "stack.json")
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	other, _ := newTestWorkbook(t)
	if err := other.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want, got := wb.Grid(), other.Grid()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Elevation != want[i].Elevation || got[i].LinerLoad != want[i].LinerLoad ||
			got[i].OuterDiameter != want[i].OuterDiameter || got[i].InnerDiameter != want[i].InnerDiameter {
			t.Errorf("level %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if other.Document().Meta.ID != wb.Document().Meta.ID {
		t.Error("project id not preserved")
	}
}

func TestFailedLoadLeavesStateUnchanged(t *testing.T) {
	wb, buf := newTestWorkbook(t)
	grid := wb.Grid()
	res := wb.Result()

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"meta": {"height": 12}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := wb.Load(path); err == nil {
		t.Fatal("Load() should fail without a grid")
	}
	if wb.Result() != res || len(wb.Grid()) != len(grid) {
		t.Error("failed load changed the workbook")
	}
	if !bytes.Contains(buf.Bytes(), []byte("project not loaded")) {
		t.Error("failed load should be logged")
	}
}

func TestConcurrentEdits(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := wb.Edit(i, FieldPlatformLoad, 1); err != nil {
				t.Errorf("Edit(%d) error = %v", i, err)
			}
			_ = wb.Result()
		}(i)
	}
	wg.Wait()

	grid := wb.Grid()
	for i := 0; i < 10; i++ {
		if grid[i].PlatformLoad != 1 {
			t.Errorf("edit of level %d lost", i)
		}
	}
	res := wb.Result()
	for i := 0; i < 10; i++ {
		if res.Table[i].PlatformLoad != 1 {
			t.Errorf("result of level %d is stale", i)
		}
	}
}
