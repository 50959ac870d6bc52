package iscode

import (
	"math"
	"testing"
)

func TestK2(t *testing.T) {
	tests := []struct {
		height float64
		want   float64
	}{
		{-3, 1.00},
		{0, 1.00},
		{5, 1.00},
		{10, 1.00},
		{10.01, 1.05},
		{15, 1.05},
		{17.5, 1.07},
		{20, 1.07},
		{30, 1.12},
		{30.3, 1.15},
		{120, 1.15},
	}

	for _, tt := range tests {
		if got := K2(tt.height); got != tt.want {
			t.Errorf("K2(%v) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestK2Monotone(t *testing.T) {
	prev := K2(0)
	for h := 0.0; h <= 60; h += 0.25 {
		k := K2(h)
		if k < prev {
			t.Fatalf("K2 decreased at h=%v: %v < %v", h, k, prev)
		}
		prev = k
	}
}

func TestDesignWindPressure(t *testing.T) {
	vz := DesignWindSpeed(47, 1, K2(5), 1)
	if vz != 47 {
		t.Fatalf("Vz = %v, want 47", vz)
	}
	pz := DesignWindPressure(vz)
	if math.Abs(pz-1.3254) > 1e-9 {
		t.Errorf("pz = %v, want 1.3254", pz)
	}
}

func TestHorizontalCoefficient(t *testing.T) {
	ah := HorizontalCoefficient(0.16, 1.5, 3.0, 2.5)
	if math.Abs(ah-0.1) > 1e-12 {
		t.Errorf("Ah = %v, want 0.1", ah)
	}
	if got := HorizontalCoefficient(0.16, 1.5, 0, 2.5); got != 0 {
		t.Errorf("Ah with R=0 = %v, want 0", got)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		sigma   float64
		wantErr bool
	}{
		{"M20", 7, false},
		{"M25", 8.5, false},
		{"m30", 10, false},
		{" M35 ", 11.5, false},
		{"M40", 13, false},
		{"M45", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Grade(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Grade(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got.Sigma != tt.sigma {
			t.Errorf("Grade(%q).Sigma = %v, want %v", tt.name, got.Sigma, tt.sigma)
		}
		if want := 280 / (3 * tt.sigma); math.Abs(got.ModularRatio-want) > 1e-12 {
			t.Errorf("Grade(%q).ModularRatio = %v, want %v", tt.name, got.ModularRatio, want)
		}
	}
}

func TestGradeM30Constants(t *testing.T) {
	g, err := Grade("M30")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g.ModularRatio-9.3333) > 1e-4 {
		t.Errorf("m = %v, want 9.3333", g.ModularRatio)
	}
	if math.Abs(g.Ec-5700*math.Sqrt(30)) > 1e-9 {
		t.Errorf("Ec = %v", g.Ec)
	}
	if math.Abs(g.SigmaTonne-1019.37) > 0.01 {
		t.Errorf("σcbc = %v tf/m², want ≈1019.37", g.SigmaTonne)
	}
}

func TestGradesOrdered(t *testing.T) {
	names := Grades()
	want := []string{"M20", "M25", "M30", "M35", "M40"}
	if len(names) != len(want) {
		t.Fatalf("Grades() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Grades()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		m      LateralMoments
		want   float64
		action Action
	}{
		{"zero", LateralMoments{}, 0, ActionNone},
		{"wind governs", LateralMoments{Wind: 12, Seismic: 8}, 12, ActionWind},
		{"seismic governs", LateralMoments{Wind: 3, Seismic: 8}, 8, ActionSeismic},
		{"tie goes to wind", LateralMoments{Wind: 5, Seismic: 5}, 5, ActionWind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := Envelope(tt.m)
			if got != tt.want || action != tt.action {
				t.Errorf("Envelope(%+v) = (%v, %q), want (%v, %q)", tt.m, got, action, tt.want, tt.action)
			}
		})
	}
}
