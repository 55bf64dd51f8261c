package render

import (
	"math"
	"testing"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeArc(t *testing.T) {
	tests := []struct {
		name       string
		size       float64
		thickness  float64
		percentage float64
		wantRadius float64
		wantDash   float64
	}{
		{"empty ring", 120, 8, 0, 56, 0},
		{"full ring", 120, 8, 100, 56, 2 * math.Pi * 56},
		{"half ring", 120, 8, 50, 56, math.Pi * 56},
		{"thick ring", 100, 20, 25, 40, 0.25 * 2 * math.Pi * 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ComputeArc(tt.size, tt.thickness, tt.percentage)
			if !almostEqual(a.Radius, tt.wantRadius, 1e-9) {
				t.Errorf("Radius: got %g, want %g", a.Radius, tt.wantRadius)
			}
			if !almostEqual(a.Dash, tt.wantDash, 1e-9) {
				t.Errorf("Dash: got %g, want %g", a.Dash, tt.wantDash)
			}
			if !almostEqual(a.Gap, 2*math.Pi*tt.wantRadius, 1e-9) {
				t.Errorf("Gap: got %g, want circumference %g", a.Gap, 2*math.Pi*tt.wantRadius)
			}
			if a.Center != tt.size/2 {
				t.Errorf("Center: got %g, want %g", a.Center, tt.size/2)
			}
		})
	}
}

func TestComputeArc_Extremes(t *testing.T) {
	for _, size := range []float64{20, 64, 120, 300} {
		for _, thickness := range []float64{1, 8, 19} {
			if a := ComputeArc(size, thickness, 0); a.Dash != 0 {
				t.Errorf("size=%g thickness=%g: 0%% dash = %g, want 0", size, thickness, a.Dash)
			}
			if a := ComputeArc(size, thickness, 100); a.Dash != a.Gap {
				t.Errorf("size=%g thickness=%g: 100%% dash %g != gap %g", size, thickness, a.Dash, a.Gap)
			}
		}
	}
}

func TestComputeArc_DegenerateNotClamped(t *testing.T) {
	a := ComputeArc(8, 10, 50)
	if a.Radius >= 0 {
		t.Errorf("Radius: got %g, want negative for thickness > size", a.Radius)
	}
}

func TestArc_DashArray(t *testing.T) {
	a := Arc{Dash: 0, Gap: 100.5}
	if got := a.DashArray(); got != "0 100.5" {
		t.Errorf("DashArray: got %q, want %q", got, "0 100.5")
	}
}
