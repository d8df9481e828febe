package growth

import (
	"math"
	"testing"

	"github.com/matzehuels/inflate/pkg/errors"
)

func TestResidual(t *testing.T) {
	req := Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 0.05}

	tests := []struct {
		name string
		g    float64
		want float64
	}{
		// 0.001 * (2^10 - 1) - 0.05
		{"ratio two", 2, 0.001*1023 - 0.05},
		// 0.001 * (1 + 1.5 + ... + 1.5^9) - 0.05
		{"ratio one and a half", 1.5, 0.001*(math.Pow(1.5, 10)-1)/0.5 - 0.05},
		// close to uniform cells: ~N * h
		{"near one", 1.0001, 0.001*(math.Pow(1.0001, 10)-1)/0.0001 - 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Residual(tt.g, req)
			if err != nil {
				t.Fatalf("Residual(%v) error: %v", tt.g, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Residual(%v) = %v, want %v", tt.g, got, tt.want)
			}
		})
	}
}

func TestResidualSigns(t *testing.T) {
	req := Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 0.05}

	lo, _ := Residual(LowerBound, req)
	if lo >= 0 {
		t.Errorf("Residual(LowerBound) = %v, want negative (stack too short)", lo)
	}
	hi, _ := Residual(InitialUpperBound, req)
	if hi <= 0 {
		t.Errorf("Residual(InitialUpperBound) = %v, want positive (stack too tall)", hi)
	}
}

func TestResidualExcludesUnity(t *testing.T) {
	req := Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 0.05}

	for _, g := range []float64{1, 1 + 1e-10, 1 - 1e-10} {
		if _, err := Residual(g, req); !errors.Is(err, errors.ErrCodeDegenerateRatio) {
			t.Errorf("Residual(%v) error = %v, want %s", g, err, errors.ErrCodeDegenerateRatio)
		}
	}

	r, err := Residual(1+1e-8, req)
	if err != nil {
		t.Fatalf("Residual(1+1e-8) error: %v", err)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		t.Errorf("Residual(1+1e-8) = %v, want finite", r)
	}
}

func TestResidualOverflowKeepsSign(t *testing.T) {
	req := Request{FirstCellHeight: 0.001, Layers: 1000, TotalHeight: 0.05}
	r, err := Residual(100, req)
	if err != nil {
		t.Fatalf("Residual() error: %v", err)
	}
	if !math.IsInf(r, 1) {
		t.Errorf("Residual(100) = %v, want +Inf", r)
	}
}

func TestSignHelpers(t *testing.T) {
	tests := []struct {
		a, b         float64
		same, differ bool
	}{
		{1, 2, true, false},
		{-1, -2, true, false},
		{-1, 2, false, true},
		{1, -2, false, true},
		{0, 1, false, false},
		{-1, 0, false, false},
		{1e-200, 1e-200, true, false}, // a*b underflows to 0
		{math.Inf(1), -1, false, true},
	}

	for _, tt := range tests {
		if got := sameSign(tt.a, tt.b); got != tt.same {
			t.Errorf("sameSign(%g, %g) = %v, want %v", tt.a, tt.b, got, tt.same)
		}
		if got := oppositeSign(tt.a, tt.b); got != tt.differ {
			t.Errorf("oppositeSign(%g, %g) = %v, want %v", tt.a, tt.b, got, tt.differ)
		}
	}
}
