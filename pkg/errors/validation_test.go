package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 0.001, false},
		{"large", 1e12, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"negative inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(ErrCodeInvalidInput, "height", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%g) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidatePositive(%g) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		min     float64
		wantErr bool
	}{
		{"equal", 1, 1, false},
		{"above", 10, 1, false},
		{"fractional above", 1.5, 1, false},

		{"below", 0.5, 1, true},
		{"nan", math.NaN(), 1, true},
		{"inf", math.Inf(1), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAtLeast(ErrCodeInvalidOptions, "layers", tt.input, tt.min)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAtLeast(%g, %g) error = %v, wantErr %v", tt.input, tt.min, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFiniteMessage(t *testing.T) {
	err := ValidateFinite(ErrCodeInvalidInput, "total height", math.NaN())
	if err == nil {
		t.Fatal("ValidateFinite(NaN) = nil, want error")
	}
	want := "total height must be a finite number, got NaN"
	if got := UserMessage(err); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}
