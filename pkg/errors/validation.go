package errors

import "math"

// ValidateFinite rejects NaN and ±Inf for the named quantity.
func ValidateFinite(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %g", name, v)
	}
	return nil
}

// ValidatePositive rejects values that are not finite and strictly greater
// than zero.
func ValidatePositive(code Code, name string, v float64) error {
	if err := ValidateFinite(code, name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(code, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateAtLeast rejects values that are not finite or fall below min.
func ValidateAtLeast(code Code, name string, v, min float64) error {
	if err := ValidateFinite(code, name, v); err != nil {
		return err
	}
	if v < min {
		return New(code, "%s must be >= %g, got %g", name, min, v)
	}
	return nil
}
