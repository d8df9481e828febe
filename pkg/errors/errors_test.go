package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no cause", New(ErrCodeInvalidInput, "layers must be >= 1, got %g", 0.5), "INVALID_INPUT: layers must be >= 1, got 0.5"},
		{"with cause", Wrap(ErrCodeInvalidConfig, cause, "read %s", "inflate.toml"), "INVALID_CONFIG: read inflate.toml: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidConfig, cause, "read config")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestCodeLookup(t *testing.T) {
	bracket := New(ErrCodeBracketingFailed, "no sign change below 100")
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", bracket, ErrCodeBracketingFailed},
		{"fmt wrapped", fmt.Errorf("solve: %w", bracket), ErrCodeBracketingFailed},
		{"outermost wins", Wrap(ErrCodeTimeout, bracket, "solve"), ErrCodeTimeout},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false, want true", tt.code)
			}
			if Is(tt.err, ErrCodeDegenerateRatio) {
				t.Errorf("Is(err, %s) = true, want false", ErrCodeDegenerateRatio)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeInvalidInput, "total height must exceed the first cell height"), "total height must exceed the first cell height"},
		{errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidInput, "x"), true},
		{New(ErrCodeInvalidOptions, "x"), true},
		{New(ErrCodeInvalidConfig, "x"), true},
		{New(ErrCodeInvalidFormat, "x"), true},
		{New(ErrCodeBracketingFailed, "x"), false},
		{New(ErrCodeTimeout, "x"), false},
		{errors.New("plain"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsValidation(tt.err); got != tt.want {
			t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
