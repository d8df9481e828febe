package growth

import (
	"github.com/matzehuels/inflate/pkg/errors"
)

// Search space of the bracket expansion.
const (
	// LowerBound is the fixed lower end of every bracket. It sits just above 1
	// so the residual is always defined there.
	LowerBound = 1.0001

	// InitialUpperBound is the upper end of the first bracket tried.
	InitialUpperBound = 2.0

	// BracketStep is added to the upper end after each failed sign test.
	BracketStep = 0.5
)

// Option defaults.
const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 1000
	DefaultMaxUpperBound = 100.0

	// UpperBoundLimit is the largest accepted MaxUpperBound. Bracket
	// expansion takes (MaxUpperBound-InitialUpperBound)/BracketStep steps at
	// most, so the limit also bounds the work of a failing solve.
	UpperBoundLimit = 1e6
)

// Options tune a single solve. Zero fields take the package defaults.
type Options struct {
	// Tolerance is the absolute bracket width on G at which bisection stops.
	Tolerance float64 `json:"tolerance,omitempty" toml:"tolerance" yaml:"tolerance"`

	// MaxIterations caps the number of bisection steps.
	MaxIterations int `json:"max_iterations,omitempty" toml:"max_iterations" yaml:"max_iterations"`

	// MaxUpperBound is the largest upper end the bracket expansion may reach.
	MaxUpperBound float64 `json:"max_upper_bound,omitempty" toml:"max_upper_bound" yaml:"max_upper_bound"`

	// OnStep, if set, is called after every bisection step.
	OnStep func(Step) `json:"-" toml:"-" yaml:"-"`
}

// DefaultOptions returns options with every field set to its default.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		MaxUpperBound: DefaultMaxUpperBound,
	}
}

// SetDefaults fills zero fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxUpperBound == 0 {
		o.MaxUpperBound = DefaultMaxUpperBound
	}
}

// Validate checks the options after defaults have been applied.
func (o Options) Validate() error {
	if err := errors.ValidatePositive(errors.ErrCodeInvalidOptions, "tolerance", o.Tolerance); err != nil {
		return err
	}
	if o.MaxIterations < 1 {
		return errors.New(errors.ErrCodeInvalidOptions, "max iterations must be >= 1, got %d", o.MaxIterations)
	}
	if err := errors.ValidateAtLeast(errors.ErrCodeInvalidOptions, "max upper bound", o.MaxUpperBound, InitialUpperBound); err != nil {
		return err
	}
	if o.MaxUpperBound > UpperBoundLimit {
		return errors.New(errors.ErrCodeInvalidOptions, "max upper bound must be <= %g, got %g", UpperBoundLimit, o.MaxUpperBound)
	}
	return nil
}
