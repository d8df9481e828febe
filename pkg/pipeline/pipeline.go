// Package pipeline runs growth ratio solves for the CLI and the HTTP service.
//
// The solver in [growth] is a pure function. This package wraps it with the
// concerns every entry point shares, so the CLI and the API behave the same:
//
//  1. Defaults: solver options are merged with the package defaults
//  2. Solve: [growth.Solve] runs under a wall-clock budget and the caller's context
//  3. Distribution: the per-layer heights are computed when requested
//  4. Observability: logging and [observability.SolverHooks] events
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	out, err := runner.Solve(ctx, growth.Request{
//	    FirstCellHeight: 0.001,
//	    Layers:          10,
//	    TotalHeight:     0.05,
//	}, pipeline.Options{IncludeLayers: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Solution.GrowthRatio, out.Summary.LastHeight)
package pipeline

import (
	"time"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
)

// =============================================================================
// Output Formats
// =============================================================================

// Format constants for solve output.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// =============================================================================
// Options and Result
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Solver options; zero fields take the growth package defaults.
	growth.Options

	// IncludeLayers requests the per-layer height distribution.
	IncludeLayers bool `json:"include_layers,omitempty"`

	// Timeout bounds the wall-clock time of the solve. Zero means no budget
	// beyond the caller's context.
	Timeout time.Duration `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Request is the validated solve request.
	Request growth.Request `json:"request"`

	// Options are the solver options after defaults were applied.
	Options growth.Options `json:"options"`

	// Solution is the solver outcome.
	Solution growth.Result `json:"solution"`

	// Layers is the per-layer distribution, when requested.
	Layers []growth.Layer `json:"layers,omitempty"`

	// Summary condenses Layers; it is always computed.
	Summary growth.Summary `json:"summary"`

	// Stats contains timing information.
	Stats Stats `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SolveTime time.Duration
}
