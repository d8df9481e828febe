package growth

import (
	"math"

	"github.com/matzehuels/inflate/pkg/errors"
)

// Bracket is a search interval on G.
type Bracket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (b Bracket) Width() float64 {
	return b.Upper - b.Lower
}

// Step describes one bisection iteration. It is passed to [Options.OnStep].
type Step struct {
	Iteration int     // 1-based
	Mid       float64 // midpoint evaluated in this step
	Residual  float64 // residual at Mid
	Bracket   Bracket // bracket after the step
}

// Result is the outcome of a successful solve.
type Result struct {
	// GrowthRatio is the last bisection midpoint.
	GrowthRatio float64 `json:"growth_ratio"`

	// Iterations is the number of completed bisection steps.
	Iterations int `json:"iterations"`

	// Converged reports that the bracket shrank below the tolerance or that
	// an exact root was hit. It is false when the iteration cap, or a bracket
	// that can no longer be halved in float64, stopped the bisection first;
	// the ratio is then only an estimate.
	Converged bool `json:"converged"`

	// Exact is set when the residual at GrowthRatio was exactly zero.
	Exact bool `json:"exact,omitempty"`

	// Expansions counts how many times the bracket's upper end was moved.
	Expansions int `json:"expansions"`

	// Bracket is the final search interval.
	Bracket Bracket `json:"bracket"`

	// Residual is the residual at GrowthRatio.
	Residual float64 `json:"residual"`
}

// Solve finds the growth ratio G > 1 for which an N-layer geometric stack
// starting at req.FirstCellHeight is req.TotalHeight tall.
//
// The request and the options are validated first (errors.ErrCodeInvalidInput,
// errors.ErrCodeInvalidOptions). If no sign change is found below
// opts.MaxUpperBound the solve fails with errors.ErrCodeBracketingFailed.
// Reaching opts.MaxIterations is reported through Result.Converged, not as an
// error.
func Solve(req Request, opts Options) (Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	b, expansions, err := expand(req, opts)
	if err != nil {
		return Result{}, err
	}

	res, err := bisect(req, b, opts)
	if err != nil {
		return Result{}, err
	}
	res.Expansions = expansions
	return res, nil
}

// expand grows the upper end of the bracket until the residual has opposite
// signs (or a zero) at its ends.
func expand(req Request, opts Options) (Bracket, int, error) {
	b := Bracket{Lower: LowerBound, Upper: InitialUpperBound}

	fLower, err := Residual(b.Lower, req)
	if err != nil {
		return b, 0, err
	}

	maxExpansions := int(math.Ceil((opts.MaxUpperBound - InitialUpperBound) / BracketStep))
	for n := 0; ; n++ {
		b.Upper = InitialUpperBound + float64(n)*BracketStep
		fUpper, err := Residual(b.Upper, req)
		if err != nil {
			return b, n, err
		}
		if !sameSign(fLower, fUpper) {
			return b, n, nil
		}
		if n >= maxExpansions || b.Upper+BracketStep > opts.MaxUpperBound {
			return b, n + 1, errors.New(errors.ErrCodeBracketingFailed,
				"no growth ratio in [%g, %g] reaches a total height of %g with %g layers of first height %g",
				LowerBound, opts.MaxUpperBound, req.TotalHeight, req.Layers, req.FirstCellHeight)
		}
	}
}

// bisect halves b until it is narrower than opts.Tolerance, the iteration cap
// is reached, or b can no longer be split.
func bisect(req Request, b Bracket, opts Options) (Result, error) {
	fLower, err := Residual(b.Lower, req)
	if err != nil {
		return Result{}, err
	}

	mid := (b.Lower + b.Upper) / 2
	fMid := 0.0
	exact := false
	iter := 0

	for b.Width() >= opts.Tolerance && iter < opts.MaxIterations {
		m := (b.Lower + b.Upper) / 2
		if m <= b.Lower || m >= b.Upper {
			// The bracket ends are adjacent float64 values.
			break
		}
		mid = m
		fMid, err = Residual(mid, req)
		if err != nil {
			return Result{}, err
		}
		if fMid == 0 {
			exact = true
			break
		}

		if oppositeSign(fLower, fMid) {
			b.Upper = mid
		} else {
			b.Lower = mid
			fLower = fMid
		}
		iter++

		if opts.OnStep != nil {
			opts.OnStep(Step{Iteration: iter, Mid: mid, Residual: fMid, Bracket: b})
		}
	}

	if iter == 0 && !exact {
		// The loop never ran; report the residual at the bracket midpoint.
		if fMid, err = Residual(mid, req); err != nil {
			return Result{}, err
		}
	}

	return Result{
		GrowthRatio: mid,
		Iterations:  iter,
		Converged:   exact || b.Width() < opts.Tolerance,
		Exact:       exact,
		Bracket:     b,
		Residual:    fMid,
	}, nil
}
