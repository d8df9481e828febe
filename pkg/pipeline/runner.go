package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/observability"
)

// Runner executes solves with logging and observability.
// Both CLI and API use it so results and diagnostics stay consistent.
//
// The Runner holds no per-solve state; multiple goroutines can share one.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// solveOutcome carries the solver return values across the goroutine boundary.
type solveOutcome struct {
	res growth.Result
	err error
}

// Solve validates req, runs the solver, and assembles the result.
//
// The solve itself cannot be interrupted; when ctx is done (or opts.Timeout
// elapses) first, Solve returns an ErrCodeCanceled or ErrCodeTimeout error and
// the abandoned solve finishes in the background: expansion stops at
// MaxUpperBound and bisection stops once the bracket cannot be halved.
func (r *Runner) Solve(ctx context.Context, req growth.Request, opts Options) (*Result, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}
	if opts.IncludeLayers && req.Layers > growth.MaxListedLayers {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"cannot list %g layers (at most %d)", req.Layers, growth.MaxListedLayers)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	solverOpts := opts.Options
	solverOpts.SetDefaults()
	if solverOpts.OnStep == nil && r.Logger.GetLevel() <= log.DebugLevel {
		solverOpts.OnStep = r.logStep
	}

	observability.Solver().OnSolveStart(ctx, req)
	start := time.Now()

	done := make(chan solveOutcome, 1)
	go func() {
		res, err := growth.Solve(req, solverOpts)
		done <- solveOutcome{res: res, err: err}
	}()

	var out solveOutcome
	select {
	case <-ctx.Done():
		out.err = contextError(ctx)
	case out = <-done:
	}

	elapsed := time.Since(start)
	observability.Solver().OnSolveComplete(ctx, req, out.res, elapsed, out.err)

	if out.err != nil {
		r.Logger.Debug("solve failed", "code", errors.GetCode(out.err), "duration", elapsed)
		return nil, out.err
	}

	result := &Result{
		Request:  req,
		Options:  solverOpts,
		Solution: out.res,
		Summary:  growth.SummarizeRatio(req, out.res.GrowthRatio),
		Stats:    Stats{SolveTime: elapsed},
	}
	if opts.IncludeLayers {
		result.Layers = growth.Distribute(req, out.res.GrowthRatio)
	}

	r.Logger.Info("solved growth ratio",
		"ratio", out.res.GrowthRatio,
		"iterations", out.res.Iterations,
		"expansions", out.res.Expansions,
		"converged", out.res.Converged,
		"duration", elapsed)
	if !out.res.Converged {
		r.Logger.Warn("iteration cap reached before tolerance",
			"max_iterations", solverOpts.MaxIterations,
			"tolerance", solverOpts.Tolerance,
			"bracket_width", out.res.Bracket.Width())
	}

	return result, nil
}

// logStep writes one bisection step at debug level.
func (r *Runner) logStep(s growth.Step) {
	r.Logger.Debug("bisection step",
		"iteration", s.Iteration,
		"mid", s.Mid,
		"residual", s.Residual,
		"width", s.Bracket.Width())
}

// contextError maps a finished context to a coded error, or returns nil.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "solve exceeded its time budget")
	default:
		return errors.Wrap(errors.ErrCodeCanceled, err, "solve canceled")
	}
}
