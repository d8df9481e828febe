// Package growth solves for the geometric growth ratio of a boundary-layer
// mesh inflation.
//
// # Overview
//
// An inflation stack of N layers whose first cell has height h and whose
// cells grow by a constant ratio G reaches a total height
//
//	T = h * (1 - G^N) / (1 - G)
//
// Given h, N and a target T, [Solve] finds the G > 1 that makes the stack
// exactly T tall. [Residual] evaluates the mismatch for a candidate ratio and
// is the function whose root the solver brackets.
//
// # Algorithm
//
// The solve runs in two phases:
//
//  1. Bracket expansion: starting from [LowerBound, InitialUpperBound], the
//     upper end grows by [BracketStep] until the residual changes sign across
//     the interval. Past [Options.MaxUpperBound] the solve fails with
//     errors.ErrCodeBracketingFailed.
//  2. Bisection: the bracket is halved until it is narrower than
//     [Options.Tolerance] or [Options.MaxIterations] halvings have run.
//
// A result that hits the iteration cap is not an error: [Result.Converged] is
// false and the ratio is the best midpoint found so far.
//
// # Validation
//
// Requests are validated before any residual is evaluated: the first cell
// height must be positive, the layer count at least 1, and the total height
// larger than the first cell. Violations return errors.ErrCodeInvalidInput.
//
// # Concurrency
//
// Everything in this package is a pure function of its arguments. [Solve],
// [Residual] and [Distribute] are safe to call from any number of goroutines.
package growth
