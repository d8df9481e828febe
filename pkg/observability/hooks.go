// Package observability provides hooks for metrics, tracing, and logging.
//
// The solver core stays free of any observability backend. Consumers
// register hooks at startup and the pipeline runner and HTTP server emit
// events through them:
//   - SolverHooks: one start/complete pair per solve
//   - HTTPHooks: one event per served HTTP request
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&myMetrics{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSolveStart(ctx, req)
//	res, err := growth.Solve(req, opts)
//	observability.Solver().OnSolveComplete(ctx, req, res, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/inflate/pkg/growth"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from growth ratio solves.
type SolverHooks interface {
	// OnSolveStart is called after option defaults are applied, before validation.
	OnSolveStart(ctx context.Context, req growth.Request)

	// OnSolveComplete is called once per solve. res is the zero Result when
	// err is non-nil.
	OnSolveComplete(ctx context.Context, req growth.Request, res growth.Result, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP solve service.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched route
	// pattern, not the raw path.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, growth.Request) {}
func (NoopSolverHooks) OnSolveComplete(context.Context, growth.Request, growth.Result, time.Duration, error) {
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solve.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	httpHooks = NoopHTTPHooks{}
}
