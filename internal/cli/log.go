// Package cli implements the inflate command-line interface.
//
// This package provides commands for solving the growth ratio of a mesh
// inflation stack, charting the result, and serving the solver over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - interactive: Prompt for inputs until a ratio is accepted (the default)
//   - solve: One-shot solve from flags, as text or JSON
//   - plot: Chart the residual curve or the layer heights
//   - serve: HTTP API with Prometheus metrics
//   - config: Show the effective configuration and its path
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes every bisection step. Loggers are passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/inflate/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamped with the time of
// day to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one named step of a command.
type progress struct {
	logger *log.Logger
	step   string
	start  time.Time
}

func newProgress(l *log.Logger, step string) *progress {
	return &progress{logger: l, step: step, start: time.Now()}
}

// done logs the step at info level with its elapsed time appended to keyvals.
func (p *progress) done(keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(p.step, append(keyvals, "elapsed", elapsed)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default when
// the command ran without one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
