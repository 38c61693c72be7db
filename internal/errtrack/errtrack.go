// Package errtrack defines the error-tracking collaborator the request
// pipeline reports failures to before rejecting them.
package errtrack

import (
	"context"
	"log/slog"
)

// Reporter receives every pipeline failure. Implementations must not block
// the failing call; capture is best-effort.
type Reporter interface {
	Capture(ctx context.Context, err error)
}

// LogReporter forwards captured errors to a structured logger.
type LogReporter struct {
	log *slog.Logger
}

// NewLogReporter creates a reporter backed by the given logger.
func NewLogReporter(log *slog.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Capture(ctx context.Context, err error) {
	r.log.ErrorContext(ctx, "captured error", "error", err)
}

// Noop discards every capture. Use it in tests.
type Noop struct{}

// NewNoop creates a reporter that does nothing.
func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) Capture(context.Context, error) {}

// Verify interfaces are satisfied.
var (
	_ Reporter = (*LogReporter)(nil)
	_ Reporter = (*Noop)(nil)
)
