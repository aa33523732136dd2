// Package telemetry provides hierarchical timing collection for the
// compile pipeline (lex, parse, build, validate).
//
// Collectors travel through context so instrumentation stays non-intrusive:
// code calls StartTimer with whatever context it has, and when no collector
// was attached the call costs nothing.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "parse")
//	// ... work ...
//	timer.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector accumulates timing data for a run.
type Collector interface {
	// Start begins timing an operation. End the returned Timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks a single operation. Timers nest: operations started while
// another timer is open appear as its children in the report.
type Timer interface {
	End()
}

// WithCollector attaches a collector to the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey, c)
}

// FromContext returns the collector attached to the context, or a no-op
// collector when none is attached.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey).(Collector); ok {
		return c
	}
	return noOpCollector{}
}

// StartTimer starts a timer on the context's collector.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}

// noOpCollector provides zero overhead when telemetry is disabled.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }
func (noOpCollector) Report(w io.Writer)      {}

type noOpTimer struct{}

func (noOpTimer) End() {}
