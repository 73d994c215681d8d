// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Package ptcobs provides optional observability wrappers for ptc's
// Source, Transformer, and Sink callables: structured logging via zap,
// and tracing/metrics via OpenTelemetry. Generalized to a single Observer
// interface and applied via ptc.WithLogger / ptc.WithObserver rather than
// requiring callers to wrap their own callables by hand.
package ptcobs

import "context"

// Observer is notified around each source, transformer, or sink
// invocation. Observe returns an end function to be called with the
// invocation's error (nil on success) once it completes.
type Observer interface {
	Observe(ctx context.Context, stage string) (end func(err error))
}

// NopObserver is the default Observer: no spans, no metrics.
type NopObserver struct{}

func (NopObserver) Observe(context.Context, string) func(error) {
	return func(error) {}
}
