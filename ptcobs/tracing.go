// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptcobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

// OtelObserver emits one OpenTelemetry span plus item-count, error-count,
// and duration metrics per invocation. Grounded on otpsg's TracedTask
// (span per call) composed with MetricsTask (count/duration/error
// instruments), folded into a single Observer here since ptc's Unit applies
// observation uniformly across source/transform/sink rather than letting
// each collaborator opt in independently.
type OtelObserver struct {
	// TracerName and MeterName default to "ptc" when empty.
	TracerName string
	MeterName  string
}

func (o OtelObserver) Observe(ctx context.Context, stage string) func(error) {
	tracerName := o.TracerName
	if tracerName == "" {
		tracerName = "ptc"
	}
	meterName := o.MeterName
	if meterName == "" {
		meterName = "ptc"
	}

	tracer := otel.Tracer(tracerName)
	_, span := tracer.Start(ctx, stage)

	meter := otel.GetMeterProvider().Meter(meterName)
	counter, _ := meter.Int64Counter(stage + ".count")
	duration, _ := meter.Float64Histogram(stage + ".duration")
	errCounter, _ := meter.Int64Counter(stage + ".errors")

	start := time.Now()
	counter.Add(ctx, 1)

	return func(err error) {
		span.End()
		duration.Record(ctx, time.Since(start).Seconds())
		if err != nil {
			errCounter.Add(ctx, 1)
		}
	}
}

// ObservedSource wraps a source callable with o's tracing span and metrics.
func ObservedSource[T any](
	o Observer,
	stage string,
	f func(ctx context.Context) (T, bool, error),
) func(ctx context.Context) (T, bool, error) {
	return func(ctx context.Context) (T, bool, error) {
		end := o.Observe(ctx, stage)
		item, ok, err := f(ctx)
		end(err)
		return item, ok, err
	}
}

// ObservedTransformer wraps a transformer callable with o's tracing span
// and metrics. Transformer carries no context per §6, so spans are rooted
// with context.Background().
func ObservedTransformer[I, O any](
	o Observer,
	stage string,
	f func(I) (O, error),
) func(I) (O, error) {
	return func(in I) (O, error) {
		end := o.Observe(context.Background(), stage)
		out, err := f(in)
		end(err)
		return out, err
	}
}

// ObservedSink wraps a sink callable with o's tracing span and metrics.
func ObservedSink[T any](
	o Observer,
	stage string,
	f func(T) error,
) func(T) error {
	return func(item T) error {
		end := o.Observe(context.Background(), stage)
		err := f(item)
		end(err)
		return err
	}
}
