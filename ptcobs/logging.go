// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptcobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggedSource adds structured start/duration/error logging to a source
// callable, mirroring otpsg.LoggedTask's shape.
func LoggedSource[T any](
	logger *zap.Logger,
	stage string,
	f func(ctx context.Context) (T, bool, error),
) func(ctx context.Context) (T, bool, error) {
	return func(ctx context.Context) (T, bool, error) {
		logger.Debug("source starting", zap.String("stage", stage))
		start := time.Now()
		item, ok, err := f(ctx)
		duration := time.Since(start)
		if err != nil {
			logger.Error("source failed",
				zap.String("stage", stage),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("source completed",
				zap.String("stage", stage),
				zap.Duration("duration", duration),
				zap.Bool("ok", ok))
		}
		return item, ok, err
	}
}

// LoggedTransformer adds structured start/duration/error logging to a
// transformer callable.
func LoggedTransformer[I, O any](
	logger *zap.Logger,
	stage string,
	f func(I) (O, error),
) func(I) (O, error) {
	return func(in I) (O, error) {
		logger.Debug("transform starting", zap.String("stage", stage))
		start := time.Now()
		out, err := f(in)
		duration := time.Since(start)
		if err != nil {
			logger.Error("transform failed",
				zap.String("stage", stage),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("transform completed",
				zap.String("stage", stage),
				zap.Duration("duration", duration))
		}
		return out, err
	}
}

// LoggedSink adds structured start/duration/error logging to a sink
// callable.
func LoggedSink[T any](
	logger *zap.Logger,
	stage string,
	f func(T) error,
) func(T) error {
	return func(item T) error {
		logger.Debug("sink starting", zap.String("stage", stage))
		start := time.Now()
		err := f(item)
		duration := time.Since(start)
		if err != nil {
			logger.Error("sink failed",
				zap.String("stage", stage),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("sink completed",
				zap.String("stage", stage),
				zap.Duration("duration", duration))
		}
		return err
	}
}
