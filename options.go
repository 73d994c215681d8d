// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"time"

	"go.uber.org/zap"

	"github.com/bmenkuec/go-ptc/ptcobs"
)

// Option configures a Produce, Reduce, or Unit at construction. The wait
// policy choice (WithSemaphore vs. the default polling mode) is fixed once
// Start is called; it is not possible to switch modes on a running
// component, per §4.4.
type Option func(*config)

type config struct {
	sleep         time.Duration
	newWaitPolicy waitPolicyFactory
	logger        *zap.Logger
	observer      ptcobs.Observer
}

func defaultConfig() *config {
	return &config{
		sleep:         defaultSleep,
		newWaitPolicy: pollFactory(defaultSleep),
		logger:        zap.NewNop(),
		observer:      ptcobs.NopObserver{},
	}
}

func buildConfig(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSleep sets the poll interval used when no semaphore wait policy has
// been selected. Default is 10ms, matching the original's defaultSleepMS.
func WithSleep(d time.Duration) Option {
	return func(c *config) {
		c.sleep = d
		c.newWaitPolicy = pollFactory(d)
	}
}

// WithSemaphore selects the real counting semaphore wait policy instead of
// the default timed-polling fallback. See §4.4.
func WithSemaphore() Option {
	return func(c *config) {
		c.newWaitPolicy = semaphoreFactory()
	}
}

// WithLogger attaches structured logging (via ptcobs) to a component's
// source/transformer/sink invocations. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithObserver attaches tracing and metrics (via ptcobs) to a component.
// Default is a no-op observer.
func WithObserver(o ptcobs.Observer) Option {
	return func(c *config) { c.observer = o }
}
