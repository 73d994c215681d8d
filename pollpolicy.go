// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"time"

	"github.com/bmenkuec/go-ptc/internal/timerp"
)

// pollPolicy is the no-semaphore fallback from §4.4: Wait always sleeps for
// the configured interval and Signal is a no-op. It trades wakeup latency
// (bounded by sleep, not immediate) for zero synchronization overhead and no
// dependency on a real semaphore primitive.
//
// Wait pulls a *time.Timer from internal/timerp rather than calling
// time.Sleep directly, since Produce and Reduce call Wait from a tight retry
// loop under load and a pooled timer avoids an allocation on every poll.
type pollPolicy struct {
	sleep time.Duration
}

func newPollPolicy(sleep time.Duration) *pollPolicy {
	return &pollPolicy{sleep: sleep}
}

func (p *pollPolicy) Wait() {
	t := timerp.Get()
	t.Reset(p.sleep)
	<-t.C
	timerp.Put(t)
}

func (p *pollPolicy) Signal(int) {}
