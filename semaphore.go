// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"sync/atomic"

	"github.com/bmenkuec/go-ptc/internal/waitq"
)

// semaphore is the "counting semaphore" wait policy from §4.4: an atomic
// permit counter plus a FIFO queue of blocked waiters, generalizing
// waitq.Queue's single-waiter Notify to Signal(n)'s "wake up to n
// waiters". FIFO wakeup order is not required — any order that wakes
// exactly the waiters that were signaled is correct — but the waitq queue
// gives it for free.
type semaphore struct {
	permits atomic.Int64
	waiters waitq.Queue
}

func newSemaphore() *semaphore {
	s := &semaphore{}
	s.waiters.Init()
	return s
}

// Wait decrements the permit counter, blocking until it can do so without
// the counter going negative.
func (s *semaphore) Wait() {
	for {
		if s.tryAcquire() {
			return
		}
		w := s.waiters.Add()
		// Re-check after enqueueing: a Signal that ran between the failed
		// tryAcquire above and Add could otherwise be missed forever.
		if s.tryAcquire() {
			w.Close()
			return
		}
		<-w.Done()
	}
}

func (s *semaphore) tryAcquire() bool {
	for {
		cur := s.permits.Load()
		if cur <= 0 {
			return false
		}
		if s.permits.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Signal increments the permit counter by n and wakes up to n waiters. A
// producer's EOF broadcast calls this with n == numSlots so that every
// possible waiter gets a chance to observe EOF and return, per §4.1's
// "EOF broadcast" strategy.
func (s *semaphore) Signal(n int) {
	if n <= 0 {
		return
	}
	s.permits.Add(int64(n))
	s.waiters.NotifyN(n)
}
