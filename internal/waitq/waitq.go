// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package waitq

import "github.com/bmenkuec/go-ptc/internal/nbcq"

type Queue struct {
	inner nbcq.Queue[Waiter]
}

func (q *Queue) Init() {
	q.inner.Init()
}

// Add to unbounded queue - never blocks
func (q *Queue) Add() Waiter {
	w := Waiter{
		q:          q,
		notifyChan: make(chan struct{}, 1),
	}
	q.inner.PushBack(w)
	return w
}

// Notify signals the waiter at the front of the queue (if any).
func (q *Queue) Notify() {
	q.NotifyN(1)
}

// NotifyN signals up to n waiters from the front of the queue. This is what
// lets a [ptc] counting semaphore's Signal(n) wake every waiter a producer's
// EOF broadcast is meant to reach, rather than the single waiter Notify would
// wake.
func (q *Queue) NotifyN(n int) {
	for ; n > 0; n-- {
		w, ok := q.inner.PopFront()
		if !ok {
			return
		}

		select {
		case w.notifyChan <- struct{}{}:
			// The notification was sent.
		default:
			// The channel was full, meaning that the waiter was closed. Don't
			// consume a notification for it; try another.
			n++
		}
	}
}
