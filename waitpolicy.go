// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import "time"

// WaitPolicy is the pluggable blocking primitive described in §4.4. A
// Produce or Reduce component holds two of these — one for "slot empty"
// and one for "item available" — and both directions of one component share
// the same choice, fixed at construction.
type WaitPolicy interface {
	// Wait blocks until a matching Signal has been observed, or (in poll
	// mode) until the poll interval elapses.
	Wait()

	// Signal wakes up to n waiters. In poll mode it is a no-op.
	Signal(n int)
}

const defaultSleep = 10 * time.Millisecond

// waitPolicyFactory builds a component's two WaitPolicy instances
// (slot-empty and item-available) from one choice, so the two directions of
// a Produce or a Reduce never mix semaphore-mode and poll-mode primitives.
// Produce and Reduce each take their own options; Unit does not check that
// its Produce and Reduce were built with the same choice.
type waitPolicyFactory func() WaitPolicy

func semaphoreFactory() waitPolicyFactory {
	return func() WaitPolicy { return newSemaphore() }
}

func pollFactory(sleep time.Duration) waitPolicyFactory {
	return func() WaitPolicy { return newPollPolicy(sleep) }
}
