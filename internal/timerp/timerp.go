// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Package timerp pools *time.Timer values for the no-semaphore poll wait
// policy (see ../../pollpolicy.go), which calls Wait on every retry of a
// Produce/Reduce scan loop and would otherwise allocate a timer per poll.
//
// This implementation relies on [Go 1.23+ behavior] and is therefore not much
// more than a type-safe wrapper over [sync.Pool].
//
// [Go 1.23+ behavior]: https://pkg.go.dev/time#NewTimer
package timerp

import (
	"sync"
	"time"
)

var pool = sync.Pool{
	New: func() any {
		return time.NewTimer(0)
	},
}

func Get() *time.Timer {
	return pool.Get().(*time.Timer)
}

func Put(t *time.Timer) {
	pool.Put(t)
}
