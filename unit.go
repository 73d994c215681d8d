// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bmenkuec/go-ptc/ptcobs"
)

// Transformer is the pure item -> item' function applied by worker
// goroutines. The pipeline assumes no cross-invocation state sharing beyond
// whatever a particular Transformer value closes over (§6).
type Transformer[I, O any] func(I) (O, error)

// Unit composes a Produce, a Transformer, and a Reduce with a fixed-size
// worker pool, per §4.3. It owns startup (N+1 slots on each side, N worker
// goroutines) and shutdown (join workers, drain the consumer, shut it down).
type Unit[I, O any] struct {
	producer    *Produce[I]
	transformer Transformer[I, O]
	consumer    *Reduce[O]
	numWorkers  int

	started atomic.Bool
	wg      sync.WaitGroup

	errMu sync.Mutex
	err   error
}

// New composes a Unit. numWorkers must be >= 0; zero degenerates to a
// single internal worker goroutine running the full produce/transform/
// consume loop rather than N (§6: "implementation SHOULD handle this
// gracefully").
func New[I, O any](producer *Produce[I], transformer Transformer[I, O], consumer *Reduce[O], numWorkers int, opts ...Option) *Unit[I, O] {
	if numWorkers < 0 {
		panic("ptc: numWorkers must be >= 0")
	}
	cfg := buildConfig(opts)
	wrapped := ptcobs.ObservedTransformer[I, O](cfg.observer, "transform",
		ptcobs.LoggedTransformer[I, O](cfg.logger, "transform", transformer))
	return &Unit[I, O]{
		producer:    producer,
		transformer: wrapped,
		consumer:    consumer,
		numWorkers:  numWorkers,
	}
}

// Start allocates N+1 slots on each side (§4.3's "why N+1 slots": a single
// shared slot would serialize the producer and every worker) and spawns the
// worker pool.
func (u *Unit[I, O]) Start() error {
	if !u.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	n := u.numWorkers
	if n == 0 {
		n = 1
	}
	if err := u.producer.Start(n + 1); err != nil {
		return err
	}
	if err := u.consumer.Start(n + 1); err != nil {
		return err
	}
	u.wg.Add(n)
	for range n {
		go func() {
			defer u.wg.Done()
			u.runWorker()
		}()
	}
	return nil
}

func (u *Unit[I, O]) runWorker() {
	for {
		item, ok := u.producer.GetItem()
		if !ok {
			return
		}
		out, err := u.transformer(item)
		if err != nil {
			// The open question §9 calls out: the original worker died
			// silently here, leaving siblings and the producer blocked
			// forever. Capture the error, force EOF so everyone else
			// unblocks, and stop — the Reduce side still drains whatever
			// earlier workers already pushed.
			u.captureErr(&TransformError{Err: err})
			u.producer.forceEOF()
			return
		}
		u.consumer.PushItem(out)
	}
}

func (u *Unit[I, O]) captureErr(err error) {
	u.errMu.Lock()
	defer u.errMu.Unlock()
	if u.err == nil {
		u.err = err
	}
}

// WaitForFinish joins every worker, waits for the consumer to fully drain
// (workers push synchronously, so "workers joined" alone does not imply the
// Reduce side has caught up), shuts the consumer down, and returns the
// first captured error from any source/transform/sink failure, if any.
func (u *Unit[I, O]) WaitForFinish() error {
	u.wg.Wait()
	for !u.consumer.Idle() {
		runtime.Gosched()
	}
	if err := u.consumer.ShutDown(); err != nil {
		u.captureErr(err)
	}
	if err := u.producer.Err(); err != nil {
		u.captureErr(err)
	}
	u.errMu.Lock()
	defer u.errMu.Unlock()
	return u.err
}

// Finished returns the producer's EOF flag. Advisory only — per §9, it does
// not imply the consumer side has finished draining; callers that need a
// true completion signal must use WaitForFinish.
func (u *Unit[I, O]) Finished() bool {
	return u.producer.EOF()
}
