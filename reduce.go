// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"sync"
	"sync/atomic"

	"github.com/bmenkuec/go-ptc/ptcobs"
)

// Sink applies a side effect to a transformed item. Invoked only from the
// Reduce goroutine, so it need not itself be thread-safe.
type Sink[T any] func(T) error

// Reduce hosts a Sink and drains a bounded slot array into it on a single
// dedicated goroutine. PushItem is safe to call concurrently from any
// number of worker goroutines.
type Reduce[T any] struct {
	sink Sink[T]
	cfg  *config

	started atomic.Bool
	run     atomic.Bool

	slots     *slotArray[T]
	itemAvail WaitPolicy
	slotEmpty WaitPolicy

	errMu sync.Mutex
	err   error

	wg sync.WaitGroup
}

// NewReduce constructs an idle Reduce around sink. Call Start to allocate
// slots and spawn its goroutine.
func NewReduce[T any](sink Sink[T], opts ...Option) *Reduce[T] {
	cfg := buildConfig(opts)
	wrapped := ptcobs.ObservedSink[T](cfg.observer, "reduce",
		ptcobs.LoggedSink[T](cfg.logger, "reduce", sink))
	return &Reduce[T]{
		sink: wrapped,
		cfg:  cfg,
	}
}

// Start allocates numSlots empty slots, sets run, and spawns the reducer
// goroutine. Returns ErrInvalidSlots if numSlots < 1, ErrAlreadyStarted if
// called more than once.
func (r *Reduce[T]) Start(numSlots int) error {
	if numSlots < 1 {
		return ErrInvalidSlots
	}
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	r.slots = newSlotArray[T](numSlots)
	r.itemAvail = r.cfg.newWaitPolicy()
	r.slotEmpty = r.cfg.newWaitPolicy()
	r.run.Store(true)
	r.wg.Add(1)
	go r.runLoop()
	return nil
}

// PushItem takes ownership of item and blocks until it lands in an empty
// slot. Safe for concurrent use by multiple worker goroutines. Panics with
// ErrNotStarted if called before Start, or ErrPushAfterShutDown if called
// after ShutDown — both misuses that cannot arise from Unit's own
// orchestration, which always starts its Reduce before spawning workers and
// always joins every worker before shutting it down.
func (r *Reduce[T]) PushItem(item T) {
	if !r.started.Load() {
		panic(ErrNotStarted)
	}
	if !r.run.Load() {
		panic(ErrPushAfterShutDown)
	}
	v := item
	for {
		if r.slots.scanPut(&v) {
			r.itemAvail.Signal(1)
			return
		}
		r.slotEmpty.Wait()
	}
}

func (r *Reduce[T]) runLoop() {
	defer r.wg.Done()
	for {
		// Read run before scanning: once ShutDown has cleared it, every
		// push made before that call is already in a slot, so a scan that
		// finds nothing after seeing run == false means the drain is done.
		running := r.run.Load()
		nothingToDo := true
		for i := range r.slots.slots {
			item, ok := r.slots.slots[i].tryTake()
			if !ok {
				continue
			}
			r.slots.occupied.Add(-1)
			r.slotEmpty.Signal(1)
			nothingToDo = false
			if err := r.sink(*item); err != nil {
				r.captureErr(&SinkError{Err: err})
			}
		}
		if !running && nothingToDo {
			return
		}
		if nothingToDo {
			r.itemAvail.Wait()
		}
	}
}

func (r *Reduce[T]) captureErr(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// Idle reports whether every slot is currently empty.
func (r *Reduce[T]) Idle() bool {
	return r.slots.allEmpty()
}

// Err returns the first error captured from a failing Sink, if any.
func (r *Reduce[T]) Err() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return r.err
}

// ShutDown clears run, wakes the reducer goroutine, and joins it. By the
// time it returns, every item pushed before the call has reached the sink.
// Idempotent: a second call is a no-op that returns the same captured error.
func (r *Reduce[T]) ShutDown() error {
	if !r.started.Load() {
		return nil
	}
	if r.run.CompareAndSwap(true, false) {
		r.itemAvail.Signal(1)
	}
	r.wg.Wait()
	return r.Err()
}
