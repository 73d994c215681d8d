// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bmenkuec/go-ptc/ptcobs"
)

// Source populates a fresh item and reports whether one was available. It
// returns false on exhaustion and a non-nil error only when the underlying
// data source itself failed. Invoked only from the Produce goroutine (§6).
type Source[T any] func(ctx context.Context) (T, bool, error)

// Produce hosts a Source and drains it into a bounded slot array on a single
// dedicated goroutine, per §4.1. GetItem is safe to call concurrently from
// any number of worker goroutines.
type Produce[T any] struct {
	source Source[T]
	cfg    *config

	started atomic.Bool
	eof     atomic.Bool

	slots     *slotArray[T]
	itemAvail WaitPolicy
	slotEmpty WaitPolicy

	errMu sync.Mutex
	err   error

	wg sync.WaitGroup
}

// NewProduce constructs an idle Produce around source. Call Start to
// allocate slots and spawn its goroutine.
func NewProduce[T any](source Source[T], opts ...Option) *Produce[T] {
	cfg := buildConfig(opts)
	wrapped := ptcobs.ObservedSource[T](cfg.observer, "produce",
		ptcobs.LoggedSource[T](cfg.logger, "produce", source))
	return &Produce[T]{
		source: wrapped,
		cfg:    cfg,
	}
}

// Start allocates numSlots empty slots and spawns the producer goroutine.
// Returns ErrInvalidSlots if numSlots < 1, ErrAlreadyStarted if called more
// than once.
func (p *Produce[T]) Start(numSlots int) error {
	if numSlots < 1 {
		return ErrInvalidSlots
	}
	if !p.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	p.slots = newSlotArray[T](numSlots)
	p.itemAvail = p.cfg.newWaitPolicy()
	p.slotEmpty = p.cfg.newWaitPolicy()
	p.wg.Add(1)
	go p.run()
	return nil
}

func (p *Produce[T]) run() {
	defer p.wg.Done()
	ctx := context.Background()
	for {
		foundEmpty := false
		for i := range p.slots.slots {
			// Re-checked after every slot visit, not just after this
			// goroutine's own EOF transitions, so that a Unit forcing EOF
			// early (a worker's transformer failed, §9) stops the producer
			// goroutine promptly instead of finishing the current scan.
			if p.eof.Load() {
				return
			}
			if !p.slots.slots[i].isEmpty() {
				continue
			}
			item, ok, err := p.source(ctx)
			if err != nil {
				p.finish(&SourceError{Err: err})
				return
			}
			if !ok {
				p.finish(nil)
				return
			}
			v := item
			if p.slots.slots[i].tryPut(&v) {
				p.slots.occupied.Add(1)
				p.itemAvail.Signal(1)
				foundEmpty = true
			}
			if p.eof.Load() {
				return
			}
		}
		if !foundEmpty {
			p.slotEmpty.Wait()
		}
	}
}

// finish transitions eof false->true exactly once, optionally capturing err,
// and broadcasts both wait primitives numSlots times: item-available so every
// possible GetItem waiter wakes to observe EOF, and slot-empty so the
// producer goroutine itself wakes if it is parked in run's "slots full" wait
// (§7's "(c) broadcast-signal all waiters" — forceEOF is an async signal from
// another goroutine, unlike the original's inline eof=true, so both
// directions need the broadcast or the producer goroutine can be left
// waiting on slotEmpty forever with no worker left to drain it).
func (p *Produce[T]) finish(err error) {
	if !p.eof.CompareAndSwap(false, true) {
		return
	}
	if err != nil {
		p.errMu.Lock()
		p.err = err
		p.errMu.Unlock()
	}
	p.itemAvail.Signal(p.slots.len())
	p.slotEmpty.Signal(p.slots.len())
}

// forceEOF lets the owning Unit abort the producer early when a worker's
// transformer call fails, closing §9's open question: siblings must not be
// left blocked forever just because one worker died.
func (p *Produce[T]) forceEOF() {
	p.finish(nil)
}

// GetItem blocks until either an item is handed off or EOF has been
// observed with every slot empty. Safe for concurrent use by multiple
// worker goroutines. Panics with ErrNotStarted if called before Start — a
// caller bug that would otherwise nil-pointer-panic on the unallocated slot
// array.
func (p *Produce[T]) GetItem() (T, bool) {
	if !p.started.Load() {
		panic(ErrNotStarted)
	}
	for {
		// Read before scanning: if EOF and the final item are both already
		// visible, the scan below finds it; if not, eof is still true on
		// the next iteration and the slot stays empty, so returning false
		// is correct either way (§4.1 ordering rationale).
		eofSnapshot := p.EOF()
		if item, ok := p.slots.scanTake(); ok {
			p.slotEmpty.Signal(1)
			return *item, true
		}
		if eofSnapshot {
			var zero T
			return zero, false
		}
		p.itemAvail.Wait()
	}
}

// EOF reports whether the source has been exhausted (or has failed, or the
// owning Unit forced early termination).
func (p *Produce[T]) EOF() bool {
	return p.eof.Load()
}

// Idle reports whether EOF has been observed and every slot is empty.
func (p *Produce[T]) Idle() bool {
	return p.EOF() && p.slots.allEmpty()
}

// Err returns the error captured from a failing Source, if any.
func (p *Produce[T]) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

// Close joins the producer goroutine. A no-op on a Produce that was never
// started. It does not itself trigger EOF; the producer goroutine only
// exits on source exhaustion, source failure, or a Unit's forced EOF.
func (p *Produce[T]) Close() error {
	if !p.started.Load() {
		return nil
	}
	p.wg.Wait()
	return p.Err()
}
