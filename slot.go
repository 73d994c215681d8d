// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import "sync/atomic"

// Slot is a single cell that atomically holds either nothing or one owned
// item. It is the Go encoding of the original's
// std::vector<std::atomic<TItem*>> cell: a CAS on a pointer-sized handle is
// the only way ownership of an item moves into or out of the slot.
//
// The zero value is an empty slot, ready to use.
type Slot[T any] struct {
	v atomic.Pointer[T]
}

// isEmpty reports whether the slot was unoccupied as of this load. It is a
// peek only: the producer thread uses it to decide whether a slot is worth
// invoking source for. The actual ownership transfer still happens through
// tryPut's CAS; since the producer goroutine is the only one that fills
// Produce's slots, a slot it sees empty stays empty until its own tryPut.
func (s *Slot[T]) isEmpty() bool {
	return s.v.Load() == nil
}

// tryPut attempts to move ownership of item into the slot. It succeeds only
// if the slot is currently empty.
func (s *Slot[T]) tryPut(item *T) bool {
	return s.v.CompareAndSwap(nil, item)
}

// tryTake attempts to take ownership of whatever item currently occupies the
// slot, leaving it empty. Returns nil, false if the slot was empty at the
// moment of the load, matching the original's "check-then-CAS" shape rather
// than a blind CAS-to-nil, since that's what makes the scans in getItem and
// the reducer's drain loop cheap when most slots are empty.
func (s *Slot[T]) tryTake() (*T, bool) {
	item := s.v.Load()
	if item == nil {
		return nil, false
	}
	return item, s.v.CompareAndSwap(item, nil)
}

// slotArray is a fixed-length array of Slot[T] plus an occupancy counter that
// lets idle() avoid a full rescan. It's incremented in the same call that successfully
// places an item (tryPut) and decremented in the same call that successfully
// removes one (tryTake), so it's always consistent with the slots' own CAS
// state — it never needs its own memory barrier beyond what atomic.Int64
// already gives the increment/decrement.
type slotArray[T any] struct {
	slots    []Slot[T]
	occupied atomic.Int64
}

func newSlotArray[T any](numSlots int) *slotArray[T] {
	return &slotArray[T]{slots: make([]Slot[T], numSlots)}
}

func (a *slotArray[T]) len() int { return len(a.slots) }

// scanPut scans the array in order and places item into the first empty slot
// it finds, per §4.1/§4.2's "scan slots in order" step. Returns false if every
// slot was occupied.
func (a *slotArray[T]) scanPut(item *T) bool {
	for i := range a.slots {
		if a.slots[i].tryPut(item) {
			a.occupied.Add(1)
			return true
		}
	}
	return false
}

// scanTake scans the array in order and takes ownership of the first
// non-empty slot it finds.
func (a *slotArray[T]) scanTake() (*T, bool) {
	for i := range a.slots {
		if item, ok := a.slots[i].tryTake(); ok {
			a.occupied.Add(-1)
			return item, true
		}
	}
	return nil, false
}

// allEmpty reports whether every slot was unoccupied as of this call.
func (a *slotArray[T]) allEmpty() bool {
	return a.occupied.Load() == 0
}
