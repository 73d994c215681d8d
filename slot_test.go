// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotPutTakeRoundTrip(t *testing.T) {
	var s Slot[int]
	require.True(t, s.isEmpty())

	v := 42
	require.True(t, s.tryPut(&v))
	require.False(t, s.isEmpty())

	// A second put must fail: the slot is already occupied.
	other := 7
	require.False(t, s.tryPut(&other))

	got, ok := s.tryTake()
	require.True(t, ok)
	require.Equal(t, 42, *got)
	require.True(t, s.isEmpty())

	_, ok = s.tryTake()
	require.False(t, ok)
}

func TestSlotArrayScanPutTake(t *testing.T) {
	a := newSlotArray[int](3)
	require.True(t, a.allEmpty())

	for i := 1; i <= 3; i++ {
		v := i
		require.True(t, a.scanPut(&v))
	}
	require.False(t, a.allEmpty())

	v := 4
	require.False(t, a.scanPut(&v), "array full, scanPut should fail")

	seen := make(map[int]bool)
	for range 3 {
		item, ok := a.scanTake()
		require.True(t, ok)
		seen[*item] = true
	}
	require.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
	require.True(t, a.allEmpty())

	_, ok := a.scanTake()
	require.False(t, ok)
}

// TestSlotArrayNoDuplication exercises §8's "no duplication" invariant
// under concurrent takers: every item handed out by scanPut must be
// observed by exactly one scanTake caller.
func TestSlotArrayNoDuplication(t *testing.T) {
	const n = 64
	a := newSlotArray[int](n)
	for i := range n {
		v := i
		require.True(t, a.scanPut(&v))
	}

	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := a.scanTake()
				if !ok {
					return
				}
				mu.Lock()
				seen[*item]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
	for v, count := range seen {
		require.Equalf(t, 1, count, "item %d delivered %d times", v, count)
	}
}
