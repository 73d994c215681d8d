// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestSlotArrayWithRapid checks scanPut/scanTake against a reference
// multiset model, directly mirroring basicq_test.go's TestQueueWithRapid.
// Conservation: every value pushed and later popped by the model must
// also have been taken from the array, and vice versa.
func TestSlotArrayWithRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numSlots := rapid.IntRange(1, 8).Draw(t, "numSlots")
		a := newSlotArray[int](numSlots)

		occupied := 0
		var model []int

		t.Repeat(map[string]func(*rapid.T){
			"put": func(t *rapid.T) {
				if occupied >= numSlots {
					t.Skip("array full")
				}
				val := rapid.Int().Draw(t, "value")
				v := val
				ok := a.scanPut(&v)
				require.True(t, ok, "scanPut should succeed while a slot is free")
				occupied++
				model = append(model, val)
			},
			"take": func(t *rapid.T) {
				if occupied == 0 {
					t.Skip("array empty")
				}
				item, ok := a.scanTake()
				require.True(t, ok, "scanTake should succeed while the array is non-empty")
				occupied--

				idx := -1
				for i, v := range model {
					if v == *item {
						idx = i
						break
					}
				}
				require.GreaterOrEqualf(t, idx, 0, "scanTake returned %d which was never put", *item)
				model = append(model[:idx], model[idx+1:]...)
			},
			"": func(t *rapid.T) {
				require.Equal(t, len(model), occupied)
				require.Equal(t, occupied == 0, a.allEmpty())
			},
		})
	})
}
