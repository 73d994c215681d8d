// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestUnitDoublesIntegers is §8 scenario 1: 1..1000 doubled, collected, and
// sorted should equal [2, 4, ..., 2000].
func TestUnitDoublesIntegers(t *testing.T) {
	const total = 1000
	next := 0
	source := Source[int](func(context.Context) (int, bool, error) {
		if next >= total {
			return 0, false, nil
		}
		next++
		return next, true, nil
	})

	var mu sync.Mutex
	var results []int
	sink := Sink[int](func(v int) error {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return nil
	})

	producer := NewProduce(source, WithSleep(time.Millisecond))
	consumer := NewReduce(sink, WithSleep(time.Millisecond))
	unit := New(producer, Transformer[int, int](func(v int) (int, error) {
		return v * 2, nil
	}), consumer, 4)

	require.NoError(t, unit.Start())
	require.NoError(t, unit.WaitForFinish())
	require.True(t, producer.Idle())
	require.True(t, consumer.Idle())

	sort.Ints(results)
	want := make([]int, total)
	for i := range want {
		want[i] = (i + 1) * 2
	}
	require.Equal(t, want, results)
}

// TestUnitRandomDelaysNoDeadlock is §8 scenario 2: random small delays on
// both the source and the transformer side must not deadlock, and every
// item must still arrive.
func TestUnitRandomDelaysNoDeadlock(t *testing.T) {
	const total = 100
	rng := rand.New(rand.NewSource(1))
	next := 0
	source := Source[int](func(context.Context) (int, bool, error) {
		if next >= total {
			return 0, false, nil
		}
		time.Sleep(time.Duration(rng.Intn(5)) * time.Millisecond)
		next++
		return next, true, nil
	})

	var mu sync.Mutex
	var results []int
	sink := Sink[int](func(v int) error {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return nil
	})

	producer := NewProduce(source, WithSleep(time.Millisecond))
	consumer := NewReduce(sink, WithSleep(time.Millisecond))
	unit := New(producer, Transformer[int, int](func(v int) (int, error) {
		time.Sleep(time.Duration(rng.Intn(10)) * time.Millisecond)
		return v, nil
	}), consumer, 6)

	require.NoError(t, unit.Start())
	require.NoError(t, unit.WaitForFinish())
	require.True(t, unit.Finished())
	require.Len(t, results, total)
}

// TestUnitZeroItems is §8 scenario 3: an empty source must return
// immediately and never invoke the sink.
func TestUnitZeroItems(t *testing.T) {
	source := Source[int](func(context.Context) (int, bool, error) {
		return 0, false, nil
	})
	sinkCalled := false
	sink := Sink[int](func(int) error {
		sinkCalled = true
		return nil
	})

	producer := NewProduce(source, WithSleep(time.Millisecond))
	consumer := NewReduce(sink, WithSleep(time.Millisecond))
	unit := New(producer, Transformer[int, int](func(v int) (int, error) { return v, nil }), consumer, 4)

	require.NoError(t, unit.Start())
	require.NoError(t, unit.WaitForFinish())
	require.False(t, sinkCalled)
}

// TestUnitTransformerFailureUnblocksPipeline is §8 scenario 4 and the fix
// for §9's open question: a transformer failure on the 5th item must not
// leave the pipeline deadlocked, and the error must surface from
// WaitForFinish. Run under both wait policies: forceEOF's broadcast reaches
// the producer goroutine's own "slots full" wait only via a real Signal, so
// poll mode alone (where a parked producer wakes on its own within one sleep
// tick regardless) would not catch a missing broadcast on that side.
func TestUnitTransformerFailureUnblocksPipeline(t *testing.T) {
	runTransformerFailureCase(t, WithSleep(time.Millisecond))
}

func TestUnitTransformerFailureUnblocksPipelineSemaphoreMode(t *testing.T) {
	runTransformerFailureCase(t, WithSemaphore())
}

func runTransformerFailureCase(t *testing.T, opt Option) {
	const total = 10
	boom := errors.New("boom")
	next := 0
	source := Source[int](func(context.Context) (int, bool, error) {
		if next >= total {
			return 0, false, nil
		}
		next++
		return next, true, nil
	})

	var mu sync.Mutex
	var results []int
	sink := Sink[int](func(v int) error {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return nil
	})

	producer := NewProduce(source, opt)
	consumer := NewReduce(sink, opt)
	unit := New(producer, Transformer[int, int](func(v int) (int, error) {
		if v == 5 {
			return 0, boom
		}
		return v, nil
	}), consumer, 1, opt)

	require.NoError(t, unit.Start())

	done := make(chan error, 1)
	go func() { done <- unit.WaitForFinish() }()

	select {
	case err := <-done:
		var xformErr *TransformError
		require.ErrorAs(t, err, &xformErr)
		require.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForFinish deadlocked after a transformer failure")
	}

	mu.Lock()
	defer mu.Unlock()
	require.LessOrEqual(t, len(results), 4)
}

// TestUnitSemaphoreModeMatchesPollMode is §8 scenario 5: results must be
// identical (ignoring timing) under both wait policies.
func TestUnitSemaphoreModeMatchesPollMode(t *testing.T) {
	const total = 500
	run := func(opts ...Option) []int {
		next := 0
		source := Source[int](func(context.Context) (int, bool, error) {
			if next >= total {
				return 0, false, nil
			}
			next++
			return next, true, nil
		})
		var mu sync.Mutex
		var results []int
		sink := Sink[int](func(v int) error {
			mu.Lock()
			results = append(results, v*2)
			mu.Unlock()
			return nil
		})

		producer := NewProduce(source, opts...)
		consumer := NewReduce(sink, opts...)
		unit := New(producer, Transformer[int, int](func(v int) (int, error) { return v, nil }), consumer, 5, opts...)
		require.NoError(t, unit.Start())
		require.NoError(t, unit.WaitForFinish())
		sort.Ints(results)
		return results
	}

	poll := run(WithSleep(time.Millisecond))
	sem := run(WithSemaphore())
	require.Equal(t, poll, sem)
}

// TestUnitZeroWorkersDegeneratesGracefully covers §6's "numWorkers == 0"
// configuration surface.
func TestUnitZeroWorkersDegeneratesGracefully(t *testing.T) {
	const total = 25
	next := 0
	source := Source[int](func(context.Context) (int, bool, error) {
		if next >= total {
			return 0, false, nil
		}
		next++
		return next, true, nil
	})
	var mu sync.Mutex
	var results []int
	sink := Sink[int](func(v int) error {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return nil
	})

	producer := NewProduce(source, WithSleep(time.Millisecond))
	consumer := NewReduce(sink, WithSleep(time.Millisecond))
	unit := New(producer, Transformer[int, int](func(v int) (int, error) { return v, nil }), consumer, 0)

	require.NoError(t, unit.Start())
	require.NoError(t, unit.WaitForFinish())
	sort.Ints(results)
	want := make([]int, total)
	for i := range want {
		want[i] = i + 1
	}
	require.Equal(t, want, results)
}
