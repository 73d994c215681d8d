// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Package ptcsim estimates end-to-end latency and throughput for a
// candidate ptc.Unit configuration without running the real pipeline,
// letting a caller answer §8 scenario 6's sizing question ("numWorkers=8,
// producerSlots=9, consumerSlots=9, 1M items: does throughput beat serial?")
// cheaply. It is a discrete-event simulation grounded on
// internal/sim/estimate.go's event-heap-plus-deque structure, adapted from
// psg's scatter/gather task graph to ptc's fixed three-stage pipeline
// shape: one sequential producer, N parallel workers, one sequential
// reducer.
package ptcsim

import (
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
)

// Config describes a candidate pipeline configuration to estimate.
type Config struct {
	ItemCount        int
	NumProducerSlots int
	NumWorkers       int
	NumConsumerSlots int
	ProduceTime      time.Duration
	TransformTime    time.Duration
	ConsumeTime      time.Duration
}

// Result summarizes a simulated run of a Config.
type Result struct {
	OverallDuration      time.Duration
	Throughput           float64 // items per second
	MaxProducerOccupancy int
	MaxConsumerOccupancy int
}

type event struct {
	Time time.Duration
	Func func()
}

func (a *event) Cmp(b *event) int {
	switch {
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	default:
		return 0
	}
}

// Estimate runs a discrete-event simulation of cfg. The producer and
// reducer are modeled as single sequential stages, matching Produce's and
// Reduce's one dedicated goroutine each; the worker pool is modeled as
// NumWorkers parallel stages. Slot counts bound how far each stage may run
// ahead of its downstream neighbor, exactly as the real slot arrays do.
func Estimate(cfg Config) Result {
	if cfg.ItemCount <= 0 {
		return Result{}
	}

	var evHeap heap.Heap[event, heap.Min]
	var simTime time.Duration

	producerSlotsFree := cfg.NumProducerSlots
	consumerSlotsFree := cfg.NumConsumerSlots
	workersFree := cfg.NumWorkers

	producerBusy := false
	reducerBusy := false

	producedCount := 0
	bufferedForWorkers := 0
	bufferedForConsumer := 0

	var maxProducerOccupancy, maxConsumerOccupancy int
	var waitingDeliveries deque.Deque[func()]

	var tryProduce, tryDispatchWorker, tryDrain func()
	var deliverToConsumer func(onDelivered func())

	tryProduce = func() {
		if producerBusy || producerSlotsFree == 0 || producedCount >= cfg.ItemCount {
			return
		}
		producerBusy = true
		producerSlotsFree--
		heap.PushOrderable(&evHeap, event{
			Time: simTime + cfg.ProduceTime,
			Func: func() {
				producerBusy = false
				producedCount++
				bufferedForWorkers++
				maxProducerOccupancy = max(maxProducerOccupancy, bufferedForWorkers)
				tryDispatchWorker()
				tryProduce()
			},
		})
	}

	tryDispatchWorker = func() {
		for workersFree > 0 && bufferedForWorkers > 0 {
			workersFree--
			bufferedForWorkers--
			producerSlotsFree++
			tryProduce()
			heap.PushOrderable(&evHeap, event{
				Time: simTime + cfg.TransformTime,
				Func: func() {
					deliverToConsumer(func() {
						workersFree++
						tryDispatchWorker()
					})
				},
			})
		}
	}

	deliverToConsumer = func(onDelivered func()) {
		if consumerSlotsFree > 0 {
			consumerSlotsFree--
			bufferedForConsumer++
			maxConsumerOccupancy = max(maxConsumerOccupancy, bufferedForConsumer)
			tryDrain()
			onDelivered()
			return
		}
		waitingDeliveries.PushBack(onDelivered)
	}

	tryDrain = func() {
		if reducerBusy || bufferedForConsumer == 0 {
			return
		}
		reducerBusy = true
		bufferedForConsumer--
		heap.PushOrderable(&evHeap, event{
			Time: simTime + cfg.ConsumeTime,
			Func: func() {
				reducerBusy = false
				if waitingDeliveries.Len() > 0 {
					next := waitingDeliveries.PopFront()
					bufferedForConsumer++
					maxConsumerOccupancy = max(maxConsumerOccupancy, bufferedForConsumer)
					next()
				} else {
					consumerSlotsFree++
				}
				tryDrain()
			},
		})
	}

	tryProduce()

	for {
		ev, ok := heap.PopOrderable(&evHeap)
		if !ok {
			break
		}
		simTime = ev.Time
		ev.Func()
	}

	result := Result{
		OverallDuration:      simTime,
		MaxProducerOccupancy: maxProducerOccupancy,
		MaxConsumerOccupancy: maxConsumerOccupancy,
	}
	if simTime > 0 {
		result.Throughput = float64(cfg.ItemCount) / simTime.Seconds()
	}
	return result
}
