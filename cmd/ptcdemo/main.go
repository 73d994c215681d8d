// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Command ptcdemo runs §8's integer-doubling scenario end to end: a source
// counts from 1 to a configurable upper bound, a worker pool doubles each
// value, and a sink accumulates them, printing how many items were produced
// and consumed and the elapsed time.
// It exists to exercise ptc.Unit the way a real caller actually would.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bmenkuec/go-ptc"
	"github.com/bmenkuec/go-ptc/ptcobs"
)

func main() {
	count := flag.Int("count", 1000, "number of items the source produces")
	workers := flag.Int("workers", 4, "worker pool size")
	semaphore := flag.Bool("semaphore", false, "use the real counting semaphore wait policy instead of polling")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}
	defer logger.Sync() //nolint:errcheck

	opts := []ptc.Option{ptc.WithLogger(logger), ptc.WithObserver(ptcobs.OtelObserver{})}
	if *semaphore {
		opts = append(opts, ptc.WithSemaphore())
	}

	next := 0
	source := func(context.Context) (int, bool, error) {
		if next >= *count {
			return 0, false, nil
		}
		next++
		return next, true, nil
	}

	var mu sync.Mutex
	var results []int
	sink := func(v int) error {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return nil
	}

	producer := ptc.NewProduce(ptc.Source[int](source), opts...)
	consumer := ptc.NewReduce(ptc.Sink[int](sink), opts...)
	unit := ptc.New(producer, ptc.Transformer[int, int](func(v int) (int, error) {
		return v * 2, nil
	}), consumer, *workers, opts...)

	start := time.Now()
	if err := unit.Start(); err != nil {
		log.Fatalf("start: %v", err)
	}
	if err := unit.WaitForFinish(); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
	elapsed := time.Since(start)

	sort.Ints(results)
	fmt.Printf("produced=%d consumed=%d elapsed=%v\n", *count, len(results), elapsed)
}
