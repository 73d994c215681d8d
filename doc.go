// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Package ptc provides a reusable in-process producer/transformer/consumer
// pipeline for bulk data processing. A single Produce goroutine materializes
// items from a source; a fixed-size pool of worker goroutines applies a pure
// Transformer to each item in parallel; a single Reduce goroutine drains
// results, in arrival order rather than source order, into a Sink.
//
// The pipeline overlaps the I/O of production and consumption with the CPU
// work of transformation while bounding memory to a fixed number of slots on
// each side. A Unit composes a Produce, a Transformer, and a Reduce with a
// worker count and orchestrates startup and shutdown; Produce and Reduce may
// also be used independently of Unit.
package ptc
