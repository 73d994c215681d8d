// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

package ptc

import "github.com/bmenkuec/go-ptc/internal/perr"

// Misuse errors. These correspond to §7's "Misuse" error kind: starting
// twice, pushing after shutdown, and negative slot counts.
const (
	ErrAlreadyStarted    perr.Error = "ptc: component already started"
	ErrNotStarted        perr.Error = "ptc: component not started"
	ErrInvalidSlots      perr.Error = "ptc: numSlots must be >= 1"
	ErrPushAfterShutDown perr.Error = "ptc: pushItem called after shutDown"
)

// SourceError wraps an error returned by a Source, captured by the producer
// thread and surfaced from [Produce.Err].
type SourceError struct{ Err error }

func (e *SourceError) Error() string { return "ptc: source failed: " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

// TransformError wraps an error returned by a Transformer, captured by the
// worker goroutine that encountered it and surfaced from [Unit.WaitForFinish].
type TransformError struct{ Err error }

func (e *TransformError) Error() string { return "ptc: transform failed: " + e.Err.Error() }
func (e *TransformError) Unwrap() error { return e.Err }

// SinkError wraps an error returned by a Sink, captured by the reducer thread
// and surfaced from [Reduce.Err] and [Reduce.ShutDown].
type SinkError struct{ Err error }

func (e *SinkError) Error() string { return "ptc: sink failed: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }
