// Package task provides awaitable handles for background work and a
// request counter used to drop results that a newer request superseded.
package task

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrPending is returned by Result while the work is still running.
var ErrPending = errors.New("task still running")

// Sequencer hands out monotonically increasing request numbers.
// A result is current only if no newer request was issued after it.
type Sequencer struct {
	n atomic.Uint64
}

// Next issues a new request number.
func (s *Sequencer) Next() uint64 {
	return s.n.Add(1)
}

// Latest returns the most recently issued request number.
func (s *Sequencer) Latest() uint64 {
	return s.n.Load()
}

// IsLatest reports whether seq is still the newest request.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return s.n.Load() == seq
}

// Task is a handle to work running in its own goroutine.
// Callers may Wait for it or simply drop the handle.
type Task[T any] struct {
	seq  uint64
	done chan struct{}
	val  T
	err  error

	superseded func() bool
}

// Go starts fn in a goroutine and returns its handle.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	return run(ctx, 0, nil, fn)
}

// GoSeq starts fn tagged with a fresh request number from seq.
// The handle reports Superseded once a newer request has been issued.
func GoSeq[T any](ctx context.Context, seq *Sequencer, fn func(ctx context.Context, n uint64) (T, error)) *Task[T] {
	n := seq.Next()
	return run(ctx, n, func() bool { return !seq.IsLatest(n) }, func(ctx context.Context) (T, error) {
		return fn(ctx, n)
	})
}

func run[T any](ctx context.Context, n uint64, superseded func() bool, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{
		seq:        n,
		done:       make(chan struct{}),
		superseded: superseded,
	}
	go func() {
		defer close(t.done)
		t.val, t.err = fn(ctx)
	}()
	return t
}

// Done is closed when the work has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Seq returns the request number, or 0 for untagged tasks.
func (t *Task[T]) Seq() uint64 {
	return t.seq
}

// Superseded reports whether a newer request was issued after this one.
func (t *Task[T]) Superseded() bool {
	return t.superseded != nil && t.superseded()
}

// Wait blocks until the work finishes or ctx is done.
// Cancelling ctx abandons the wait, not the work.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking.
func (t *Task[T]) Result() (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	default:
		var zero T
		return zero, ErrPending
	}
}
