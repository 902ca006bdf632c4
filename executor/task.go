// File: executor/task.go
// License: Apache-2.0
//
// Task wrapper and waker. A task owns a type-erased poll closure; its
// waker coalesces wakeups so a task occupies at most one queue slot.

package executor

import "sync/atomic"

// task is an opaque resumable computation. step runs one poll of the
// wrapped future and reports completion.
type task struct {
	ex     *Executor
	step   func() bool
	name   string
	named  bool
	queued atomic.Bool
	ended  atomic.Bool
}

// Wake implements api.Waker. It enqueues one pending step for the task
// and signals the wakeup channel. Wakes while the task is already
// enqueued, or after it ended, coalesce into nothing.
func (t *task) Wake() {
	if t.ended.Load() {
		return
	}
	if !t.queued.CompareAndSwap(false, true) {
		return
	}
	t.ex.enqueue(job{t: t, name: t.name, named: t.named})
}

// JoinHandle resolves to the output of a spawned future once the
// future completes. Dropping a JoinHandle does not stop the underlying
// task.
type JoinHandle[T any] struct {
	done chan struct{}
	val  T
}

func newJoinHandle[T any]() *JoinHandle[T] {
	return &JoinHandle[T]{done: make(chan struct{})}
}

// resolve runs on the owning thread, before done is closed, so Result
// observes the value without further synchronization.
func (h *JoinHandle[T]) resolve(v T) {
	h.val = v
	close(h.done)
}

// Done returns a channel closed when the future has completed.
func (h *JoinHandle[T]) Done() <-chan struct{} {
	return h.done
}

// Result returns the future's output. ok is false while the future has
// not completed, and stays false forever if the task panicked.
func (h *JoinHandle[T]) Result() (v T, ok bool) {
	select {
	case <-h.done:
		return h.val, true
	default:
		return v, false
	}
}
