// File: api/future.go
// Package api defines the pollable future abstraction.
// License: Apache-2.0

package api

// Waker resumes the task that polled a Future. A pending Future must
// arrange for Wake to be called once progress is possible; Wake is safe
// to call from any goroutine and coalesces while the task is already
// scheduled.
type Waker interface {
	Wake()
}

// Future is a resumable unit of asynchronous work. Each Poll runs until
// the next suspension point: it returns (value, true) on completion, or
// (zero, false) when pending after arming w for re-notification.
//
// Poll is only ever invoked on the executor's owning goroutine.
type Future[T any] interface {
	Poll(w Waker) (T, bool)
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc[T any] func(w Waker) (T, bool)

// Poll implements Future.
func (f FutureFunc[T]) Poll(w Waker) (T, bool) { return f(w) }
