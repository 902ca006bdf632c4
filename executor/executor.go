// File: executor/executor.go
// License: Apache-2.0
//
// Executor core: spawn paths, the per-readiness-edge step function,
// panic containment, and teardown.

package executor

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hostloop/hostloop/api"
	"github.com/hostloop/hostloop/wakeup"
)

// Executor owns the job queue and the wakeup channel of one plugin
// instance. It never runs a loop of its own: the host invokes Step
// through the registered readiness hook, one job per edge.
type Executor struct {
	jobs     *jobQueue
	tx       *wakeup.Sender
	rx       *wakeup.Receiver
	resolver api.Resolver
	log      *zap.Logger

	// pending cross-thread spawns, promoted one per step on the
	// owning thread.
	foreignMu sync.Mutex
	foreign   []func()

	closed atomic.Bool

	spawned   atomic.Uint64
	fromOther atomic.Uint64
	serviced  atomic.Uint64
	cancelled atomic.Uint64
	panics    atomic.Uint64
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for diagnostics, including the
// single entry emitted per contained task panic.
func WithLogger(l *zap.Logger) Option {
	return func(ex *Executor) { ex.log = l }
}

// WithResolver sets the live-resource lookup used for named-task
// resolution. Without one, every named task is cancelled.
func WithResolver(r api.Resolver) Option {
	return func(ex *Executor) { ex.resolver = r }
}

// New creates an Executor with its wakeup channel.
func New(opts ...Option) (*Executor, error) {
	tx, rx, err := wakeup.NewPair()
	if err != nil {
		return nil, err
	}
	ex := &Executor{
		jobs: newJobQueue(),
		tx:   tx,
		rx:   rx,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ex)
	}
	return ex, nil
}

// WakeupFd returns the readable descriptor the host must watch to
// drive Step.
func (ex *Executor) WakeupFd() uintptr {
	return ex.rx.Fd()
}

// PendingJobs returns the current job queue depth.
func (ex *Executor) PendingJobs() int {
	return ex.jobs.len()
}

// Stats returns a snapshot of the executor counters.
func (ex *Executor) Stats() map[string]any {
	return map[string]any{
		"tasks_spawned":      ex.spawned.Load(),
		"tasks_from_other":   ex.fromOther.Load(),
		"jobs_serviced":      ex.serviced.Load(),
		"tasks_cancelled":    ex.cancelled.Load(),
		"panics_contained":   ex.panics.Load(),
		"jobs_pending":       ex.jobs.len(),
		"foreign_pending":    ex.foreignPending(),
	}
}

func (ex *Executor) foreignPending() int {
	ex.foreignMu.Lock()
	defer ex.foreignMu.Unlock()
	return len(ex.foreign)
}

// Spawn wraps fut in a task and performs its first step synchronously.
// It must be called on the owning thread and panics when the executor
// is missing or torn down: that is a programmer error, there is no
// caller to hand an error to once the host loop is gone.
func Spawn[T any](ex *Executor, fut api.Future[T]) *JoinHandle[T] {
	if ex == nil || ex.closed.Load() {
		panic(api.ErrExecutorClosed)
	}
	h := newJoinHandle[T]()
	t := &task{ex: ex}
	t.step = func() bool {
		v, done := fut.Poll(t)
		if done {
			t.ended.Store(true)
			h.resolve(v)
		}
		return done
	}
	ex.spawned.Add(1)
	ex.runStep(t)
	return h
}

// SpawnNamed ties fut to the stable name of a host resource. The task
// is not polled synchronously: it waits in the queue, and the name is
// re-resolved against the live set immediately before every step. A
// failed resolution cancels the task silently. Fire-and-forget.
func SpawnNamed[T any](ex *Executor, name string, fut api.Future[T]) {
	if ex == nil || ex.closed.Load() {
		panic(api.ErrExecutorClosed)
	}
	t := &task{ex: ex, name: name, named: true}
	t.step = func() bool {
		_, done := fut.Poll(t)
		if done {
			t.ended.Store(true)
		}
		return done
	}
	ex.spawned.Add(1)
	t.queued.Store(true)
	ex.enqueue(job{t: t, name: name, named: true})
}

// SpawnFromOtherThread submits fut from a non-owning goroutine. The
// future is never polled on the submitting goroutine: the owning
// thread promotes it to a local task on a later step. A torn-down
// executor absorbs the submission silently; there is no caller to
// notify across the thread boundary.
func SpawnFromOtherThread[T any](ex *Executor, fut api.Future[T]) {
	promote := func() {
		t := &task{ex: ex}
		t.step = func() bool {
			_, done := fut.Poll(t)
			if done {
				t.ended.Store(true)
			}
			return done
		}
		// The signal for this job was sent when the future was
		// appended to the pending list; promotion must not signal
		// again or the push/signal pairing breaks.
		ex.jobs.push(job{t: t})
	}

	ex.foreignMu.Lock()
	if ex.closed.Load() {
		ex.foreignMu.Unlock()
		return
	}
	ex.foreign = append(ex.foreign, promote)
	ex.foreignMu.Unlock()

	ex.fromOther.Add(1)
	if err := ex.tx.Signal(); err != nil {
		ex.log.Debug("wakeup signal after teardown absorbed", zap.Error(err))
	}
}

// enqueue pushes one pending step and signals the wakeup channel.
// Push happens first so the readiness edge triggered by the signal
// always finds the job.
func (ex *Executor) enqueue(j job) {
	if ex.closed.Load() {
		return
	}
	ex.jobs.push(j)
	if err := ex.tx.Signal(); err != nil {
		ex.log.Debug("wakeup signal after teardown absorbed", zap.Error(err))
	}
}

// Step services exactly one readiness edge: it drains one wakeup
// notification, promotes at most one cross-thread future into the job
// queue, and runs at most one job. The host invokes it from its event
// loop thread; re-entrant spawns during a step land at the queue tail
// and are serviced on later edges.
func (ex *Executor) Step() {
	if ex.closed.Load() {
		return
	}
	consumed, err := ex.rx.Drain()
	if err != nil || !consumed {
		// A readiness edge without a pending notification is spurious;
		// servicing a job here would break the push/signal pairing.
		return
	}

	ex.foreignMu.Lock()
	var promote func()
	if len(ex.foreign) > 0 {
		promote = ex.foreign[0]
		ex.foreign = ex.foreign[1:]
	}
	ex.foreignMu.Unlock()
	if promote != nil {
		promote()
	}

	j, ok := ex.jobs.pop()
	if !ok {
		return
	}
	if j.named {
		if !ex.resolveName(j.name) {
			j.t.ended.Store(true)
			ex.cancelled.Add(1)
			ex.log.Debug("named task cancelled, resource gone",
				zap.String("name", j.name))
			return
		}
	}
	ex.serviced.Add(1)
	ex.runStep(j.t)
}

func (ex *Executor) resolveName(name string) bool {
	if ex.resolver == nil {
		return false
	}
	_, ok := ex.resolver.Lookup(name)
	return ok
}

// runStep executes one task step inside the panic boundary. This is
// the single call site where user code runs: a panic here becomes one
// diagnostic entry and the queue keeps moving on the next edge.
func (ex *Executor) runStep(t *task) {
	defer func() {
		if r := recover(); r != nil {
			t.ended.Store(true)
			ex.panics.Add(1)
			ex.log.Error("task panic contained",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	// Reset before polling so a wake during the poll re-enqueues at
	// the tail instead of being lost.
	t.queued.Store(false)
	if t.ended.Load() {
		return
	}
	t.step()
}

// Close tears the executor down: the wakeup channel is closed, senders
// held by outstanding tasks start failing with api.ErrChannelClosed
// and are absorbed, queued jobs are dropped unrun. Close is
// idempotent.
func (ex *Executor) Close() error {
	if !ex.closed.CompareAndSwap(false, true) {
		return nil
	}
	ex.foreignMu.Lock()
	ex.foreign = nil
	ex.foreignMu.Unlock()
	return ex.rx.Close()
}
