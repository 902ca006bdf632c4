// File: executor/executor_test.go
// License: Apache-2.0

package executor_test

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hostloop/hostloop/api"
	"github.com/hostloop/hostloop/executor"
)

// yielding returns a future that wakes itself and stays pending for
// yields polls, then completes with val. onComplete, when non-nil, runs
// on the completing poll.
func yielding[T any](yields int, val T, onComplete func()) api.Future[T] {
	remaining := yields
	return api.FutureFunc[T](func(w api.Waker) (T, bool) {
		if remaining > 0 {
			remaining--
			w.Wake()
			var zero T
			return zero, false
		}
		if onComplete != nil {
			onComplete()
		}
		return val, true
	})
}

func newExecutor(t *testing.T, opts ...executor.Option) *executor.Executor {
	t.Helper()
	ex, err := executor.New(opts...)
	if errors.Is(err, api.ErrNotSupported) {
		t.Skip("wakeup channel not supported on this platform")
	}
	if err != nil {
		t.Fatalf("executor.New: %v", err)
	}
	t.Cleanup(func() { _ = ex.Close() })
	return ex
}

// mapResolver is a stub live set.
type mapResolver struct {
	mu   sync.Mutex
	live map[string]any
}

func newMapResolver() *mapResolver {
	return &mapResolver{live: make(map[string]any)}
}

func (r *mapResolver) add(name string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[name] = v
}

func (r *mapResolver) remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, name)
}

func (r *mapResolver) Lookup(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.live[name]
	return v, ok
}

func TestSpawn_ImmediateCompletion(t *testing.T) {
	ex := newExecutor(t)

	h := executor.Spawn(ex, yielding(0, 42, nil))

	v, ok := h.Result()
	if !ok {
		t.Fatal("JoinHandle not resolved after the initial step")
	}
	if v != 42 {
		t.Fatalf("Result = %d, want 42", v)
	}
	if n := ex.PendingJobs(); n != 0 {
		t.Fatalf("PendingJobs = %d after immediate completion, want 0", n)
	}
}

func TestSpawn_PollsEveryTaskAtLeastOnce(t *testing.T) {
	ex := newExecutor(t)

	polled := 0
	for i := 0; i < 5; i++ {
		executor.Spawn(ex, api.FutureFunc[int](func(w api.Waker) (int, bool) {
			polled++
			return i, true
		}))
	}
	if polled != 5 {
		t.Fatalf("polled %d tasks, want 5", polled)
	}
}

// Scenario: three tasks spawned in order, three readiness edges, strict
// FIFO completion order.
func TestStep_FIFOOrder(t *testing.T) {
	ex := newExecutor(t)

	var order []string
	h1 := executor.Spawn(ex, yielding(1, "T1", func() { order = append(order, "T1") }))
	h2 := executor.Spawn(ex, yielding(1, "T2", func() { order = append(order, "T2") }))
	h3 := executor.Spawn(ex, yielding(1, "T3", func() { order = append(order, "T3") }))

	if len(order) != 0 {
		t.Fatalf("tasks completed before any readiness edge: %v", order)
	}
	for i := 0; i < 3; i++ {
		ex.Step()
	}

	want := []string{"T1", "T2", "T3"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Fatalf("completion order = %v, want %v", order, want)
	}
	for i, h := range []*executor.JoinHandle[string]{h1, h2, h3} {
		if _, ok := h.Result(); !ok {
			t.Fatalf("handle %d not resolved", i+1)
		}
	}
}

func TestStep_ServicesOneJobPerSignal(t *testing.T) {
	ex := newExecutor(t)

	executor.Spawn(ex, yielding(1, 1, nil))
	executor.Spawn(ex, yielding(1, 2, nil))

	if n := ex.PendingJobs(); n != 2 {
		t.Fatalf("PendingJobs = %d after two pending spawns, want 2", n)
	}
	ex.Step()
	if n := ex.PendingJobs(); n != 1 {
		t.Fatalf("PendingJobs = %d after one edge, want 1", n)
	}
	ex.Step()
	if n := ex.PendingJobs(); n != 0 {
		t.Fatalf("PendingJobs = %d after two edges, want 0", n)
	}
}

func TestStep_ReenqueueGoesToTail(t *testing.T) {
	ex := newExecutor(t)

	var order []string
	executor.Spawn(ex, yielding(2, "T1", func() { order = append(order, "T1") }))
	executor.Spawn(ex, yielding(1, "T2", func() { order = append(order, "T2") }))

	// T1 pending again after its first edge must not starve T2.
	for i := 0; i < 3; i++ {
		ex.Step()
	}
	if len(order) != 2 || order[0] != "T2" || order[1] != "T1" {
		t.Fatalf("completion order = %v, want [T2 T1]", order)
	}
}

// Scenario: a named task whose resource is destroyed before the edge is
// delivered is dropped unrun.
func TestSpawnNamed_CancelledWhenResourceGone(t *testing.T) {
	res := newMapResolver()
	ex := newExecutor(t, executor.WithResolver(res))

	res.add("buf1", "buffer")
	var output []string
	executor.SpawnNamed(ex, "buf1", api.FutureFunc[struct{}](func(w api.Waker) (struct{}, bool) {
		output = append(output, "hello")
		return struct{}{}, true
	}))

	res.remove("buf1")
	ex.Step()

	if len(output) != 0 {
		t.Fatalf("cancelled task produced output %v, want none", output)
	}
	if got := ex.Stats()["tasks_cancelled"].(uint64); got != 1 {
		t.Fatalf("tasks_cancelled = %d, want 1", got)
	}
}

func TestSpawnNamed_RunsWhileResourceLive(t *testing.T) {
	res := newMapResolver()
	ex := newExecutor(t, executor.WithResolver(res))

	res.add("buf1", "buffer")
	var output []string
	executor.SpawnNamed(ex, "buf1", api.FutureFunc[struct{}](func(w api.Waker) (struct{}, bool) {
		output = append(output, "hello")
		return struct{}{}, true
	}))

	ex.Step()
	if len(output) != 1 || output[0] != "hello" {
		t.Fatalf("output = %v, want [hello]", output)
	}
}

// Scenario: a future submitted from a foreign goroutine is polled only
// on the owning thread, and only after a readiness edge.
func TestSpawnFromOtherThread_PolledOnOwningThreadOnly(t *testing.T) {
	ex := newExecutor(t)

	var mu sync.Mutex
	var inStep bool
	polls := 0

	done := make(chan struct{})
	go func() {
		defer close(done)
		executor.SpawnFromOtherThread(ex, api.FutureFunc[int](func(w api.Waker) (int, bool) {
			mu.Lock()
			defer mu.Unlock()
			if !inStep {
				t.Error("future polled outside a Step invocation")
			}
			polls++
			return 7, true
		}))
	}()
	<-done

	mu.Lock()
	if polls != 0 {
		mu.Unlock()
		t.Fatal("future polled before any readiness edge")
	}
	inStep = true
	mu.Unlock()

	ex.Step()

	mu.Lock()
	defer mu.Unlock()
	if polls != 1 {
		t.Fatalf("polls = %d after one edge, want 1", polls)
	}
}

// Scenario: a panicking step produces exactly one diagnostic entry and
// the next queued task is still serviced.
func TestStep_PanicContained(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ex := newExecutor(t, executor.WithLogger(zap.New(core)))

	executor.Spawn(ex, yielding(1, 0, nil))
	// The panic fires on the queued second step.
	boom := false
	executor.Spawn(ex, api.FutureFunc[int](func(w api.Waker) (int, bool) {
		if !boom {
			boom = true
			w.Wake()
			return 0, false
		}
		panic("boom")
	}))

	var t4 bool
	ex.Step() // first task completes
	ex.Step() // second task panics
	executor.Spawn(ex, yielding(1, 0, func() { t4 = true }))
	ex.Step()

	entries := logs.FilterMessage("task panic contained").All()
	if len(entries) != 1 {
		t.Fatalf("panic logged %d times, want exactly once", len(entries))
	}
	if got := entries[0].ContextMap()["panic"]; got != "boom" {
		t.Fatalf("logged panic value = %v, want boom", got)
	}
	if !t4 {
		t.Fatal("task queued after the panic was not serviced")
	}
	if got := ex.Stats()["panics_contained"].(uint64); got != 1 {
		t.Fatalf("panics_contained = %d, want 1", got)
	}
}

func TestSpawn_PanicsOnClosedExecutor(t *testing.T) {
	ex := newExecutor(t)
	_ = ex.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("Spawn on a closed executor did not panic")
		}
	}()
	executor.Spawn(ex, yielding(0, 0, nil))
}

func TestSpawnFromOtherThread_AbsorbedAfterClose(t *testing.T) {
	ex := newExecutor(t)
	_ = ex.Close()

	polled := false
	executor.SpawnFromOtherThread(ex, api.FutureFunc[int](func(w api.Waker) (int, bool) {
		polled = true
		return 0, true
	}))
	ex.Step()

	if polled {
		t.Fatal("future polled on a closed executor")
	}
}

func TestStep_SpawnDuringStepRunsOnLaterEdge(t *testing.T) {
	ex := newExecutor(t)

	var innerDone bool
	first := true
	executor.Spawn(ex, api.FutureFunc[int](func(w api.Waker) (int, bool) {
		if first {
			first = false
			w.Wake()
			return 0, false
		}
		// Second poll runs inside a Step; spawning here is the
		// re-entrant case the host contract allows.
		executor.Spawn(ex, yielding(1, 0, func() { innerDone = true }))
		return 0, true
	}))

	ex.Step()
	if innerDone {
		t.Fatal("re-entrantly spawned task ran within the same step")
	}
	ex.Step()
	if !innerDone {
		t.Fatal("re-entrantly spawned task never serviced")
	}
}
