// File: reactor/loop.go
// License: Apache-2.0
//
// Loop runs a Reactor on one goroutine and dispatches all callbacks
// there, which is exactly the threading contract a real host's event
// loop gives the plugin.

package reactor

import (
	"sync/atomic"

	"github.com/hostloop/hostloop/wakeup"
)

// Loop is a single-threaded readiness loop. It implements
// api.ReadinessRegistrar, so a plugin can embed into it unchanged.
type Loop struct {
	r       Reactor
	tx      *wakeup.Sender
	rx      *wakeup.Receiver
	quit    atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// NewLoop creates a loop around the platform reactor. The loop watches
// an internal wakeup channel so Stop can interrupt a blocked poll.
func NewLoop() (*Loop, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	tx, rx, err := wakeup.NewPair()
	if err != nil {
		r.Close()
		return nil, err
	}
	l := &Loop{r: r, tx: tx, rx: rx, done: make(chan struct{})}
	if err := r.Register(rx.Fd(), EventRead, func(uintptr, FDEventType) {
		_, _ = rx.Drain()
	}); err != nil {
		rx.Close()
		r.Close()
		return nil, err
	}
	return l, nil
}

// Run polls and dispatches until Stop is called. It must be the only
// goroutine executing callbacks; Run returning means no callback will
// fire again.
func (l *Loop) Run() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	defer close(l.done)
	for !l.quit.Load() {
		if err := l.r.Poll(-1); err != nil {
			return
		}
	}
}

// Stop interrupts the poll, waits for Run to exit, and releases the
// reactor.
func (l *Loop) Stop() {
	if !l.quit.CompareAndSwap(false, true) {
		return
	}
	_ = l.tx.Signal()
	if l.running.Load() {
		<-l.done
	}
	_ = l.rx.Close()
	_ = l.r.Close()
}

// WatchReadable implements api.ReadinessRegistrar.
func (l *Loop) WatchReadable(fd uintptr, cb func()) (func() error, error) {
	err := l.r.Register(fd, EventRead, func(uintptr, FDEventType) { cb() })
	if err != nil {
		return nil, err
	}
	return func() error { return l.r.Unregister(fd) }, nil
}
