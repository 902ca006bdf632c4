//go:build linux

// File: reactor/loop_test.go
// License: Apache-2.0

package reactor_test

import (
	"testing"
	"time"

	"github.com/hostloop/hostloop/reactor"
	"github.com/hostloop/hostloop/wakeup"
)

func TestReactor_RegisterAndPollTimeout(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	tx, rx, err := wakeup.NewPair()
	if err != nil {
		t.Fatalf("wakeup.NewPair: %v", err)
	}
	defer rx.Close()

	fired := 0
	if err := r.Register(rx.Fd(), reactor.EventRead, func(fd uintptr, ev reactor.FDEventType) {
		if ev&reactor.EventRead == 0 {
			t.Errorf("events = %v, want EventRead set", ev)
		}
		_, _ = rx.Drain()
		fired++
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Nothing pending: poll must time out without dispatch.
	if err := r.Poll(0); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if fired != 0 {
		t.Fatal("callback fired without readiness")
	}

	if err := tx.Signal(); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if err := r.Poll(100); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}

	if err := r.Unregister(rx.Fd()); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
}

func TestReactor_PanickingCallbackDoesNotKillPoll(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	tx, rx, err := wakeup.NewPair()
	if err != nil {
		t.Fatalf("wakeup.NewPair: %v", err)
	}
	defer rx.Close()

	if err := r.Register(rx.Fd(), reactor.EventRead, func(uintptr, reactor.FDEventType) {
		_, _ = rx.Drain()
		panic("callback exploded")
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_ = tx.Signal()

	if err := r.Poll(100); err != nil {
		t.Fatalf("Poll after panicking callback: %v", err)
	}
}

func TestLoop_DispatchesOnLoopGoroutine(t *testing.T) {
	l, err := reactor.NewLoop()
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	go l.Run()

	tx, rx, err := wakeup.NewPair()
	if err != nil {
		t.Fatalf("wakeup.NewPair: %v", err)
	}
	defer rx.Close()

	fired := make(chan struct{}, 4)
	cancel, err := l.WatchReadable(rx.Fd(), func() {
		_, _ = rx.Drain()
		fired <- struct{}{}
	})
	if err != nil {
		t.Fatalf("WatchReadable: %v", err)
	}

	if err := tx.Signal(); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("readiness callback never fired")
	}

	if err := cancel(); err != nil {
		t.Fatalf("cancel watch: %v", err)
	}
	l.Stop()
}

func TestLoop_StopInterruptsBlockedPoll(t *testing.T) {
	l, err := reactor.NewLoop()
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}

	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()

	l.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit after Stop")
	}
}
