// File: wakeup/wakeup.go
// License: Apache-2.0
//
// Sender/receiver pair over a platform notification descriptor.

package wakeup

import (
	"sync"

	"github.com/hostloop/hostloop/api"
)

// channel is the state shared by all senders and the receiver.
// The mutex orders Signal against Close so that no write can hit a
// descriptor that was already returned to the kernel.
type channel struct {
	mu     sync.Mutex
	rfd    int
	wfd    int
	closed bool
}

// Sender is the signalling half of a wakeup pair. It may be cloned and
// used from any goroutine.
type Sender struct {
	ch *channel
}

// Receiver is the draining half of a wakeup pair. It is owned by the
// executor's thread; only that thread may call Drain or Close.
type Receiver struct {
	ch *channel
}

// NewPair creates a connected sender/receiver pair backed by a
// platform notification descriptor (eventfd on Linux, a pipe on other
// unix systems).
func NewPair() (*Sender, *Receiver, error) {
	rfd, wfd, err := newChannelFDs()
	if err != nil {
		return nil, nil, err
	}
	ch := &channel{rfd: rfd, wfd: wfd}
	return &Sender{ch: ch}, &Receiver{ch: ch}, nil
}

// Signal posts one notification. It returns api.ErrChannelClosed when
// the receiver has been closed, which means the executor owning it has
// been torn down.
func (s *Sender) Signal() error {
	s.ch.mu.Lock()
	defer s.ch.mu.Unlock()
	if s.ch.closed {
		return api.ErrChannelClosed
	}
	return signalFD(s.ch.wfd)
}

// Clone returns a new Sender sharing the same channel.
func (s *Sender) Clone() *Sender {
	return &Sender{ch: s.ch}
}

// Fd returns the readable descriptor for registration with the host's
// readiness mechanism. The descriptor stays valid until Close.
func (r *Receiver) Fd() uintptr {
	return uintptr(r.ch.rfd)
}

// Drain consumes at most one pending notification. It reports whether
// a notification was consumed; a readiness edge without a pending
// notification drains nothing and is not an error.
func (r *Receiver) Drain() (bool, error) {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()
	if r.ch.closed {
		return false, api.ErrChannelClosed
	}
	return drainFD(r.ch.rfd)
}

// Close tears the channel down. Subsequent Signal calls fail with
// api.ErrChannelClosed. Close is idempotent.
func (r *Receiver) Close() error {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()
	if r.ch.closed {
		return nil
	}
	r.ch.closed = true
	return closeChannelFDs(r.ch.rfd, r.ch.wfd)
}
