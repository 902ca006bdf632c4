//go:build linux

// File: reactor/reactor_linux.go
// License: Apache-2.0
//
// Linux epoll(7) reactor. Level-triggered on purpose: a wakeup channel
// with notifications still pending must keep producing readiness
// edges, one per Poll pass, until drained.

package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

type epollReactor struct {
	epfd      int
	callbacks sync.Map // map[uintptr]FDCallback
}

// New creates the platform reactor.
func New() (Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollReactor{epfd: epfd}, nil
}

func (r *epollReactor) Register(fd uintptr, events FDEventType, cb FDCallback) error {
	var ev unix.EpollEvent
	if events&EventRead != 0 {
		ev.Events |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		ev.Events |= unix.EPOLLOUT
	}
	ev.Fd = int32(fd)

	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	r.callbacks.Store(fd, cb)
	return nil
}

func (r *epollReactor) Unregister(fd uintptr) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	r.callbacks.Delete(fd)
	return nil
}

func (r *epollReactor) Poll(timeoutMs int) error {
	var events [128]unix.EpollEvent
	n, err := unix.EpollWait(r.epfd, events[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("epoll wait: %w", err)
	}

	for i := 0; i < n; i++ {
		ev := events[i]
		fd := uintptr(ev.Fd)
		val, ok := r.callbacks.Load(fd)
		if !ok {
			continue
		}

		var eventType FDEventType
		if ev.Events&unix.EPOLLIN != 0 {
			eventType |= EventRead
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			eventType |= EventWrite
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			eventType |= EventError
		}

		cb, _ := val.(FDCallback)
		// A panicking callback must not take the loop down with it.
		func() {
			defer func() { _ = recover() }()
			cb(fd, eventType)
		}()
	}
	return nil
}

func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}
