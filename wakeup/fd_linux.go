//go:build linux

// File: wakeup/fd_linux.go
// License: Apache-2.0
//
// Linux eventfd(2) backing for the wakeup channel. EFD_SEMAPHORE gives
// the one-notification-per-read semantics the executor's pairing
// invariant depends on.

package wakeup

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

func newChannelFDs() (rfd, wfd int, err error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK|unix.EFD_SEMAPHORE)
	if err != nil {
		return 0, 0, err
	}
	return fd, fd, nil
}

func signalFD(fd int) error {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(fd, buf[:])
	if err == unix.EAGAIN {
		// Counter saturated: the receiver is already maximally
		// signalled, the notification cannot be lost.
		return nil
	}
	return err
}

func drainFD(fd int) (bool, error) {
	var buf [8]byte
	_, err := unix.Read(fd, buf[:])
	if err == unix.EAGAIN {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func closeChannelFDs(rfd, wfd int) error {
	// eventfd uses a single descriptor for both halves.
	return unix.Close(rfd)
}
