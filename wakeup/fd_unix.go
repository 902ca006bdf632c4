//go:build unix && !linux

// File: wakeup/fd_unix.go
// License: Apache-2.0
//
// Pipe(2) backing for the wakeup channel on unix systems without
// eventfd. One byte per notification keeps one-read-per-signal
// semantics.

package wakeup

import "golang.org/x/sys/unix"

func newChannelFDs() (rfd, wfd int, err error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return 0, 0, err
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return 0, 0, err
		}
	}
	return p[0], p[1], nil
}

func signalFD(fd int) error {
	buf := [1]byte{1}
	_, err := unix.Write(fd, buf[:])
	if err == unix.EAGAIN {
		// Pipe buffer full: tens of thousands of notifications are
		// already pending, the receiver cannot miss this one.
		return nil
	}
	return err
}

func drainFD(fd int) (bool, error) {
	var buf [1]byte
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
	err := unix.Close(rfd)
	if cerr := unix.Close(wfd); err == nil {
		err = cerr
	}
	return err
}
