//go:build !unix

// File: wakeup/fd_stub.go
// License: Apache-2.0
//
// Stub backing for platforms without a supported notification
// descriptor.

package wakeup

import "github.com/hostloop/hostloop/api"

func newChannelFDs() (rfd, wfd int, err error) {
	return 0, 0, api.ErrNotSupported
}

func signalFD(fd int) error { return api.ErrNotSupported }

func drainFD(fd int) (bool, error) { return false, api.ErrNotSupported }

func closeChannelFDs(rfd, wfd int) error { return nil }
