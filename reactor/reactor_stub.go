//go:build !linux

// File: reactor/reactor_stub.go
// License: Apache-2.0
//
// Stub reactor for platforms without an epoll implementation.

package reactor

import "github.com/hostloop/hostloop/api"

// New reports the reference reactor as unsupported on this platform.
// Embedders supply their own api.ReadinessRegistrar here.
func New() (Reactor, error) {
	return nil, api.ErrNotSupported
}
