// File: wakeup/doc.go
// License: Apache-2.0

// Package wakeup provides the cross-thread notification primitive that
// links the executor's job queue to the host's readiness mechanism.
//
// A pair consists of a cloneable Sender, usable from any goroutine, and
// a Receiver owned exclusively by the executor's thread. The receiver
// exposes a readable file descriptor suitable for registration with an
// fd-based readiness mechanism such as epoll. Notifications have
// semaphore semantics: each successful Signal is consumed by exactly
// one Drain.
package wakeup
