// File: api/host.go
// Package api defines the services an embedding host provides.
// License: Apache-2.0

package api

// ReadinessRegistrar is the host's readiness notification mechanism.
// The registered callback is invoked only from the host's single event
// loop thread, once per readiness edge, and may re-enter the library
// (including spawning further work).
type ReadinessRegistrar interface {
	// WatchReadable registers fd for read-readiness and returns a
	// cancel function that removes the watch.
	WatchReadable(fd uintptr, cb func()) (cancel func() error, err error)
}

// DestroyRequester asks the host to destroy one of its objects. The
// request is asynchronous: the host later fires the single destruction
// callback for the object, whatever triggered the destroy.
type DestroyRequester interface {
	RequestDestroy(name string) error
}

// ErrorSink is the host's error-reporting channel. Diagnostics that
// must surface inside the host (such as contained task panics) are
// routed through it.
type ErrorSink interface {
	ReportError(msg string)
}

// Resolver resolves a stable name against the currently live resource
// set. Named tasks re-resolve through it immediately before each step.
type Resolver interface {
	Lookup(name string) (any, bool)
}

// Host aggregates the host-side collaborators a plugin instance
// consumes at its boundary.
type Host interface {
	ReadinessRegistrar
	DestroyRequester
	ErrorSink
}
