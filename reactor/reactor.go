// File: reactor/reactor.go
// License: Apache-2.0
//
// Platform-neutral readiness reactor interface.

package reactor

// FDEventType is a bitmask of readiness conditions.
type FDEventType uint32

const (
	EventRead FDEventType = 1 << iota
	EventWrite
	EventError
)

// FDCallback handles one readiness edge for a watched descriptor.
type FDCallback func(fd uintptr, events FDEventType)

// Reactor watches file descriptors and dispatches their callbacks from
// Poll.
type Reactor interface {
	// Register adds fd to the watch list for the given events.
	Register(fd uintptr, events FDEventType, cb FDCallback) error

	// Unregister removes fd from the watch list.
	Unregister(fd uintptr) error

	// Poll blocks up to timeoutMs (negative blocks indefinitely),
	// then dispatches callbacks for ready descriptors.
	Poll(timeoutMs int) error

	// Close releases the reactor.
	Close() error
}
