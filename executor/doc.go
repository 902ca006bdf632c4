// File: executor/doc.go
// License: Apache-2.0

// Package executor implements the cooperative task executor that feeds
// work into a host-owned, single-threaded event loop.
//
// All task bodies run on the owning thread. Work arrives through three
// paths: Spawn (owning thread, one synchronous initial step),
// SpawnNamed (owning thread, resolution-guarded), and
// SpawnFromOtherThread (any goroutine, fire-and-forget). Pending steps
// wait in a FIFO job queue; every push is paired with exactly one
// wakeup-channel signal and each readiness edge services exactly one
// job, so backlog is resolved by repeated edges instead of batch
// draining that would stall the host's own loop.
package executor
