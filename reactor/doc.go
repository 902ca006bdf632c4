// File: reactor/doc.go
// License: Apache-2.0

// Package reactor provides the reference host: a single-threaded
// fd-readiness loop with the same contract a real embedding host
// offers. The library itself never requires it; the example and the
// integration tests embed into it.
package reactor
