// File: control/doc.go
// License: Apache-2.0

// Package control is the observability and configuration layer of a
// plugin instance: snapshot-based dynamic config with reload
// listeners, a runtime metrics registry, debug probes, and zap logger
// construction including a core that routes diagnostics into the
// host's own error-reporting channel.
package control
