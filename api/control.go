// File: api/control.go
// Package api defines the Control interface.
// License: Apache-2.0

package api

// Control manages dynamic configuration and runtime metrics for a
// plugin instance.
type Control interface {
	// GetConfig returns a snapshot of the dynamic configuration.
	GetConfig() map[string]any

	// SetConfig merges new configuration values and triggers reload
	// listeners.
	SetConfig(cfg map[string]any) error

	// Stats returns a snapshot of runtime metrics and debug probes.
	Stats() map[string]any

	// OnReload registers a listener invoked after configuration
	// changes.
	OnReload(fn func())

	// RegisterDebugProbe inserts a named inspection hook whose output
	// is merged into Stats.
	RegisterDebugProbe(name string, fn func() any)
}
