// File: control/adapter.go
// License: Apache-2.0
//
// Adapter implementing api.Control over the control primitives.

package control

import "github.com/hostloop/hostloop/api"

// Adapter bundles config, metrics, and probes behind api.Control.
type Adapter struct {
	config  *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

// NewAdapter creates a Control implementation with runtime probes
// preregistered.
func NewAdapter() *Adapter {
	a := &Adapter{
		config:  NewConfigStore(),
		metrics: NewMetricsRegistry(),
		debug:   NewDebugProbes(),
	}
	RegisterRuntimeProbes(a.debug)
	return a
}

var _ api.Control = (*Adapter)(nil)

// GetConfig implements api.Control.
func (a *Adapter) GetConfig() map[string]any {
	return a.config.GetSnapshot()
}

// SetConfig implements api.Control.
func (a *Adapter) SetConfig(cfg map[string]any) error {
	a.config.SetConfig(cfg)
	return nil
}

// Stats merges metrics and probe output into one snapshot.
func (a *Adapter) Stats() map[string]any {
	out := a.metrics.GetSnapshot()
	for k, v := range a.debug.DumpState() {
		out[k] = v
	}
	return out
}

// OnReload implements api.Control.
func (a *Adapter) OnReload(fn func()) {
	a.config.OnReload(fn)
}

// RegisterDebugProbe implements api.Control.
func (a *Adapter) RegisterDebugProbe(name string, fn func() any) {
	a.debug.RegisterProbe(name, fn)
}

// Metrics exposes the underlying registry for component wiring.
func (a *Adapter) Metrics() *MetricsRegistry {
	return a.metrics
}
