// File: control/metrics.go
// License: Apache-2.0
//
// Runtime metrics registry. Executor and registry counters are
// published here so the host can observe silent events such as
// named-task cancellations.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds named metric values and lazy gauges.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	gauges  map[string]func() any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
		gauges:  make(map[string]func() any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// SetGauge registers a function evaluated at snapshot time.
func (mr *MetricsRegistry) SetGauge(key string, fn func() any) {
	mr.mu.Lock()
	mr.gauges[key] = fn
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics, gauges evaluated.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics)+len(mr.gauges))
	for k, v := range mr.metrics {
		out[k] = v
	}
	for k, fn := range mr.gauges {
		out[k] = fn()
	}
	return out
}

// Updated returns the time of the last Set.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
