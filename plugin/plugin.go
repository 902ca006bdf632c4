// File: plugin/plugin.go
// License: Apache-2.0
//
// Plugin facade aggregating all components of one embedded instance.

package plugin

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hostloop/hostloop/api"
	"github.com/hostloop/hostloop/control"
	"github.com/hostloop/hostloop/executor"
	"github.com/hostloop/hostloop/resource"
)

// Config holds parameters immutable per run.
type Config struct {
	EnableMetrics bool        // publish executor/registry counters through Control
	EnableDebug   bool        // route debug-level entries to the host as well
	Logger        *zap.Logger // optional override for the host-routed logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		EnableMetrics: true,
		EnableDebug:   false,
	}
}

// Plugin aggregates the components of one embedded instance.
type Plugin struct {
	host      api.Host
	cfg       *Config
	log       *zap.Logger
	ex        *executor.Executor
	resources *resource.Registry
	control   *control.Adapter
	hook      *executor.Hook

	mu      sync.Mutex
	started bool
}

// New constructs a Plugin against the given host. Nothing touches the
// host's readiness mechanism until Start.
func New(cfg *Config, host api.Host) (*Plugin, error) {
	if host == nil {
		return nil, api.ErrInvalidArgument
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		lvl := zapcore.LevelEnabler(zapcore.ErrorLevel)
		if cfg.EnableDebug {
			lvl = zapcore.DebugLevel
		}
		logger = control.NewHostLogger(host, lvl)
	}

	resources := resource.NewRegistry(
		resource.WithDestroyer(host),
		resource.WithLogger(logger),
	)
	ex, err := executor.New(
		executor.WithResolver(resources),
		executor.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	ctrl := control.NewAdapter()
	if cfg.EnableMetrics {
		ctrl.Metrics().SetGauge("executor", func() any { return ex.Stats() })
		ctrl.Metrics().SetGauge("resources_live", func() any {
			return resources.Len()
		})
	}
	_ = ctrl.SetConfig(map[string]any{
		"metrics.enabled": cfg.EnableMetrics,
		"debug.enabled":   cfg.EnableDebug,
	})

	return &Plugin{
		host:      host,
		cfg:       cfg,
		log:       logger,
		ex:        ex,
		resources: resources,
		control:   ctrl,
	}, nil
}

// Start registers the wakeup descriptor with the host's readiness
// mechanism. Subsequent calls have no effect.
func (p *Plugin) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	hook, err := executor.AttachHook(p.ex, p.host)
	if err != nil {
		return err
	}
	p.hook = hook
	p.started = true
	return nil
}

// Stop is the teardown half of the init/teardown pair: it detaches the
// host hook, closes the executor's wakeup channel, and invalidates
// every live resource through the destruction callback path. Stopping
// a non-started plugin still releases the executor and resources.
func (p *Plugin) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var err error
	if p.hook != nil {
		err = p.hook.Detach()
		p.hook = nil
	}
	if cerr := p.ex.Close(); err == nil {
		err = cerr
	}
	p.resources.Close()
	p.started = false
	return err
}

// Executor returns the instance executor.
func (p *Plugin) Executor() *executor.Executor {
	return p.ex
}

// Resources returns the instance resource registry.
func (p *Plugin) Resources() *resource.Registry {
	return p.resources
}

// Control returns the dynamic config and metrics interface.
func (p *Plugin) Control() api.Control {
	return p.control
}

// Metrics returns the instance metrics registry, for hosts that want
// to wire their own counters next to the built-in ones.
func (p *Plugin) Metrics() *control.MetricsRegistry {
	return p.control.Metrics()
}

// Logger returns the instance logger.
func (p *Plugin) Logger() *zap.Logger {
	return p.log
}
