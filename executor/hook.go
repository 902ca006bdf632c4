// File: executor/hook.go
// License: Apache-2.0
//
// Host event hook: ties the executor's wakeup receiver into the host's
// readiness mechanism.

package executor

import "github.com/hostloop/hostloop/api"

// Hook is a registered watch on the executor's wakeup descriptor. The
// host invokes the executor's step function on every readiness edge;
// per-edge work is capped at one job to keep the host loop responsive
// under backlog.
type Hook struct {
	cancel func() error
}

// AttachHook registers the executor's wakeup descriptor with the
// host's readiness mechanism.
func AttachHook(ex *Executor, reg api.ReadinessRegistrar) (*Hook, error) {
	cancel, err := reg.WatchReadable(ex.WakeupFd(), ex.Step)
	if err != nil {
		return nil, err
	}
	return &Hook{cancel: cancel}, nil
}

// Detach removes the watch. Idempotent.
func (h *Hook) Detach() error {
	if h.cancel == nil {
		return nil
	}
	cancel := h.cancel
	h.cancel = nil
	return cancel()
}
