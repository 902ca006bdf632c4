// File: resource/handle.go
// License: Apache-2.0
//
// Handle and View: how tasks refer to host objects across suspension
// points.

package resource

import "github.com/hostloop/hostloop/api"

// Handle is a cloneable reference to a host-owned object that may be
// destroyed independently of the tasks holding it. Handles are plain
// values: copies alias the same arena entry.
type Handle struct {
	name string
	id   ID
	reg  *Registry
}

// Name returns the stable name the handle was registered under. The
// name stays comparable after the object is gone, which is what named
// tasks rely on.
func (h Handle) Name() string {
	return h.name
}

// Upgrade returns a short-lived view of the live object. It fails with
// api.ErrResourceGone once the entry is dead, generation-mismatched,
// or closing. The view is bound to the current step and must not be
// retained across a suspension point.
func (h Handle) Upgrade() (View, error) {
	if h.reg == nil {
		return View{}, api.ErrResourceGone
	}
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	e, ok := h.reg.slot(h.id)
	if !ok || e.closing {
		return View{}, api.ErrResourceGone
	}
	return View{name: h.name, value: e.value}, nil
}

// Close requests destruction of the underlying object. Idempotent: the
// first call marks the entry closing before the host's asynchronous
// destroy completes, so a second Close cannot issue a second destroy
// request while the first is in flight. Closing an already-gone
// resource is a no-op.
func (h Handle) Close() error {
	if h.reg == nil {
		return nil
	}
	h.reg.mu.Lock()
	e, ok := h.reg.slot(h.id)
	if !ok || e.closing {
		h.reg.mu.Unlock()
		return nil
	}
	e.closing = true
	destroyer := h.reg.destroyer
	h.reg.mu.Unlock()

	if destroyer != nil {
		return destroyer.RequestDestroy(h.name)
	}
	// No host destroyer wired: invalidate through the same callback
	// path so single-invalidation still holds.
	h.reg.InvokeDestroyed(h.name)
	return nil
}

// View is a non-owning borrow of a live object, valid only within the
// step that obtained it.
type View struct {
	name  string
	value any
}

// Name returns the resource name.
func (v View) Name() string { return v.name }

// Value returns the borrowed object.
func (v View) Value() any { return v.value }
