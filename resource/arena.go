// File: resource/arena.go
// License: Apache-2.0
//
// Registry: slot arena with generation counters, free-list index
// reuse, and a name index for live-set lookup.

package resource

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hostloop/hostloop/api"
)

// ID identifies an arena slot. The generation counter guards against
// index reuse: an ID minted for a destroyed entry never matches the
// slot's next occupant.
type ID struct {
	index uint32
	gen   uint32
}

type entry struct {
	value      any
	name       string
	gen        uint32
	live       bool
	closing    bool
	destroying bool
	preDestroy func(value any)
	cleanups   []func()
}

// Registry is the arena of live host objects. Entries are written only
// on the owning thread; the mutex makes lookups from Upgrade and
// named-task resolution cheap and torn-state-free against a concurrent
// Close on the same handle.
type Registry struct {
	mu        sync.Mutex
	entries   []entry
	free      []uint32
	byName    map[string]ID
	destroyer api.DestroyRequester
	log       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDestroyer sets the host collaborator that receives destroy
// requests issued by Handle.Close. Without one, Close invalidates the
// entry directly through the same destruction callback path.
func WithDestroyer(d api.DestroyRequester) Option {
	return func(r *Registry) { r.destroyer = d }
}

// WithLogger sets the registry logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty arena.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make([]entry, 0, 16),
		byName:  make(map[string]ID),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleOption configures a registered resource.
type HandleOption func(*entry)

// WithPreDestroy registers a handler invoked by the destruction
// callback while the value is still readable.
func WithPreDestroy(fn func(value any)) HandleOption {
	return func(e *entry) { e.preDestroy = fn }
}

// WithCleanup registers auxiliary state released after the entry has
// been invalidated.
func WithCleanup(fn func()) HandleOption {
	return func(e *entry) { e.cleanups = append(e.cleanups, fn) }
}

// Register tracks a newly created host object under its stable name
// and returns a handle to it. Names are unique among live entries.
func (r *Registry) Register(name string, value any, opts ...HandleOption) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return Handle{}, api.ErrAlreadyExists
	}

	e := entry{value: value, name: name, live: true}
	for _, opt := range opts {
		opt(&e)
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		e.gen = r.entries[idx].gen
		r.entries[idx] = e
	} else {
		idx = uint32(len(r.entries))
		r.entries = append(r.entries, e)
	}

	id := ID{index: idx, gen: e.gen}
	r.byName[name] = id
	r.log.Debug("resource registered", zap.String("name", name))
	return Handle{name: name, id: id, reg: r}, nil
}

// Lookup implements api.Resolver over the live set. Entries that are
// closing still resolve: the object exists until the destruction
// callback fires.
func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.entries[id.index].value, true
}

// Handle re-derives a handle for a live resource by name.
func (r *Registry) Handle(name string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[name]
	if !ok {
		return Handle{}, false
	}
	return Handle{name: name, id: id, reg: r}, true
}

// Len returns the number of live resources.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byName)
}

// InvokeDestroyed is the host-invoked destruction callback. It fires
// exactly once per object: the first call runs the pre-destroy handler
// with the value still readable, then nulls the slot (bumping its
// generation, so outstanding IDs stop matching), then releases
// auxiliary state. Later calls for the same name report false.
func (r *Registry) InvokeDestroyed(name string) bool {
	r.mu.Lock()
	id, ok := r.byName[name]
	if !ok {
		r.mu.Unlock()
		return false
	}
	e := &r.entries[id.index]
	if e.destroying {
		// Re-entry from a pre-destroy handler for the same name.
		r.mu.Unlock()
		return false
	}
	e.destroying = true
	// Upgrade must already fail while the handler below runs.
	e.closing = true
	value := e.value
	pre := e.preDestroy
	r.mu.Unlock()

	if pre != nil {
		pre(value)
	}

	r.mu.Lock()
	e = &r.entries[id.index]
	cleanups := e.cleanups
	e.live = false
	e.closing = false
	e.destroying = false
	e.value = nil
	e.preDestroy = nil
	e.cleanups = nil
	e.gen++
	delete(r.byName, name)
	r.free = append(r.free, id.index)
	r.mu.Unlock()

	for _, fn := range cleanups {
		fn()
	}
	r.log.Debug("resource destroyed", zap.String("name", name))
	return true
}

// Close invalidates every live resource through the destruction
// callback path. Used at plugin teardown.
func (r *Registry) Close() {
	r.mu.Lock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.Unlock()
	for _, name := range names {
		r.InvokeDestroyed(name)
	}
}

// slot returns the entry for id when the id is still valid.
func (r *Registry) slot(id ID) (*entry, bool) {
	if int(id.index) >= len(r.entries) {
		return nil, false
	}
	e := &r.entries[id.index]
	if !e.live || e.gen != id.gen {
		return nil, false
	}
	return e, true
}
