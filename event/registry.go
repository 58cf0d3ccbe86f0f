package event

import (
	"github.com/hollowmere/thornvale/script"
)

// key binds registrations to one (emitter, event name) pair
type key struct {
	emitter Emitter
	name    string
}

// Registry holds per-(emitter, event) ordered handler lists. It is owned
// and mutated by the update thread only; no locking by contract.
//
// Registrations live until an explicit Unregister, TeardownEmitter on the
// emitter's destruction path, or interpreter teardown. Calling
// TeardownEmitter from the destruction path is a hard precondition:
// firing against a destroyed emitter is a programming error this package
// does not defend against
type Registry struct {
	handlers map[key][]script.Callable
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[key][]script.Callable)}
}

// Register appends fn for (emitter, name). Registering a callable already
// present for the key is a no-op: the handler keeps its original position
// and runs once per fire. Never fails
func (r *Registry) Register(emitter Emitter, name string, fn script.Callable) {
	k := key{emitter, name}
	for _, existing := range r.handlers[k] {
		if existing.Equals(fn) {
			fn.Release()
			return
		}
	}
	r.handlers[k] = append(r.handlers[k], fn)
}

// Unregister removes the first entry matching fn and reports whether one
// was found. Absent handlers are a no-op, not an error: scripts may
// defensively unregister. Takes effect for subsequent fires only; an
// in-flight dispatch keeps its snapshot
func (r *Registry) Unregister(emitter Emitter, name string, fn script.Callable) bool {
	k := key{emitter, name}
	list := r.handlers[k]
	for i, existing := range list {
		if existing.Equals(fn) {
			existing.Release()
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(r.handlers, k)
			} else {
				r.handlers[k] = list
			}
			return true
		}
	}
	return false
}

// Has reports whether any handler is registered for (emitter, name)
func (r *Registry) Has(emitter Emitter, name string) bool {
	return len(r.handlers[key{emitter, name}]) > 0
}

// HandlersFor returns the handlers for (emitter, name) in registration
// order. The slice is a snapshot: registry mutation from inside a handler
// never corrupts an iteration over it
func (r *Registry) HandlersFor(emitter Emitter, name string) []script.Callable {
	list := r.handlers[key{emitter, name}]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]script.Callable, len(list))
	copy(snapshot, list)
	return snapshot
}

// snapshot returns independent clones of the handlers for (emitter, name).
// Unregistering releases the registry's own slot, so a dispatch in flight
// iterates clones it owns and releases afterwards. A clone that cannot be
// made (interpreter closing) falls back to the shared callable; the call
// through it reports the unavailable interpreter
func (r *Registry) snapshot(emitter Emitter, name string) []script.Callable {
	list := r.handlers[key{emitter, name}]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]script.Callable, 0, len(list))
	for _, fn := range list {
		clone, err := fn.Clone()
		if err != nil {
			snapshot = append(snapshot, fn)
			continue
		}
		snapshot = append(snapshot, clone)
	}
	return snapshot
}

// TeardownEmitter releases every registration keyed to emitter. Must be
// called by the emitter's destruction path
func (r *Registry) TeardownEmitter(emitter Emitter) {
	for k, list := range r.handlers {
		if k.emitter != emitter {
			continue
		}
		for _, fn := range list {
			fn.Release()
		}
		delete(r.handlers, k)
	}
}
