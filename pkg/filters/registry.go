package filters

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrFilterNotFound is returned when a filter type is not registered,
// e.g. when an optional filter was not compiled into the runtime.
var ErrFilterNotFound = errors.New("filter not found")

// Registry stores the filter types available to graph construction.
type Registry struct {
	filters map[string]*Descriptor
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string]*Descriptor),
	}
}

// Default returns a fresh registry populated with the builtin filter
// set. Callers may deregister entries to model stripped-down runtimes.
func Default() *Registry {
	r := NewRegistry()
	for _, d := range builtins {
		r.Register(d)
	}
	return r
}

// Register adds a filter type, replacing any previous entry with the
// same name.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[d.Name] = d
}

// Deregister removes a filter type.
func (r *Registry) Deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, name)
}

// Get retrieves a filter type by name.
func (r *Registry) Get(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrFilterNotFound, name)
	}
	return d, nil
}

// List returns all registered filter types sorted by name.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.filters))
	for _, d := range r.filters {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
