package commands

import (
	"strings"
	"sync"
)

// Registry holds the command descriptors, split into a public and an
// owner-restricted pool. Names are case-insensitive and unique across both
// pools; registering a duplicate silently overwrites (last registration
// wins).
type Registry struct {
	mu         sync.RWMutex
	public     map[string]Descriptor
	restricted map[string]Descriptor
	order      []string // registration order, for deterministic AllNames
}

// NewRegistry creates a new empty command registry
func NewRegistry() *Registry {
	return &Registry{
		public:     make(map[string]Descriptor),
		restricted: make(map[string]Descriptor),
	}
}

// Register stores a descriptor in the pool selected by its Restricted flag.
// Any existing descriptor with the same name, in either pool, is replaced.
// Name format is not validated beyond being non-empty.
func (r *Registry) Register(d Descriptor) {
	name := strings.ToLower(d.Name)
	if name == "" {
		return
	}
	d.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	_, inPublic := r.public[name]
	_, inRestricted := r.restricted[name]
	if !inPublic && !inRestricted {
		r.order = append(r.order, name)
	}
	delete(r.public, name)
	delete(r.restricted, name)

	if d.Restricted {
		r.restricted[name] = d
	} else {
		r.public[name] = d
	}
}

// RegisterAll registers a sequence of descriptors
func (r *Registry) RegisterAll(descriptors []Descriptor) {
	for _, d := range descriptors {
		r.Register(d)
	}
}

// Resolve looks up a command by name, case-insensitively. The restricted
// pool is consulted first, falling through to the public pool.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	key := strings.ToLower(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.restricted[key]; ok {
		return d, true
	}
	if d, ok := r.public[key]; ok {
		return d, true
	}
	return Descriptor{}, false
}

// Has checks if a command exists in either pool
func (r *Registry) Has(name string) bool {
	_, ok := r.Resolve(name)
	return ok
}

// AllNames returns every registered name from both pools, in registration
// order. The order is deterministic so suggestion tie-breaks are stable.
func (r *Registry) AllNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// PublicDescriptors returns the public-pool descriptors in registration order
func (r *Registry) PublicDescriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Descriptor
	for _, name := range r.order {
		if d, ok := r.public[name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// RestrictedDescriptors returns the restricted-pool descriptors in registration order
func (r *Registry) RestrictedDescriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Descriptor
	for _, name := range r.order {
		if d, ok := r.restricted[name]; ok {
			out = append(out, d)
		}
	}
	return out
}
