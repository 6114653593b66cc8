package tools

import "sort"

// Registry is the read-only mapping from tool name to descriptor, built
// once at startup. Lookups and listings are safe for concurrent use.
type Registry struct {
	byName map[string]*Descriptor
	names  []string
}

// NewRegistry builds a registry from compiled descriptors. Names must be
// unique; the loader already guarantees this for a single document.
func NewRegistry(descriptors []*Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, ok := r.byName[d.Name]; ok {
			return nil, &DuplicateDescriptorError{Name: d.Name}
		}
		r.byName[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// List returns all descriptors sorted by name.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.byName)
}
