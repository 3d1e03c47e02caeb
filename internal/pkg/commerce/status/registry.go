package status

import (
	"fmt"
	"strings"
)

// UnknownStatusError is returned when a slug does not resolve in the
// registry. Transitions to or from unknown slugs are aborted.
type UnknownStatusError struct {
	Slug string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown order status slug: %q", e.Slug)
}

// Registry maps status slugs to their descriptors. It is built once at
// startup and passed to the transition and dispatch operations; statuses are
// never registered afterwards.
type Registry struct {
	statuses map[string]*Status
	order    []string
}

// NewRegistry creates an empty status registry.
func NewRegistry() *Registry {
	return &Registry{statuses: make(map[string]*Status)}
}

// Register adds a status to the registry. Slugs are globally unique;
// re-registering one is a programming error.
func (r *Registry) Register(s *Status) error {
	slug := strings.ToLower(strings.TrimSpace(s.Slug))
	if slug == "" {
		return fmt.Errorf("cannot register status with empty slug")
	}
	if _, exists := r.statuses[slug]; exists {
		return fmt.Errorf("status slug already registered: %q", slug)
	}
	r.statuses[slug] = s
	r.order = append(r.order, slug)
	return nil
}

// Get resolves a slug to its status descriptor.
func (r *Registry) Get(slug string) (*Status, error) {
	s, ok := r.statuses[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, &UnknownStatusError{Slug: slug}
	}
	return s, nil
}

// Has reports whether a slug is registered.
func (r *Registry) Has(slug string) bool {
	_, ok := r.statuses[strings.ToLower(strings.TrimSpace(slug))]
	return ok
}

// All returns every registered status in registration order.
func (r *Registry) All() []*Status {
	out := make([]*Status, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.statuses[slug])
	}
	return out
}
