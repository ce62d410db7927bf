package metadata

import (
	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
)

// Registry holds every registered provider adapter. Registration happens
// once during process startup; after that the registry is read-only and
// all lookups are pure. Registration order defines fallback priority
// within a title type.
type Registry struct {
	providers []Provider
	byID      map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Provider),
	}
}

// Register adds a provider. Later registrations of the same id are
// ignored; the first registration wins, matching fallback priority.
func (r *Registry) Register(p Provider) {
	id := p.Manifest().ID
	if _, exists := r.byID[id]; exists {
		return
	}
	r.byID[id] = p
	r.providers = append(r.providers, p)
}

// Get returns the provider with the given id, or nil.
func (r *Registry) Get(id string) Provider {
	return r.byID[id]
}

// All returns every provider in registration order.
func (r *Registry) All() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Manifests lists every provider's manifest in registration order.
func (r *Registry) Manifests() []Manifest {
	out := make([]Manifest, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p.Manifest())
	}
	return out
}

// ForTitleType returns the ordered fallback chain for a title type.
func (r *Registry) ForTitleType(t domain.TitleType) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Manifest().ServesType(t) {
			out = append(out, p)
		}
	}
	return out
}

// WithCapability returns every provider whose capability flag is set, in
// registration order. Callers dispatch on flags, never on adapter ids.
func (r *Registry) WithCapability(flag Capability) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Capabilities().Has(flag) {
			out = append(out, p)
		}
	}
	return out
}

// WithCapabilityForType combines capability and title-type filtering,
// preserving registration order.
func (r *Registry) WithCapabilityForType(flag Capability, t domain.TitleType) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Capabilities().Has(flag) && p.Manifest().ServesType(t) {
			out = append(out, p)
		}
	}
	return out
}
