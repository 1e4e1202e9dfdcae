package mods

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

type providerKey struct {
	platform Platform
	modName  ModName
}

// Registry holds the providers and the mods registered against them.
type Registry struct {
	mu        sync.RWMutex
	providers map[providerKey]Provider
	order     []providerKey
	mods      map[providerKey][]Entry
	dangerous map[Platform][]Entry
}

// NewRegistry creates an empty registry. Call RegisterBaseProviders to add
// the built-in providers.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[providerKey]Provider),
		mods:      make(map[providerKey][]Entry),
		dangerous: make(map[Platform][]Entry),
	}
}

// RegisterProvider adds or replaces the provider for a pair. Files are
// processed in first-registration order.
func (r *Registry) RegisterProvider(platform Platform, modName ModName, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := providerKey{platform, modName}
	if _, ok := r.providers[key]; !ok {
		r.order = append(r.order, key)
	}
	r.providers[key] = provider
}

// Register appends entry to the chain of its pair. Pairs without a provider
// are rejected with ErrUnknownMod. Dangerous entries need no provider.
func (r *Registry) Register(entry Entry) error {
	if entry.Mod == nil {
		return fmt.Errorf("register %s: nil mod", entry.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Dangerous() {
		r.dangerous[entry.Platform] = append(r.dangerous[entry.Platform], entry)
		return nil
	}

	key := providerKey{entry.Platform, entry.ModName}
	if _, ok := r.providers[key]; !ok {
		return fmt.Errorf("%w: %s.%s (%s)", ErrUnknownMod, entry.Platform, entry.ModName, entry.Name)
	}
	r.mods[key] = append(r.mods[key], entry)
	return nil
}

// Provider returns the provider for a pair.
func (r *Registry) Provider(platform Platform, modName ModName) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[providerKey{platform, modName}]
	return p, ok
}

// Dangerous returns the dangerous mods of platform in registration order.
func (r *Registry) Dangerous(platform Platform) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.dangerous[platform])
}

// Mods returns the chain for a pair in registration order.
func (r *Registry) Mods(platform Platform, modName ModName) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.mods[providerKey{platform, modName}])
}

// ModNames returns the mod names of platform that have at least one mod,
// in provider registration order.
func (r *Registry) ModNames(platform Platform) []ModName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []ModName
	for _, key := range r.order {
		if key.platform == platform && len(r.mods[key]) > 0 {
			names = append(names, key.modName)
		}
	}
	return names
}

// Entries returns every registered mod sorted by platform, then pipeline
// order, then registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank := make(map[providerKey]int, len(r.order))
	for i, key := range r.order {
		rank[key] = i + 1
	}

	var result []Entry
	for _, entries := range r.dangerous {
		result = append(result, entries...)
	}
	for _, key := range r.order {
		result = append(result, r.mods[key]...)
	}

	slices.SortStableFunc(result, func(a, b Entry) int {
		if c := cmp.Compare(a.Platform, b.Platform); c != 0 {
			return c
		}
		return cmp.Compare(rank[providerKey{a.Platform, a.ModName}], rank[providerKey{b.Platform, b.ModName}])
	})
	return result
}
