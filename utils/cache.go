package utils

import "sync"

// Cache scopes the frontend keys its views on. Checkout bumps most of them.
const (
	CacheScopeCheckout   = "checkout"
	CacheScopeInventory  = "inventory"
	CacheScopeDashboard  = "dashboard"
	CacheScopeProperties = "properties"
	CacheScopeBookings   = "bookings"
	CacheScopeGuests     = "guests"
)

// CacheRegistry tracks a version counter per scope. Clients compare versions
// and re-fetch any view whose scope moved since their last load.
type CacheRegistry struct {
	mu       sync.RWMutex
	versions map[string]uint64
}

func NewCacheRegistry() *CacheRegistry {
	return &CacheRegistry{versions: make(map[string]uint64)}
}

func (r *CacheRegistry) Invalidate(scopes ...string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, scope := range scopes {
		r.versions[scope]++
	}
}

func (r *CacheRegistry) Version(scope string) uint64 {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[scope]
}

// Snapshot copies all scope versions for the versions endpoint.
func (r *CacheRegistry) Snapshot() map[string]uint64 {
	if r == nil {
		return map[string]uint64{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]uint64, len(r.versions))
	for k, v := range r.versions {
		out[k] = v
	}
	return out
}
