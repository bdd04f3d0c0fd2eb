package lh

import "sync"

// CollectionCache keeps the last fetched list per collection key and a
// staleness flag. Reconciliation only flips staleness; refetching is the
// caller's business.
type CollectionCache struct {
	mu      sync.Mutex
	entries map[string]any
	stale   map[string]bool
}

// NewCollectionCache returns an empty cache.
func NewCollectionCache() *CollectionCache {
	return &CollectionCache{
		entries: make(map[string]any),
		stale:   make(map[string]bool),
	}
}

// Put stores a fresh value for the key.
func (cc *CollectionCache) Put(key string, v any) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.entries[key] = v
	cc.stale[key] = false
}

// Get returns the cached value unless it is missing or stale.
func (cc *CollectionCache) Get(key string) (any, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	v, ok := cc.entries[key]
	if !ok || cc.stale[key] {
		return nil, false
	}
	return v, true
}

// Invalidate marks the keys stale. Values stay readable via Stale-aware
// callers until replaced.
func (cc *CollectionCache) Invalidate(keys ...string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, k := range keys {
		cc.stale[k] = true
	}
}

// Stale reports whether the key needs a refetch.
func (cc *CollectionCache) Stale(key string) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, ok := cc.entries[key]
	return !ok || cc.stale[key]
}
