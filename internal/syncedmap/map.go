// Package syncedmap provides a generic hashmap that is safe to use concurrently.
package syncedmap

import (
	"maps"
	"sync"
)

// SyncedMap represents a generic hashmap that is safe to use concurrently.
type SyncedMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// New returns a new SyncedMap.
func New[K comparable, V any]() *SyncedMap[K, V] {
	return &SyncedMap[K, V]{m: make(map[K]V)}
}

// Load returns the value stored in the map for a key.
// The ok result indicates whether a value was found.
func (sm *SyncedMap[K, V]) Load(key K) (V, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	v, ok := sm.m[key]
	return v, ok
}

// Store sets the value for a key.
func (sm *SyncedMap[K, V]) Store(key K, value V) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.m[key] = value
}

// LoadOrStore returns the existing value for the key if present.
// Otherwise it stores and returns the given value.
// The loaded result is true if the value was loaded, false if stored.
func (sm *SyncedMap[K, V]) LoadOrStore(key K, value V) (V, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if v, ok := sm.m[key]; ok {
		return v, true
	}
	sm.m[key] = value
	return value, false
}

// Delete removes a key from the map.
func (sm *SyncedMap[K, V]) Delete(key K) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.m, key)
}

// Len returns the number of entries.
func (sm *SyncedMap[K, V]) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.m)
}

// Clone returns a snapshot of the map.
func (sm *SyncedMap[K, V]) Clone() map[K]V {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return maps.Clone(sm.m)
}
