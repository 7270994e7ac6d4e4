package registry

import (
	"sort"
	"sync"
)

// Registry maps names to keys.
type Registry[K comparable] interface {
	// Store inserts or overwrites the mapping name -> key.
	Store(key K, name string)

	// Remove deletes every mapping whose value is key.
	Remove(key K)

	// Lookup returns the key stored for name.
	Lookup(name string) (K, bool)
}

// Map is a Registry backed by two maps: names to keys and keys to the set
// of names that point at them. It is safe for concurrent use.
type Map[K comparable] struct {
	mu     sync.RWMutex
	byName map[string]K
	byKey  map[K]map[string]struct{}
}

// NewMap creates an empty Map.
func NewMap[K comparable]() *Map[K] {
	return &Map[K]{
		byName: make(map[string]K),
		byKey:  make(map[K]map[string]struct{}),
	}
}

// Store inserts or overwrites the mapping name -> key.
func (m *Map[K]) Store(key K, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.byName[name]; ok {
		m.unlink(prev, name)
	}
	m.byName[name] = key
	names := m.byKey[key]
	if names == nil {
		names = make(map[string]struct{})
		m.byKey[key] = names
	}
	names[name] = struct{}{}
}

// Remove deletes every mapping whose value is key.
func (m *Map[K]) Remove(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.byKey[key] {
		delete(m.byName, name)
	}
	delete(m.byKey, key)
}

// Lookup returns the key stored for name.
func (m *Map[K]) Lookup(name string) (K, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.byName[name]
	return key, ok
}

// Names returns the registered names in sorted order.
func (m *Map[K]) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.byName))
	for name := range m.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (m *Map[K]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byName)
}

// Clear removes every mapping.
func (m *Map[K]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byName = make(map[string]K)
	m.byKey = make(map[K]map[string]struct{})
}

// unlink removes name from key's name set. Caller holds mu.
func (m *Map[K]) unlink(key K, name string) {
	names := m.byKey[key]
	delete(names, name)
	if len(names) == 0 {
		delete(m.byKey, key)
	}
}
