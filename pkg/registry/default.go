package registry

import "sync"

var (
	defaultMu  sync.Mutex
	defaultMap *Map[any]
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Map[any] {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultMap == nil {
		defaultMap = NewMap[any]()
	}
	return defaultMap
}

// Init resets the process-wide registry to an empty table.
func Init() {
	Default().Clear()
}

// Clear empties the process-wide registry. Call it at shutdown.
func Clear() {
	Default().Clear()
}

// As returns a typed view of an untyped registry. Lookup reports false for
// names whose key is not a K.
func As[K comparable](r Registry[any]) Registry[K] {
	return typedView[K]{r: r}
}

type typedView[K comparable] struct {
	r Registry[any]
}

func (v typedView[K]) Store(key K, name string) { v.r.Store(key, name) }

func (v typedView[K]) Remove(key K) { v.r.Remove(key) }

func (v typedView[K]) Lookup(name string) (K, bool) {
	var zero K
	key, ok := v.r.Lookup(name)
	if !ok {
		return zero, false
	}
	k, ok := key.(K)
	if !ok {
		return zero, false
	}
	return k, true
}
