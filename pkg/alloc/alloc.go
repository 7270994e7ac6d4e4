package alloc

import "sync/atomic"

// Allocator constructs and destructs values of type T.
type Allocator[T any] interface {
	// Construct returns a freshly zeroed *T.
	Construct() *T

	// Destruct finalizes *ref and sets *ref to nil.
	// It is a no-op when ref or *ref is nil.
	Destruct(ref **T)
}

// Heap allocates from the Go heap.
type Heap[T any] struct{}

// Construct returns new(T).
func (Heap[T]) Construct() *T {
	return new(T)
}

// Destruct zeroes the value and clears the reference.
func (Heap[T]) Destruct(ref **T) {
	if ref == nil || *ref == nil {
		return
	}
	var zero T
	**ref = zero
	*ref = nil
}

// Tracking wraps another allocator and counts live values.
type Tracking[T any] struct {
	next       Allocator[T]
	live       atomic.Int64
	constructs atomic.Int64
	destructs  atomic.Int64
}

// NewTracking creates a tracking allocator over next, or over Heap when
// next is nil.
func NewTracking[T any](next Allocator[T]) *Tracking[T] {
	if next == nil {
		next = Heap[T]{}
	}
	return &Tracking[T]{next: next}
}

// Construct allocates through the wrapped allocator.
func (a *Tracking[T]) Construct() *T {
	v := a.next.Construct()
	a.live.Add(1)
	a.constructs.Add(1)
	return v
}

// Destruct frees through the wrapped allocator.
func (a *Tracking[T]) Destruct(ref **T) {
	if ref == nil || *ref == nil {
		return
	}
	a.next.Destruct(ref)
	a.live.Add(-1)
	a.destructs.Add(1)
}

// Live returns the number of constructed values not yet destructed.
func (a *Tracking[T]) Live() int64 {
	return a.live.Load()
}

// Stats returns the total construct and destruct counts.
func (a *Tracking[T]) Stats() (constructs, destructs int64) {
	return a.constructs.Load(), a.destructs.Load()
}
