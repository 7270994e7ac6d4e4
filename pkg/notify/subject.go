package notify

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotComparable is the panic value (wrapped) when an observer whose
// dynamic type cannot be compared for identity is registered.
var ErrNotComparable = errors.New("notify: observer is not comparable")

// Observer receives notifications from a Subject.
type Observer[K comparable, P any] interface {
	Handle(kind K, payload P)
}

// ObserverFunc adapts a function to the Observer interface.
// Function values are not comparable, so register a pointer to an
// ObserverFunc (or use Subject.Subscribe) rather than the value itself.
type ObserverFunc[K comparable, P any] func(kind K, payload P)

// Handle calls f(kind, payload).
func (f ObserverFunc[K, P]) Handle(kind K, payload P) {
	f(kind, payload)
}

// Subject holds an ordered, deduplicated list of observers.
// The zero value is ready to use.
type Subject[K comparable, P any] struct {
	observers []Observer[K, P]
}

// NewSubject creates an empty subject.
func NewSubject[K comparable, P any]() *Subject[K, P] {
	return &Subject[K, P]{}
}

// AddObserver registers obs unless it is already registered.
// Nil observers are ignored.
func (s *Subject[K, P]) AddObserver(obs Observer[K, P]) {
	if obs == nil {
		return
	}
	if t := reflect.TypeOf(obs); !t.Comparable() {
		panic(fmt.Errorf("add observer of type %s: %w", t, ErrNotComparable))
	}
	if s.indexOf(obs) >= 0 {
		return
	}
	s.observers = append(s.observers, obs)
}

// RemoveObserver unregisters obs. Removing an observer that is not
// registered is a no-op.
func (s *Subject[K, P]) RemoveObserver(obs Observer[K, P]) {
	if obs == nil || !reflect.TypeOf(obs).Comparable() {
		return
	}
	i := s.indexOf(obs)
	if i < 0 {
		return
	}
	// Copy rather than shift in place so a pass already iterating the old
	// slice keeps its view.
	s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
}

// Subscribe registers fn and returns a function that unregisters it.
// Each call creates a distinct registration.
func (s *Subject[K, P]) Subscribe(fn func(kind K, payload P)) (cancel func()) {
	obs := &funcObserver[K, P]{fn: fn}
	s.AddObserver(obs)
	return func() { s.RemoveObserver(obs) }
}

// Notify delivers (kind, payload) to every registered observer in
// registration order.
func (s *Subject[K, P]) Notify(kind K, payload P) {
	for _, obs := range s.observers {
		obs.Handle(kind, payload)
	}
}

// Has reports whether obs is registered.
func (s *Subject[K, P]) Has(obs Observer[K, P]) bool {
	if obs == nil || !reflect.TypeOf(obs).Comparable() {
		return false
	}
	return s.indexOf(obs) >= 0
}

// Len returns the number of registered observers.
func (s *Subject[K, P]) Len() int {
	return len(s.observers)
}

// Clear unregisters every observer and releases the list.
func (s *Subject[K, P]) Clear() {
	s.observers = nil
}

func (s *Subject[K, P]) indexOf(obs Observer[K, P]) int {
	for i, o := range s.observers {
		if o == obs {
			return i
		}
	}
	return -1
}

type funcObserver[K comparable, P any] struct {
	fn func(K, P)
}

func (o *funcObserver[K, P]) Handle(kind K, payload P) {
	o.fn(kind, payload)
}
