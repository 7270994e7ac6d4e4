// Package notify provides a generic subject/observer mechanism.
//
// A [Subject] is parameterized by a notification-kind type (typically a small
// integer enum) and a payload type. Observers implement the single-method
// [Observer] interface and are called synchronously, in registration order,
// on the goroutine that calls [Subject.Notify].
//
// # Usage
//
//	type Kind int
//
//	const (
//	    KindOpened Kind = iota
//	    KindClosed
//	)
//
//	var s notify.Subject[Kind, *Conn]
//	s.AddObserver(myObserver)
//	s.Notify(KindOpened, conn)
//
// Plain functions can be attached with [Subject.Subscribe], which returns a
// function that detaches them again:
//
//	cancel := s.Subscribe(func(k Kind, c *Conn) { ... })
//	defer cancel()
//
// # Identity
//
// Observers are deduplicated by identity: two registrations of the same
// pointer (or the same comparable value) produce a single delivery per
// Notify call. Registering a value whose dynamic type is not comparable
// panics with [ErrNotComparable].
//
// # Re-entrancy
//
// A Subject is not safe for concurrent use. Adding or removing observers
// from inside a handler while Notify is running is undefined behavior; the
// current implementation finishes the pass over the observer list that was
// registered when Notify started.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package notify
