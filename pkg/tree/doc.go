// Package tree implements an ownership tree of components with lifecycle
// notifications.
//
// Every [Component] is created through a [Tree] and is exclusively owned by
// the component passed to [Tree.Create] (or is a root when the owner is
// nil). Owners broadcast lifecycle notifications through their subject so
// that code holding plain pointers to components can drop them before the
// components are invalidated.
//
// # Usage
//
//	t := tree.New(tree.WithLogger(logger))
//
//	root := t.Create(nil)
//	t.SetName(root, "root")
//
//	w1 := t.Create(root)
//	t.SetName(w1, "widget") // "widget"
//	w2 := t.Create(root)
//	t.SetName(w2, "widget") // "widget_0"
//
//	c, ok := t.Lookup("root.widget_0") // c == w2
//
//	t.Destroy(root)
//
// # Notifications
//
// Each component owns a [notify.Subject] keyed by [Kind] with the affected
// component as payload:
//   - [KindAdded] is sent through the owner's subject after a child has been
//     created and linked.
//   - [KindFree] is sent through the owner's subject before a child is torn
//     down, and through a component's own subject for the component itself.
//   - [KindSerialize] and [KindDeserialize] are sent by persistence code via
//     [Tree.NotifySerialize] and [Tree.NotifyDeserialize].
//
// # Teardown
//
// [Tree.Destroy] visits owned components in reverse creation order, depth
// first. For each child the owner first broadcasts KindFree and then
// destroys the child. Afterwards the component broadcasts KindFree about
// itself, leaves the registry and is released through the allocator.
// Destroying a nil, tearing-down or destroyed component is a no-op, which
// also makes a nested Destroy from inside a notification handler harmless.
//
// # Naming
//
// Names are unique among siblings. A proposed name that is already taken
// is resolved to the first free "<name>_<n>" for n = 0, 1, 2, and so on.
// Every named component is registered under its qualified name, the
// dot-joined names from the root down, and the registry is updated on
// every rename.
//
// # Concurrency
//
// A Tree and its components are not safe for concurrent use. Callers that
// share a tree across goroutines must serialize access themselves.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package tree
