// Package comptree builds ownership trees of named components.
//
// Example usage:
//
//	t := comptree.New()
//	root := t.Create(nil)
//	t.SetName(root, "root")
//	w := t.Create(root)
//	t.SetName(w, "widget")
//	fmt.Println(w.QualifiedName()) // root.widget
//	t.Destroy(root)
package comptree

import (
	"github.com/bft-labs/comptree/pkg/registry"
	"github.com/bft-labs/comptree/pkg/tree"
)

// Tree creates, names and destroys components.
type Tree = tree.Tree

// Component is a node in an ownership tree.
type Component = tree.Component

// Kind identifies a lifecycle notification.
type Kind = tree.Kind

// Observer receives lifecycle notifications about components.
type Observer = tree.Observer

// ObserverFunc adapts a function to an Observer. Register a pointer to it.
type ObserverFunc = tree.ObserverFunc

// Option configures a Tree.
type Option = tree.Option

// Notification kinds.
const (
	KindAdded       = tree.KindAdded
	KindFree        = tree.KindFree
	KindSerialize   = tree.KindSerialize
	KindDeserialize = tree.KindDeserialize
)

// New creates a Tree. Without options it uses heap allocation, the
// process-wide registry and no logging.
func New(opts ...Option) *Tree {
	return tree.New(opts...)
}

// WithAllocator, WithRegistry and WithLogger configure a Tree.
var (
	WithAllocator = tree.WithAllocator
	WithRegistry  = tree.WithRegistry
	WithLogger    = tree.WithLogger
)

// Init resets the process-wide registry. Call it once at startup.
func Init() {
	registry.Init()
}

// Shutdown empties the process-wide registry.
func Shutdown() {
	registry.Clear()
}
