package tree

import "strings"

// Component is a node in an ownership tree.
// Create components with Tree.Create; the zero value is not usable.
type Component struct {
	name       string
	owner      *Component
	owned      []*Component
	subject    *Subject
	state      State
	registered bool
	tree       *Tree
}

// Name returns the component's short name.
func (c *Component) Name() string {
	return c.name
}

// Owner returns the owning component, or nil for a root.
// The owner must never be used to release c.
func (c *Component) Owner() *Component {
	return c.owner
}

// Owned returns the owned components in creation order.
// The returned slice is a copy.
func (c *Component) Owned() []*Component {
	out := make([]*Component, len(c.owned))
	copy(out, c.owned)
	return out
}

// ComponentCount returns the number of owned components.
func (c *Component) ComponentCount() int {
	return len(c.owned)
}

// Component returns the i-th owned component in creation order.
func (c *Component) Component(i int) *Component {
	return c.owned[i]
}

// State returns the lifecycle state.
func (c *Component) State() State {
	return c.state
}

// Tree returns the tree that created the component.
func (c *Component) Tree() *Tree {
	return c.tree
}

// Subject returns the component's notification engine, or nil once the
// component has been torn down.
func (c *Component) Subject() *Subject {
	return c.subject
}

// AddObserver registers obs on the component's subject.
func (c *Component) AddObserver(obs Observer) {
	if c.subject != nil {
		c.subject.AddObserver(obs)
	}
}

// RemoveObserver unregisters obs from the component's subject.
func (c *Component) RemoveObserver(obs Observer) {
	if c.subject != nil {
		c.subject.RemoveObserver(obs)
	}
}

// Separator joins names in a qualified name.
const Separator = "."

// QualifiedName returns the names from the root down to c joined by Separator.
func (c *Component) QualifiedName() string {
	var parts []string
	for n := c; n != nil; n = n.owner {
		parts = append(parts, n.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, Separator)
}

// FindChild returns the owned component called name.
func (c *Component) FindChild(name string) (*Component, bool) {
	for _, child := range c.owned {
		if child.name == name {
			return child, true
		}
	}
	return nil, false
}

// Walk calls fn for c and its descendants, depth first in creation order.
// Returning false from fn skips the visited component's descendants.
func (c *Component) Walk(fn func(*Component) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.owned {
		child.Walk(fn)
	}
}

// Root returns the topmost owner of c.
func (c *Component) Root() *Component {
	n := c
	for n.owner != nil {
		n = n.owner
	}
	return n
}
