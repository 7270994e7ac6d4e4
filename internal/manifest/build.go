package manifest

import (
	"github.com/bft-labs/comptree/pkg/tree"
)

// Build creates the tree described by m in t and returns its root.
// Children are created depth first in manifest order; duplicate sibling
// names are resolved by the tree. KindDeserialize is broadcast for each
// component after it has been named.
func Build(t *tree.Tree, m Manifest) (*tree.Component, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	root := t.Create(nil)
	buildNode(t, root, m.Root)
	return root, nil
}

func buildNode(t *tree.Tree, c *tree.Component, n Node) {
	t.SetName(c, n.Name)
	t.NotifyDeserialize(c)
	for _, child := range n.Children {
		buildNode(t, t.Create(c), child)
	}
}

// Snapshot describes the live tree under c, broadcasting KindSerialize for
// each component as it is visited. Names are the resolved names.
func Snapshot(t *tree.Tree, c *tree.Component) Manifest {
	return Manifest{Root: snapshotNode(t, c)}
}

func snapshotNode(t *tree.Tree, c *tree.Component) Node {
	t.NotifySerialize(c)
	n := Node{Name: c.Name()}
	for _, child := range c.Owned() {
		n.Children = append(n.Children, snapshotNode(t, child))
	}
	return n
}
