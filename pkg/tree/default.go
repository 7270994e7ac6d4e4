package tree

// std is the tree behind the package-level helpers. It uses the heap
// allocator and the process-wide registry.
var std = New()

// Default returns the package-level tree.
func Default() *Tree {
	return std
}

// Create creates a component in the default tree.
func Create(owner *Component) *Component {
	return std.Create(owner)
}

// SetName renames a component of the default tree.
func SetName(c *Component, proposed string) string {
	return std.SetName(c, proposed)
}

// Destroy tears down a component of the default tree.
func Destroy(c *Component) {
	std.Destroy(c)
}

// Lookup resolves a qualified name in the default tree's registry.
func Lookup(qualifiedName string) (*Component, bool) {
	return std.Lookup(qualifiedName)
}
