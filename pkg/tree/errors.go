package tree

import "errors"

// Contract violations panic with one of these errors, wrapped with the
// offending operation. Use errors.Is on the recovered value to match them.
var (
	// ErrDestroyed is raised when a component that is tearing down or
	// destroyed is used as an owner or renamed.
	ErrDestroyed = errors.New("tree: component destroyed")

	// ErrForeignOwner is raised when an owner belongs to a different Tree.
	ErrForeignOwner = errors.New("tree: owner belongs to another tree")

	// ErrNameExhausted is raised when no numeric suffix yields a free name.
	ErrNameExhausted = errors.New("tree: no unused name suffix")

	// ErrInvalidName is raised when a proposed name contains Separator.
	ErrInvalidName = errors.New("tree: name contains separator")
)
