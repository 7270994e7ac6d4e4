package tree

import (
	"fmt"

	"github.com/bft-labs/comptree/pkg/alloc"
	"github.com/bft-labs/comptree/pkg/log"
	"github.com/bft-labs/comptree/pkg/notify"
	"github.com/bft-labs/comptree/pkg/registry"
)

// Tree creates, names and destroys components. It holds the allocator,
// registry and logger shared by all components it creates.
type Tree struct {
	alloc    alloc.Allocator[Component]
	registry registry.Registry[*Component]
	logger   log.Logger
}

// Option configures a Tree.
type Option func(*options)

type options struct {
	alloc    alloc.Allocator[Component]
	registry registry.Registry[*Component]
	logger   log.Logger
}

// WithAllocator sets the allocator used for components.
// Defaults to alloc.Heap.
func WithAllocator(a alloc.Allocator[Component]) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithRegistry sets the registry kept in sync with qualified names.
// Defaults to a typed view of the process-wide registry.Default().
func WithRegistry(r registry.Registry[*Component]) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a Tree.
func New(opts ...Option) *Tree {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.alloc == nil {
		o.alloc = alloc.Heap[Component]{}
	}
	if o.registry == nil {
		o.registry = registry.As[*Component](registry.Default())
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	return &Tree{
		alloc:    o.alloc,
		registry: o.registry,
		logger:   o.logger,
	}
}

// Create allocates a component owned by owner, or a root when owner is nil.
// A non-nil owner appends the new component to its owned list and then
// broadcasts KindAdded about it. The new component has no name.
func (t *Tree) Create(owner *Component) *Component {
	if owner != nil {
		if owner.tree != t {
			panic(fmt.Errorf("create under %q: %w", owner.QualifiedName(), ErrForeignOwner))
		}
		if owner.state != StateLive {
			panic(fmt.Errorf("create under %q (%s): %w", owner.QualifiedName(), owner.state, ErrDestroyed))
		}
	}

	c := t.alloc.Construct()
	c.owner = owner
	c.subject = notify.NewSubject[Kind, *Component]()
	c.state = StateLive
	c.tree = t

	if owner == nil {
		t.logger.Debug("root created")
		return c
	}

	owner.owned = append(owner.owned, c)
	t.logger.Debug("component created",
		log.String("owner", owner.QualifiedName()),
		log.Int("index", len(owner.owned)-1),
	)
	owner.subject.Notify(KindAdded, c)
	return c
}

// Lookup returns the component registered under a qualified name.
func (t *Tree) Lookup(qualifiedName string) (*Component, bool) {
	return t.registry.Lookup(qualifiedName)
}

// NotifySerialize broadcasts KindSerialize about c through its owner's
// subject, or through c's own subject when c is a root.
func (t *Tree) NotifySerialize(c *Component) {
	t.broadcast(KindSerialize, c)
}

// NotifyDeserialize broadcasts KindDeserialize about c through its owner's
// subject, or through c's own subject when c is a root.
func (t *Tree) NotifyDeserialize(c *Component) {
	t.broadcast(KindDeserialize, c)
}

func (t *Tree) broadcast(kind Kind, c *Component) {
	if c == nil || c.state != StateLive {
		return
	}
	subject := c.subject
	if c.owner != nil {
		subject = c.owner.subject
	}
	subject.Notify(kind, c)
}
