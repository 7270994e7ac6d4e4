package tree

import "github.com/bft-labs/comptree/pkg/log"

// Destroy tears down c and everything it owns.
//
// When c has a live owner, the owner first broadcasts KindFree about c and
// then drops c from its owned list. Destroying a nil, tearing-down or
// destroyed component is a no-op.
func (t *Tree) Destroy(c *Component) {
	if c == nil || c.state != StateLive {
		return
	}
	if owner := c.owner; owner != nil && owner.state == StateLive {
		owner.subject.Notify(KindFree, c)
		if c.state != StateLive {
			// A handler already destroyed it.
			return
		}
	}
	t.teardown(c)
}

func (t *Tree) teardown(c *Component) {
	c.state = StateTearingDown
	qualified := c.QualifiedName()

	// Creation is refused under a tearing-down owner and children are only
	// detached from live owners, so c.owned is stable during this loop.
	for i := len(c.owned) - 1; i >= 0; i-- {
		child := c.owned[i]
		if child.state != StateLive {
			continue
		}
		c.subject.Notify(KindFree, child)
		if child.state == StateLive {
			t.teardown(child)
		}
	}

	c.subject.Notify(KindFree, c)

	t.unregister(c)
	c.subject.Clear()
	c.subject = nil
	c.owned = nil
	if owner := c.owner; owner != nil && owner.state == StateLive {
		owner.detach(c)
	}

	t.logger.Debug("component destroyed", log.String("qualified_name", qualified))

	self := c
	t.alloc.Destruct(&c)
	self.state = StateDestroyed
}

// detach removes child from c's owned list, keeping creation order.
func (c *Component) detach(child *Component) {
	for i, o := range c.owned {
		if o == child {
			c.owned = append(c.owned[:i:i], c.owned[i+1:]...)
			return
		}
	}
}
