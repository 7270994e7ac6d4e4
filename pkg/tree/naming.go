package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bft-labs/comptree/pkg/log"
)

// SetName renames c, resolving collisions with its siblings, and returns
// the name actually assigned.
//
// The registry entry for c's previous qualified name is dropped and the new
// one stored. Descendants are re-registered too, since their qualified names
// derive from c's. Only components named all the way up to the root are
// registered: an empty name means unnamed. Names may not contain the "."
// separator; a proposal that does panics with ErrInvalidName.
func (t *Tree) SetName(c *Component, proposed string) string {
	if c == nil || c.state != StateLive {
		panic(fmt.Errorf("set name %q: %w", proposed, ErrDestroyed))
	}
	if strings.Contains(proposed, Separator) {
		panic(fmt.Errorf("set name %q: %w", proposed, ErrInvalidName))
	}

	name := uniqueName(siblingNames(c), proposed)
	previous := c.QualifiedName()
	c.name = name

	c.Walk(func(n *Component) bool {
		if n.fullyNamed() {
			t.register(n)
		} else {
			t.unregister(n)
		}
		return true
	})

	t.logger.Debug("component named",
		log.String("previous", previous),
		log.String("qualified_name", c.QualifiedName()),
	)
	return name
}

// QualifiedName returns c's dot-joined name path from the root.
func (t *Tree) QualifiedName(c *Component) string {
	if c == nil {
		return ""
	}
	return c.QualifiedName()
}

func (t *Tree) register(c *Component) {
	t.registry.Remove(c)
	t.registry.Store(c, c.QualifiedName())
	c.registered = true
}

// fullyNamed reports whether c and all of its owners have non-empty names.
func (c *Component) fullyNamed() bool {
	for n := c; n != nil; n = n.owner {
		if n.name == "" {
			return false
		}
	}
	return true
}

func (t *Tree) unregister(c *Component) {
	if !c.registered {
		return
	}
	t.registry.Remove(c)
	c.registered = false
}

// siblingNames returns the names in use by the other children of c's owner.
func siblingNames(c *Component) map[string]struct{} {
	if c.owner == nil {
		return nil
	}
	names := make(map[string]struct{}, len(c.owner.owned))
	for _, s := range c.owner.owned {
		if s != c {
			names[s.name] = struct{}{}
		}
	}
	return names
}

// uniqueName returns proposed if unused, otherwise the first unused
// proposed_N for N counting up from zero. The empty name means unnamed and
// is never treated as a collision.
func uniqueName(taken map[string]struct{}, proposed string) string {
	if proposed == "" {
		return proposed
	}
	if _, ok := taken[proposed]; !ok {
		return proposed
	}
	for i := 0; i < math.MaxInt; i++ {
		candidate := proposed + "_" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
	panic(fmt.Errorf("set name %q: %w", proposed, ErrNameExhausted))
}
