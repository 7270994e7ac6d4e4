package app

import (
	"sync"

	"github.com/bft-labs/comptree/pkg/log"
	"github.com/bft-labs/comptree/pkg/tree"
)

// TreeLogger logs every lifecycle notification in a tree and keeps
// per-kind counts. Attached to a root, it follows the tree: each component
// reported as added is subscribed as well.
type TreeLogger struct {
	logger log.Logger

	mu     sync.Mutex
	counts map[tree.Kind]int
}

// NewTreeLogger creates a TreeLogger writing to logger.
func NewTreeLogger(logger log.Logger) *TreeLogger {
	return &TreeLogger{
		logger: logger,
		counts: make(map[tree.Kind]int),
	}
}

// Attach subscribes o to c and all of its current descendants.
func (o *TreeLogger) Attach(c *tree.Component) {
	c.Walk(func(n *tree.Component) bool {
		n.AddObserver(o)
		return true
	})
}

// Handle implements tree.Observer.
//
// A component being freed is reported twice to an observer attached
// everywhere: once by its owner while it is still live and once by itself
// while tearing down. Only the second is recorded.
func (o *TreeLogger) Handle(kind tree.Kind, c *tree.Component) {
	if kind == tree.KindFree && c.State() == tree.StateLive {
		return
	}

	o.mu.Lock()
	o.counts[kind]++
	o.mu.Unlock()

	if kind == tree.KindAdded {
		c.AddObserver(o)
	}
	o.logger.Debug("component notification",
		log.Stringer("kind", kind),
		log.String("qualified_name", c.QualifiedName()),
		log.Int("owned", c.ComponentCount()),
	)
}

// Count returns how many notifications of kind were seen.
func (o *TreeLogger) Count(kind tree.Kind) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[kind]
}

// Reset zeroes the counters.
func (o *TreeLogger) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.counts = make(map[tree.Kind]int)
}
