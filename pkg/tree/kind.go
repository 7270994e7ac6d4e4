package tree

import "github.com/bft-labs/comptree/pkg/notify"

// Kind identifies a lifecycle notification.
type Kind int

const (
	// KindAdded reports a child that has just been created and linked.
	KindAdded Kind = iota
	// KindFree reports a component about to be torn down.
	KindFree
	// KindSerialize reports a component being written out.
	KindSerialize
	// KindDeserialize reports a component that has just been read in.
	KindDeserialize
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindFree:
		return "free"
	case KindSerialize:
		return "serialize"
	case KindDeserialize:
		return "deserialize"
	default:
		return "unknown"
	}
}

// Observer receives lifecycle notifications about components.
type Observer = notify.Observer[Kind, *Component]

// ObserverFunc adapts a function to Observer. Register a pointer to it.
type ObserverFunc = notify.ObserverFunc[Kind, *Component]

// Subject is the per-component notification engine.
type Subject = notify.Subject[Kind, *Component]
