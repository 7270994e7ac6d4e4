package tree

// State is the lifecycle marker of a component.
// Transitions only move forward: Live -> TearingDown -> Destroyed.
type State int

const (
	// StateLive is a component that was created and not yet destroyed.
	StateLive State = iota + 1
	// StateTearingDown is a component whose teardown is in progress.
	StateTearingDown
	// StateDestroyed is a released component.
	StateDestroyed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateLive:
		return "Live"
	case StateTearingDown:
		return "TearingDown"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}
