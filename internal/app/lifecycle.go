package app

import (
	"sync"

	"github.com/bft-labs/comptree/pkg/log"
)

// State represents the lifecycle state of a session.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when the session state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	StateStopped:  {StateStarting},
	StateStarting: {StateRunning, StateStopping, StateCrashed},
	StateRunning:  {StateStopping, StateCrashed},
	StateStopping: {StateStopped, StateCrashed},
	StateCrashed:  {StateStarting},
}

// Lifecycle guards session state transitions.
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	logger  log.Logger
	emitter EventEmitter
}

// NewLifecycle creates a lifecycle in StateStopped. emitter may be nil.
func NewLifecycle(logger log.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:   StateStopped,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to next if the transition is allowed.
// From Stopped and Crashed an invalid target yields ErrNotRunning,
// otherwise ErrAlreadyRunning.
func (l *Lifecycle) TransitionTo(next State, reason string) error {
	l.mu.Lock()
	prev := l.state
	if !allowed(prev, next) {
		l.mu.Unlock()
		if prev == StateStopped || prev == StateCrashed {
			return ErrNotRunning
		}
		return ErrAlreadyRunning
	}
	l.state = next
	l.mu.Unlock()

	// Emit outside the lock so handlers may query State.
	if l.emitter != nil {
		l.emitter.OnStateChange(prev, next, reason)
	}
	l.logger.Info("state transition",
		log.Stringer("from", prev),
		log.Stringer("to", next),
		log.String("reason", reason),
	)
	return nil
}

// CanStart reports whether Start may be called.
func (l *Lifecycle) CanStart() bool {
	s := l.State()
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop may be called.
func (l *Lifecycle) CanStop() bool {
	s := l.State()
	return s == StateRunning || s == StateStarting
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
