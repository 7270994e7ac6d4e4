package app

import "errors"

// Session errors. Check them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start is called on a running session.
	ErrAlreadyRunning = errors.New("comptree: already running")

	// ErrNotRunning is returned when Stop is called on a session that is not running.
	ErrNotRunning = errors.New("comptree: not running")

	// ErrShutdownTimeout is returned when workers do not finish in time.
	ErrShutdownTimeout = errors.New("comptree: shutdown timeout")

	// ErrNotLoaded is returned when the session has no tree.
	ErrNotLoaded = errors.New("comptree: no tree loaded")
)
