// Package log provides the logging abstraction used across comptree.
//
// Library packages accept a [Logger] and never construct one themselves.
// A zerolog-backed adapter is provided for applications and a no-op logger
// is the default when none is supplied.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	t := tree.New(tree.WithLogger(logger))
//
// Use [ParseLevel] to turn a configuration string ("debug", "info", ...)
// into a zerolog level.
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
