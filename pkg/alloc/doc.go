// Package alloc defines the construct/destruct contract used by owning
// structures that manage the lifetime of their values explicitly.
//
// Go values are garbage collected, so "freeing" here means finalizing: the
// value is reset to its zero state and the caller's reference is cleared.
// Code that keeps a stale pointer after Destruct observes a zeroed value
// rather than a dangling one.
//
// Allocation failure is not reported as an error. An exhausted heap
// terminates the process, which matches the contract expected by callers.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package alloc
