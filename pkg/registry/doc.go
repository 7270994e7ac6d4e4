// Package registry provides a name-to-reference lookup table kept in sync
// with owning structures.
//
// The contract is deliberately narrow: [Registry.Store] inserts or
// overwrites a name, [Registry.Remove] drops every name that maps to a key,
// and [Registry.Lookup] resolves a name. [Map] implements it for any
// comparable key type.
//
// A process-wide table is available through [Default]. Call [Init] before
// first use to start from an empty table and [Clear] at shutdown.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package registry
