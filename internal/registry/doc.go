// Package registry maps step names to pipe type implementations.
//
// Each query engine instance owns its own Registry, so several graphs in one
// process never share registration state. Built-in pipe types are compiled
// into modules that implement the Module interface and register themselves
// at startup; embedding code and the alias system add more at runtime.
//
// Lookups of unknown names never fail hard: Resolve reports
// fault.ErrUnknownPipeType and hands back the identity pipe so a query still
// terminates.
package registry
