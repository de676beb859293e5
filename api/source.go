// File: api/source.go
// Author: momentics <momentics@gmail.com>
//
// Registry and event source contracts. The registry tracks raw
// descriptors; a Source maps "this object" onto "this descriptor" for
// the registry's bookkeeping and carries no readiness state itself.

package api

// Registry is the readiness registry consumed by event sources. It is
// implemented by the platform pollers in the poller package, and may be
// implemented by any other readiness facility that tracks descriptors.
//
// Registering one descriptor under two tokens at the same time is
// governed by the registry's own contract; sources do not guard
// against it.
type Registry interface {
	// Register adds fd under tok with the given interest set.
	Register(fd int, tok Token, in Interest) error

	// Reregister replaces the token and interest set of an already
	// registered fd.
	Reregister(fd int, tok Token, in Interest) error

	// Deregister removes fd. Callers must deregister before closing
	// the descriptor: a recycled fd number can otherwise receive
	// stale events.
	Deregister(fd int) error
}

// Source is anything that can be registered with a Registry. Pipe
// endpoints implement it by forwarding to a descriptor-based adapter.
type Source interface {
	Register(r Registry, tok Token, in Interest) error
	Reregister(r Registry, tok Token, in Interest) error
	Deregister(r Registry) error
}
