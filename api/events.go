// File: api/events.go
// Author: momentics <momentics@gmail.com>
//
// Interest sets, subscription tokens and readiness events shared
// between pipe endpoints and the platform pollers.

package api

import "fmt"

// Token is an opaque identifier a caller attaches to a registration.
// The poller hands it back inside every Event for that descriptor.
type Token uintptr

// Interest is a bitset describing which readiness classes a
// registration subscribes to.
type Interest uint8

const (
	// Readable subscribes to read readiness.
	Readable Interest = 1 << iota
	// Writable subscribes to write readiness.
	Writable
)

// Or combines two interest sets.
func (i Interest) Or(other Interest) Interest {
	return i | other
}

// IsReadable reports whether the set contains read interest.
func (i Interest) IsReadable() bool {
	return i&Readable != 0
}

// IsWritable reports whether the set contains write interest.
func (i Interest) IsWritable() bool {
	return i&Writable != 0
}

// String returns a readable form, e.g. "READABLE|WRITABLE".
func (i Interest) String() string {
	switch {
	case i.IsReadable() && i.IsWritable():
		return "READABLE|WRITABLE"
	case i.IsReadable():
		return "READABLE"
	case i.IsWritable():
		return "WRITABLE"
	default:
		return "EMPTY"
	}
}

// EventFlag records the readiness classes observed on a descriptor.
type EventFlag uint8

const (
	// FlagReadable marks the descriptor as readable.
	FlagReadable EventFlag = 1 << iota
	// FlagWritable marks the descriptor as writable.
	FlagWritable
	// FlagError marks an error condition on the descriptor.
	FlagError
	// FlagReadClosed marks the read half as shut down.
	FlagReadClosed
	// FlagWriteClosed marks the write half as shut down.
	FlagWriteClosed
)

// Event is one readiness notification returned by a poller Wait call.
//
// Peer-closure detection is best-effort and not symmetric across
// platforms: a receiver whose sender was closed usually observes
// FlagReadClosed, possibly combined with FlagError, and a sender whose
// receiver was closed observes FlagWriteClosed and/or FlagError.
// Callers should check IsError together with the matching half-closed
// accessor rather than rely on either flag alone.
type Event struct {
	Token Token
	Flags EventFlag
}

// IsReadable reports whether the descriptor is ready for reading.
func (e Event) IsReadable() bool {
	return e.Flags&FlagReadable != 0
}

// IsWritable reports whether the descriptor is ready for writing.
func (e Event) IsWritable() bool {
	return e.Flags&FlagWritable != 0
}

// IsError reports whether an error condition was observed.
func (e Event) IsError() bool {
	return e.Flags&FlagError != 0
}

// IsReadClosed reports whether the read half appears shut down.
func (e Event) IsReadClosed() bool {
	return e.Flags&FlagReadClosed != 0
}

// IsWriteClosed reports whether the write half appears shut down.
func (e Event) IsWriteClosed() bool {
	return e.Flags&FlagWriteClosed != 0
}

// String returns a readable form for logs and test failures.
func (e Event) String() string {
	s := fmt.Sprintf("Event{token=%d", e.Token)
	if e.IsReadable() {
		s += " readable"
	}
	if e.IsWritable() {
		s += " writable"
	}
	if e.IsError() {
		s += " error"
	}
	if e.IsReadClosed() {
		s += " read-closed"
	}
	if e.IsWriteClosed() {
		s += " write-closed"
	}
	return s + "}"
}
