// File: pipe/source.go
// Author: momentics <momentics@gmail.com>
//
// Descriptor-based event source adapter.

package pipe

import (
	"github.com/momentics/hioload-pipe/api"
)

// SourceFD adapts a raw descriptor to api.Source by forwarding each
// call to the registry. It performs no readiness tracking of its own;
// any descriptor-backed type gains registry support by delegating
// through it, the way Sender and Receiver do.
type SourceFD struct {
	FD int
}

// Register forwards to the registry.
func (s *SourceFD) Register(r api.Registry, tok api.Token, in api.Interest) error {
	return r.Register(s.FD, tok, in)
}

// Reregister forwards to the registry.
func (s *SourceFD) Reregister(r api.Registry, tok api.Token, in api.Interest) error {
	return r.Reregister(s.FD, tok, in)
}

// Deregister forwards to the registry.
func (s *SourceFD) Deregister(r api.Registry) error {
	return r.Deregister(s.FD)
}
