// File: fake/registry.go
// Author: momentics <momentics@gmail.com>
//
// In-memory api.Registry double for tests of event sources.

package fake

import (
	"github.com/momentics/hioload-pipe/api"
)

// RegistryCall records one call made against the fake registry.
type RegistryCall struct {
	Op       string // "register", "reregister", "deregister"
	FD       int
	Token    api.Token
	Interest api.Interest
}

// Registry implements api.Registry and records every call. Optional
// *Func hooks override the default nil-returning behavior.
type Registry struct {
	Calls []RegistryCall

	RegisterFunc   func(fd int, tok api.Token, in api.Interest) error
	ReregisterFunc func(fd int, tok api.Token, in api.Interest) error
	DeregisterFunc func(fd int) error
}

// NewRegistry creates an empty fake registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register records the call.
func (r *Registry) Register(fd int, tok api.Token, in api.Interest) error {
	r.Calls = append(r.Calls, RegistryCall{Op: "register", FD: fd, Token: tok, Interest: in})
	if r.RegisterFunc != nil {
		return r.RegisterFunc(fd, tok, in)
	}
	return nil
}

// Reregister records the call.
func (r *Registry) Reregister(fd int, tok api.Token, in api.Interest) error {
	r.Calls = append(r.Calls, RegistryCall{Op: "reregister", FD: fd, Token: tok, Interest: in})
	if r.ReregisterFunc != nil {
		return r.ReregisterFunc(fd, tok, in)
	}
	return nil
}

// Deregister records the call.
func (r *Registry) Deregister(fd int) error {
	r.Calls = append(r.Calls, RegistryCall{Op: "deregister", FD: fd})
	if r.DeregisterFunc != nil {
		return r.DeregisterFunc(fd)
	}
	return nil
}

// Reset clears the recorded calls and hooks.
func (r *Registry) Reset() {
	r.Calls = nil
	r.RegisterFunc = nil
	r.ReregisterFunc = nil
	r.DeregisterFunc = nil
}
