//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris

// File: internal/rawfd/rawfd_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub wrapper for platforms without the unix syscall surface. Pipe
// creation already fails on these platforms, so no live FD can exist;
// the methods keep the package compiling and reject any use.

package rawfd

import (
	"github.com/momentics/hioload-pipe/api"
)

// FD exclusively owns one open descriptor on supported platforms. On
// this platform no pipe descriptor can be created and every operation
// reports api.ErrNotSupported.
type FD struct {
	raw int
}

// New takes ownership of raw without validation.
func New(raw int) *FD {
	return &FD{raw: raw}
}

// Raw returns the descriptor without transferring ownership.
func (fd *FD) Raw() int {
	return fd.raw
}

// Release relinquishes ownership without closing.
func (fd *FD) Release() int {
	raw := fd.raw
	fd.raw = -1
	return raw
}

// Close is a no-op here.
func (fd *FD) Close() error {
	fd.raw = -1
	return nil
}

// SetNonblocking is unavailable on this platform.
func (fd *FD) SetNonblocking(nonblocking bool) error {
	return api.ErrNotSupported
}

// SetCloseOnExec is unavailable on this platform.
func (fd *FD) SetCloseOnExec() error {
	return api.ErrNotSupported
}

// Read is unavailable on this platform.
func (fd *FD) Read(p []byte) (int, error) {
	return 0, api.ErrNotSupported
}

// Write is unavailable on this platform.
func (fd *FD) Write(p []byte) (int, error) {
	return 0, api.ErrNotSupported
}

// Readv is unavailable on this platform.
func (fd *FD) Readv(bufs [][]byte) (int, error) {
	return 0, api.ErrNotSupported
}

// Writev is unavailable on this platform.
func (fd *FD) Writev(bufs [][]byte) (int, error) {
	return 0, api.ErrNotSupported
}
