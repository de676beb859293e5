//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

// File: internal/rawfd/rawfd_unix.go
// Author: momentics <momentics@gmail.com>
//
// Unix descriptor ownership wrapper and thin syscall surface.

package rawfd

import (
	"golang.org/x/sys/unix"
)

// FD exclusively owns one open file descriptor. The zero value and a
// released or closed FD hold -1 and reject I/O with unix.EBADF.
type FD struct {
	raw int
}

// New takes ownership of raw. The caller asserts that raw is open and
// not managed by anything else; no validation is performed.
func New(raw int) *FD {
	return &FD{raw: raw}
}

// Raw returns the descriptor without transferring ownership. The value
// stays valid only while the FD is alive and must not be closed by the
// caller.
func (fd *FD) Raw() int {
	return fd.raw
}

// Release relinquishes ownership without closing and returns the raw
// descriptor. The caller becomes responsible for closing it.
func (fd *FD) Release() int {
	raw := fd.raw
	fd.raw = -1
	return raw
}

// Close closes the descriptor if still owned. Calling Close on a
// released or already closed FD is a no-op. The close error has no
// recovery path at this point; callers discarding it get the intended
// best-effort semantics.
func (fd *FD) Close() error {
	if fd.raw < 0 {
		return nil
	}
	raw := fd.raw
	fd.raw = -1
	return unix.Close(raw)
}

// SetNonblocking toggles non-blocking mode. Construction already
// leaves pipe descriptors non-blocking; this exists for recovery and
// interop paths, e.g. after receiving a descriptor over a fork
// boundary.
func (fd *FD) SetNonblocking(nonblocking bool) error {
	return unix.SetNonblock(fd.raw, nonblocking)
}

// SetCloseOnExec sets the FD_CLOEXEC flag on the descriptor.
func (fd *FD) SetCloseOnExec() error {
	_, err := unix.FcntlInt(uintptr(fd.raw), unix.F_SETFD, unix.FD_CLOEXEC)
	return err
}

// Read reads into p. A zero count with nil error is end-of-stream.
func (fd *FD) Read(p []byte) (int, error) {
	n, err := unix.Read(fd.raw, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write writes p. Short writes are reported through the count, not as
// an error.
func (fd *FD) Write(p []byte) (int, error) {
	n, err := unix.Write(fd.raw, p)
	if n < 0 {
		n = 0
	}
	return n, err
}
