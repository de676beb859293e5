// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Error model. Every failing OS operation surfaces as one kind, an
// *OpError carrying the platform error code; would-block is a
// distinguished value inside that kind, not a separate kind.

package api

import (
	"errors"
	"syscall"
)

// ErrNotSupported is returned on platforms without a native
// non-blocking unidirectional pipe primitive. No blocking emulation is
// provided for them.
var ErrNotSupported = errors.New("not supported on this platform")

// OpError records a failed OS operation together with the platform
// error code. It unwraps to the underlying error so errors.Is can
// match raw errno values.
type OpError struct {
	Op  string // syscall name, e.g. "pipe2", "write"
	Err error  // platform error, usually a syscall.Errno
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying platform error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError wraps err as an *OpError for op. A nil err passes through
// unchanged so syscall wrappers can wrap unconditionally.
func NewOpError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// IsWouldBlock reports whether err indicates that a non-blocking
// operation could not complete immediately. Callers must treat it as
// routine flow control and consult the poller before retrying.
func IsWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
