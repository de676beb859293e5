// File: pipe/pipe.go
// Author: momentics <momentics@gmail.com>
//
// Sender/Receiver facade over the descriptor ownership wrapper.

package pipe

import (
	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/internal/rawfd"
)

// New creates a non-blocking, close-on-exec pipe and returns its two
// endpoints. Bytes written to the Sender become readable from the
// Receiver. The caller owns both endpoints; closing one does not
// invalidate the other, though the peer observes the closure (see
// api.Event).
//
// On platforms with pipe2(2) creation is a single syscall; otherwise
// the pipe is created plain and both descriptors are configured
// individually, closing everything on partial failure. Platforms
// without a native non-blocking pipe get an error wrapping
// api.ErrNotSupported.
func New() (*Sender, *Receiver, error) {
	rfd, wfd, err := newPipe()
	if err != nil {
		return nil, nil, err
	}
	s := &Sender{fd: rawfd.New(wfd)}
	r := &Receiver{fd: rawfd.New(rfd)}
	return s, r, nil
}

// Sender is the write end of a pipe. It exclusively owns its
// descriptor until Close or ReleaseRaw.
type Sender struct {
	fd *rawfd.FD
}

// NewSenderFromRaw takes ownership of raw, which the caller asserts is
// the open write end of a pipe. No validation is performed; passing a
// descriptor that is closed, shared, or not a pipe write end breaks
// the ownership and I/O contracts.
func NewSenderFromRaw(raw int) *Sender {
	return &Sender{fd: rawfd.New(raw)}
}

// Write writes p to the pipe. It never blocks: when the pipe buffer
// has no room the error satisfies api.IsWouldBlock. A short write is
// reported through the count and is not an error; no internal retry
// loop is attempted.
func (s *Sender) Write(p []byte) (int, error) {
	n, err := s.fd.Write(p)
	return n, api.NewOpError("write", err)
}

// WriteVectored writes the buffers in order, possibly in one syscall.
// Same non-blocking and short-write contract as Write.
func (s *Sender) WriteVectored(bufs [][]byte) (int, error) {
	n, err := s.fd.Writev(bufs)
	return n, api.NewOpError("writev", err)
}

// Flush is a no-op. The OS pipe has no flush buffer at this layer.
func (s *Sender) Flush() error {
	return nil
}

// SetNonblocking toggles non-blocking mode on the descriptor. New
// pipes are already non-blocking; this is for recovery and interop
// paths.
func (s *Sender) SetNonblocking(nonblocking bool) error {
	return api.NewOpError("set-nonblock", s.fd.SetNonblocking(nonblocking))
}

// Raw returns the descriptor without transferring ownership. It must
// not be closed by the caller and is valid only while the Sender is
// open.
func (s *Sender) Raw() int {
	return s.fd.Raw()
}

// ReleaseRaw relinquishes ownership of the descriptor without closing
// it and returns it; the Sender is dead afterwards and the caller is
// responsible for the eventual close.
func (s *Sender) ReleaseRaw() int {
	return s.fd.Release()
}

// Close closes the descriptor if still owned. Closing tells the peer
// Receiver, once it drains the pipe, that the stream has ended.
func (s *Sender) Close() error {
	return s.fd.Close()
}

// Register implements api.Source by forwarding the raw descriptor to
// the registry. Deregister before Close: a recycled descriptor number
// can otherwise receive stale events.
func (s *Sender) Register(r api.Registry, tok api.Token, in api.Interest) error {
	return (&SourceFD{FD: s.fd.Raw()}).Register(r, tok, in)
}

// Reregister implements api.Source.
func (s *Sender) Reregister(r api.Registry, tok api.Token, in api.Interest) error {
	return (&SourceFD{FD: s.fd.Raw()}).Reregister(r, tok, in)
}

// Deregister implements api.Source.
func (s *Sender) Deregister(r api.Registry) error {
	return (&SourceFD{FD: s.fd.Raw()}).Deregister(r)
}

// Receiver is the read end of a pipe. It exclusively owns its
// descriptor until Close or ReleaseRaw.
type Receiver struct {
	fd *rawfd.FD
}

// NewReceiverFromRaw takes ownership of raw, which the caller asserts
// is the open read end of a pipe. No validation is performed.
func NewReceiverFromRaw(raw int) *Receiver {
	return &Receiver{fd: rawfd.New(raw)}
}

// Read reads from the pipe into p. It never blocks: when no bytes are
// buffered the error satisfies api.IsWouldBlock. A return of 0 with a
// nil error means the peer Sender was closed and the pipe has been
// drained: end-of-stream.
func (r *Receiver) Read(p []byte) (int, error) {
	n, err := r.fd.Read(p)
	return n, api.NewOpError("read", err)
}

// ReadVectored reads into the buffers in order, possibly in one
// syscall. Same non-blocking and end-of-stream contract as Read.
func (r *Receiver) ReadVectored(bufs [][]byte) (int, error) {
	n, err := r.fd.Readv(bufs)
	return n, api.NewOpError("readv", err)
}

// SetNonblocking toggles non-blocking mode on the descriptor.
func (r *Receiver) SetNonblocking(nonblocking bool) error {
	return api.NewOpError("set-nonblock", r.fd.SetNonblocking(nonblocking))
}

// Raw returns the descriptor without transferring ownership.
func (r *Receiver) Raw() int {
	return r.fd.Raw()
}

// ReleaseRaw relinquishes ownership of the descriptor without closing
// it and returns it.
func (r *Receiver) ReleaseRaw() int {
	return r.fd.Release()
}

// Close closes the descriptor if still owned. Subsequent writes on the
// peer Sender fail once the kernel notices the reader is gone.
func (r *Receiver) Close() error {
	return r.fd.Close()
}

// Register implements api.Source by forwarding the raw descriptor to
// the registry.
func (r *Receiver) Register(reg api.Registry, tok api.Token, in api.Interest) error {
	return (&SourceFD{FD: r.fd.Raw()}).Register(reg, tok, in)
}

// Reregister implements api.Source.
func (r *Receiver) Reregister(reg api.Registry, tok api.Token, in api.Interest) error {
	return (&SourceFD{FD: r.fd.Raw()}).Reregister(reg, tok, in)
}

// Deregister implements api.Source.
func (r *Receiver) Deregister(reg api.Registry) error {
	return (&SourceFD{FD: r.fd.Raw()}).Deregister(reg)
}
