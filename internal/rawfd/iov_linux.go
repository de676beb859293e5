//go:build linux

// File: internal/rawfd/iov_linux.go
// Author: momentics <momentics@gmail.com>
//
// Vectored I/O through readv(2)/writev(2).

package rawfd

import (
	"golang.org/x/sys/unix"
)

// Readv reads into the buffers in order with a single readv call.
func (fd *FD) Readv(bufs [][]byte) (int, error) {
	n, err := unix.Readv(fd.raw, bufs)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Writev writes the buffers in order with a single writev call.
func (fd *FD) Writev(bufs [][]byte) (int, error) {
	n, err := unix.Writev(fd.raw, bufs)
	if n < 0 {
		n = 0
	}
	return n, err
}
