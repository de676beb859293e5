//go:build linux || freebsd || netbsd || openbsd || dragonfly

// File: pipe/sys_pipe2.go
// Author: momentics <momentics@gmail.com>
//
// Atomic creation path: pipe2(2) applies O_NONBLOCK and O_CLOEXEC in
// the creating syscall, so no window exists where the descriptors are
// observable without them.

package pipe

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-pipe/api"
)

// newPipe returns (read fd, write fd).
func newPipe() (int, int, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return -1, -1, api.NewOpError("pipe2", err)
	}
	return fds[0], fds[1], nil
}
