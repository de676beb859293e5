//go:build darwin || solaris

// File: pipe/sys_fcntl.go
// Author: momentics <momentics@gmail.com>
//
// Fallback creation path for platforms without pipe2(2): create the
// plain pipe, then configure each descriptor. A configuration failure
// closes both descriptors before returning, so the caller never sees
// a half-configured pipe and nothing leaks.

package pipe

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-pipe/api"
)

// newPipe returns (read fd, write fd).
func newPipe() (int, int, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return -1, -1, api.NewOpError("pipe", err)
	}
	for _, fd := range fds {
		if err := unix.SetNonblock(fd, true); err != nil {
			closePair(fds)
			return -1, -1, api.NewOpError("fcntl", err)
		}
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
			closePair(fds)
			return -1, -1, api.NewOpError("fcntl", err)
		}
	}
	return fds[0], fds[1], nil
}

// closePair closes both descriptors. The close errors have nowhere to
// go; the fcntl error already on its way out is the one that matters.
func closePair(fds [2]int) {
	_ = unix.Close(fds[0])
	_ = unix.Close(fds[1])
}
