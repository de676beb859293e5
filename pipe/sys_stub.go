//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris

// File: pipe/sys_stub.go
// Author: momentics <momentics@gmail.com>
//
// Platforms without a native unidirectional pipe with non-blocking
// support (Windows anonymous pipes cannot be polled or made
// non-blocking) are a documented limitation; there is no degraded
// blocking emulation.

package pipe

import (
	"github.com/momentics/hioload-pipe/api"
)

// newPipe reports the platform limitation.
func newPipe() (int, int, error) {
	return -1, -1, api.NewOpError("pipe", api.ErrNotSupported)
}
