//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

// File: poller/poller_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub factory for platforms without a supported readiness facility.

package poller

import (
	"fmt"

	"github.com/momentics/hioload-pipe/api"
)

// New reports the platform limitation.
func New() (Poller, error) {
	return nil, fmt.Errorf("poller: %w", api.ErrNotSupported)
}
