// File: poller/poller.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral poller contract and the ready-event backlog shared
// by the platform backends.

package poller

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-pipe/api"
)

// waitBatch is how many kernel events one Wait call collects before
// translating. Surplus events beyond the caller's slice go to the
// backlog and are returned by the next Wait.
const waitBatch = 128

// Poller is a readiness registry with a blocking wait. Register,
// Reregister and Deregister are safe for concurrent use; Wait is meant
// to be driven by a single polling goroutine.
type Poller interface {
	api.Registry

	// Wait fills events with pending readiness notifications and
	// returns how many it wrote. A negative timeout blocks until at
	// least one event arrives; zero polls and returns immediately.
	// Interruption by a signal is not an error and reports zero
	// events.
	Wait(events []api.Event, timeout time.Duration) (int, error)

	// Close releases the kernel polling object. Registered
	// descriptors are not closed.
	Close() error
}

// backlog holds translated events that did not fit the caller's slice.
type backlog struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newBacklog() *backlog {
	return &backlog{q: queue.New()}
}

func (b *backlog) push(ev api.Event) {
	b.mu.Lock()
	b.q.Add(ev)
	b.mu.Unlock()
}

// drain moves queued events into the slice and returns the count.
func (b *backlog) drain(events []api.Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for n < len(events) && b.q.Length() > 0 {
		events[n] = b.q.Remove().(api.Event)
		n++
	}
	return n
}
