//go:build darwin || freebsd || netbsd || openbsd || dragonfly

// File: poller/poller_kqueue.go
// Author: momentics <momentics@gmail.com>
//
// kqueue(2) poller backend for Darwin and the BSDs. Read and write
// interest map to separate EVFILT_READ/EVFILT_WRITE filters, so
// registration maintains up to two kernel filters per descriptor.

package poller

import (
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-pipe/api"
)

// kqueuePoller implements Poller over a kqueue instance.
type kqueuePoller struct {
	kq      int
	tokens  sync.Map // map[int]api.Token
	pending *backlog
}

// New constructs the platform poller for kqueue systems.
func New() (Poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, api.NewOpError("kqueue", err)
	}
	unix.CloseOnExec(kq)
	return &kqueuePoller{kq: kq, pending: newBacklog()}, nil
}

// apply submits one filter change for fd.
func (p *kqueuePoller) apply(fd, filter, flags int) error {
	changes := make([]unix.Kevent_t, 1)
	unix.SetKevent(&changes[0], fd, filter, flags)
	_, err := unix.Kevent(p.kq, changes, nil, nil)
	return err
}

// addFilters installs the filters the interest set asks for.
func (p *kqueuePoller) addFilters(fd int, in api.Interest) error {
	if in.IsReadable() {
		if err := p.apply(fd, unix.EVFILT_READ, unix.EV_ADD); err != nil {
			return api.NewOpError("kevent", err)
		}
	}
	if in.IsWritable() {
		if err := p.apply(fd, unix.EVFILT_WRITE, unix.EV_ADD); err != nil {
			return api.NewOpError("kevent", err)
		}
	}
	return nil
}

// dropFilters removes both filters. Absent filters report ENOENT,
// which is not an error here.
func (p *kqueuePoller) dropFilters(fd int) {
	_ = p.apply(fd, unix.EVFILT_READ, unix.EV_DELETE)
	_ = p.apply(fd, unix.EVFILT_WRITE, unix.EV_DELETE)
}

// Register adds fd to the kqueue watch list.
func (p *kqueuePoller) Register(fd int, tok api.Token, in api.Interest) error {
	if err := p.addFilters(fd, in); err != nil {
		return err
	}
	p.tokens.Store(fd, tok)
	return nil
}

// Reregister replaces the token and interest set of a registered fd.
func (p *kqueuePoller) Reregister(fd int, tok api.Token, in api.Interest) error {
	if _, ok := p.tokens.Load(fd); !ok {
		return api.NewOpError("kevent", unix.ENOENT)
	}
	p.dropFilters(fd)
	if err := p.addFilters(fd, in); err != nil {
		return err
	}
	p.tokens.Store(fd, tok)
	return nil
}

// Deregister removes fd from the kqueue watch list.
func (p *kqueuePoller) Deregister(fd int) error {
	if _, ok := p.tokens.Load(fd); !ok {
		return api.NewOpError("kevent", unix.ENOENT)
	}
	p.dropFilters(fd)
	p.tokens.Delete(fd)
	return nil
}

// keventFlags translates one kernel event into api event flags. EV_EOF
// on the read filter marks the peer write half closed; on the write
// filter it marks the peer read half closed. An EV_EOF with a nonzero
// fflags carries the errno of the condition and raises the error flag.
func keventFlags(kev *unix.Kevent_t) api.EventFlag {
	var f api.EventFlag
	switch int(kev.Filter) {
	case unix.EVFILT_READ:
		f |= api.FlagReadable
		if kev.Flags&unix.EV_EOF != 0 {
			f |= api.FlagReadClosed
		}
	case unix.EVFILT_WRITE:
		f |= api.FlagWritable
		if kev.Flags&unix.EV_EOF != 0 {
			f |= api.FlagWriteClosed
		}
	}
	if kev.Flags&unix.EV_ERROR != 0 || (kev.Flags&unix.EV_EOF != 0 && kev.Fflags != 0) {
		f |= api.FlagError
	}
	return f
}

// Wait drains the backlog, then collects and translates kernel events.
func (p *kqueuePoller) Wait(events []api.Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if n := p.pending.drain(events); n > 0 {
		return n, nil
	}

	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}
	var raw [waitBatch]unix.Kevent_t
	n, err := unix.Kevent(p.kq, nil, raw[:], ts)
	if err != nil {
		if err == syscall.EINTR {
			return 0, nil
		}
		return 0, api.NewOpError("kevent", err)
	}

	count := 0
	for i := 0; i < n; i++ {
		val, ok := p.tokens.Load(int(raw[i].Ident))
		if !ok {
			// Deregistered between wakeup and translation.
			continue
		}
		ev := api.Event{Token: val.(api.Token), Flags: keventFlags(&raw[i])}
		if count < len(events) {
			events[count] = ev
			count++
		} else {
			p.pending.push(ev)
		}
	}
	return count, nil
}

// Close releases the kqueue instance.
func (p *kqueuePoller) Close() error {
	return unix.Close(p.kq)
}
