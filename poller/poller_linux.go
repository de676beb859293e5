//go:build linux

// File: poller/poller_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7) poller backend.

package poller

import (
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-pipe/api"
)

// epollPoller implements Poller over an epoll instance. Tokens are
// kept in a map keyed by descriptor; the kernel-side event only
// carries the fd back.
type epollPoller struct {
	epfd    int
	tokens  sync.Map // map[int]api.Token
	pending *backlog
}

// New constructs the platform poller for Linux.
func New() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.NewOpError("epoll_create1", err)
	}
	return &epollPoller{epfd: epfd, pending: newBacklog()}, nil
}

// epollInterest translates an interest set into epoll event bits.
// Read interest also subscribes to EPOLLRDHUP so peer write-half
// shutdown is observable.
func epollInterest(in api.Interest) uint32 {
	var events uint32
	if in.IsReadable() {
		events |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if in.IsWritable() {
		events |= unix.EPOLLOUT
	}
	return events
}

// epollFlags translates kernel event bits into api event flags.
// EPOLLERR and EPOLLHUP are delivered regardless of interest; both
// raise the error flag alongside the matching half-closed flag, since
// neither alone is reliable across platforms.
func epollFlags(events uint32) api.EventFlag {
	var f api.EventFlag
	if events&(unix.EPOLLIN|unix.EPOLLPRI) != 0 {
		f |= api.FlagReadable
	}
	if events&unix.EPOLLOUT != 0 {
		f |= api.FlagWritable
	}
	if events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		f |= api.FlagError
	}
	if events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
		f |= api.FlagReadClosed
	}
	if events&unix.EPOLLHUP != 0 || (events&unix.EPOLLERR != 0 && events&unix.EPOLLOUT != 0) {
		f |= api.FlagWriteClosed
	}
	return f
}

// Register adds fd to the epoll watch list.
func (p *epollPoller) Register(fd int, tok api.Token, in api.Interest) error {
	ev := unix.EpollEvent{Events: epollInterest(in), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return api.NewOpError("epoll_ctl", err)
	}
	p.tokens.Store(fd, tok)
	return nil
}

// Reregister replaces the token and interest set of a registered fd.
func (p *epollPoller) Reregister(fd int, tok api.Token, in api.Interest) error {
	ev := unix.EpollEvent{Events: epollInterest(in), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return api.NewOpError("epoll_ctl", err)
	}
	p.tokens.Store(fd, tok)
	return nil
}

// Deregister removes fd from the epoll watch list.
func (p *epollPoller) Deregister(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return api.NewOpError("epoll_ctl", err)
	}
	p.tokens.Delete(fd)
	return nil
}

// Wait drains the backlog, then collects and translates kernel events.
func (p *epollPoller) Wait(events []api.Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if n := p.pending.drain(events); n > 0 {
		return n, nil
	}

	msec := -1
	if timeout >= 0 {
		msec = int(timeout / time.Millisecond)
	}
	var raw [waitBatch]unix.EpollEvent
	n, err := unix.EpollWait(p.epfd, raw[:], msec)
	if err != nil {
		if err == syscall.EINTR {
			return 0, nil
		}
		return 0, api.NewOpError("epoll_wait", err)
	}

	count := 0
	for i := 0; i < n; i++ {
		val, ok := p.tokens.Load(int(raw[i].Fd))
		if !ok {
			// Deregistered between wakeup and translation.
			continue
		}
		ev := api.Event{Token: val.(api.Token), Flags: epollFlags(raw[i].Events)}
		if count < len(events) {
			events[count] = ev
			count++
		} else {
			p.pending.push(ev)
		}
	}
	return count, nil
}

// Close releases the epoll instance.
func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}
