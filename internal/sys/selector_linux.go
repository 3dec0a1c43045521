// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build linux

package sys

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/internal/sys/eventdefs"
	"github.com/trpc-group/tpoll/log"
	"github.com/trpc-group/tpoll/metrics"
)

const (
	rflags = unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLHUP | unix.EPOLLERR | unix.EPOLLPRI
	wflags = unix.EPOLLOUT | unix.EPOLLHUP | unix.EPOLLERR
)

func interestToEpoll(interest Interest) uint32 {
	var flags uint32
	if interest.IsReadable() || interest.IsPriority() {
		flags |= rflags
	}
	if interest.IsWritable() {
		flags |= wflags
	}
	return flags
}

// epollSelector is the Linux Selector backend. It owns one epoll instance and
// one eventfd-backed Waker slot, grounded on the teacher's epoll poller but
// reshaped from a callback-driven Wait loop into a batch-returning Select.
type epollSelector struct {
	fd   int
	reg  *registry
	buf  []eventdefs.EpollEvent
	wake *eventfdWaker
}

// NewSelector constructs the platform Selector for the current host.
func NewSelector() (Selector, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, wrapf(os.NewSyscallError("epoll_create1", err), "new selector")
	}
	return &epollSelector{
		fd:  fd,
		reg: newRegistry(),
		buf: make([]eventdefs.EpollEvent, 128),
	}, nil
}

func (s *epollSelector) Register(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	reg, err := s.reg.add(fd, token, interest)
	if err != nil {
		metrics.Add(metrics.RegisterFails, 1)
		return err
	}
	evt := eventdefs.EpollEvent{Events: interestToEpoll(interest)}
	*(**registration)(unsafe.Pointer(&evt.Data)) = reg
	if err := epollCtl(s.fd, unix.EPOLL_CTL_ADD, fd, &evt); err != nil {
		_, _ = s.reg.remove(fd)
		metrics.Add(metrics.RegisterFails, 1)
		return wrapf(os.NewSyscallError("epoll_ctl add", err), "register")
	}
	metrics.Add(metrics.Registers, 1)
	log.Debugf("epoll: registered fd %d token %d interest %v", fd, token, interest)
	return nil
}

func (s *epollSelector) Reregister(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	reg, err := s.reg.update(fd, token, interest)
	if err != nil {
		return err
	}
	evt := eventdefs.EpollEvent{Events: interestToEpoll(interest)}
	*(**registration)(unsafe.Pointer(&evt.Data)) = reg
	if err := epollCtl(s.fd, unix.EPOLL_CTL_MOD, fd, &evt); err != nil {
		return wrapf(os.NewSyscallError("epoll_ctl mod", err), "reregister")
	}
	metrics.Add(metrics.Reregisters, 1)
	return nil
}

func (s *epollSelector) Deregister(fd int) error {
	if _, err := s.reg.remove(fd); err != nil {
		return err
	}
	if err := epollCtl(s.fd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return wrapf(os.NewSyscallError("epoll_ctl del", err), "deregister")
	}
	metrics.Add(metrics.Deregisters, 1)
	return nil
}

func (s *epollSelector) Select(events *Events, timeout *time.Duration) error {
	msec := -1
	switch {
	case timeout == nil:
		msec = -1
	case *timeout <= 0:
		msec = 0
	default:
		msec = int(timeout.Milliseconds())
		if msec == 0 {
			msec = 1
		}
	}
	if msec == 0 {
		metrics.Add(metrics.SelectNoWait, 1)
	}
	metrics.Add(metrics.SelectCalls, 1)

	// epoll_pwait can return EINTR (e.g. the Go runtime's preemption signal)
	// well before the caller's timeout has elapsed. Retry transparently,
	// recomputing the remaining wait from a monotonic clock, so the caller
	// only ever observes a timeout or real events, never the interruption.
	var deadline time.Time
	if msec > 0 {
		deadline = time.Now().Add(time.Duration(msec) * time.Millisecond)
	}
	var n int
	var err error
	for {
		n, err = epollWait(s.fd, s.buf, msec)
		if err != unix.EINTR {
			break
		}
		metrics.Add(metrics.SelectInterrupted, 1)
		if msec > 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				n, err = 0, nil
				break
			}
			msec = int(remaining.Milliseconds())
			if msec == 0 {
				msec = 1
			}
		}
	}
	if err != nil {
		return wrapf(os.NewSyscallError("epoll_wait", err), "select")
	}
	if n == 0 {
		metrics.Add(metrics.SelectTimeouts, 1)
	}
	events.Clear()
	for i := 0; i < n; i++ {
		raw := s.buf[i]
		reg := *(**registration)(unsafe.Pointer(&raw.Data))
		if s.wake != nil && reg == s.wake.reg {
			s.wake.drain()
		}
		events.Append(Event{Token: reg.token, flags: raw.Events})
	}
	metrics.Add(metrics.SelectEvents, uint64(events.Len()))
	log.Debugf("epoll: select returned %d events", events.Len())
	return nil
}

func (s *epollSelector) Close() error {
	if s.wake != nil {
		_ = s.wake.Close()
	}
	return wrapf(os.NewSyscallError("close", unix.Close(s.fd)), "close selector")
}

func (s *epollSelector) NewWaker(token Token) (Waker, error) {
	w, err := newEventfdWaker(s, token)
	if err != nil {
		return nil, err
	}
	s.wake = w
	return w, nil
}

func epollWait(epfd int, events []eventdefs.EpollEvent, msec int) (int, error) {
	var r0 uintptr
	var err error
	p := unsafe.Pointer(&events[0])
	if msec == 0 {
		r0, _, err = unix.RawSyscall6(unix.SYS_EPOLL_PWAIT,
			uintptr(epfd), uintptr(p), uintptr(len(events)), 0, 0, 0)
	} else {
		r0, _, err = unix.Syscall6(unix.SYS_EPOLL_PWAIT,
			uintptr(epfd), uintptr(p), uintptr(len(events)), uintptr(msec), 0, 0)
	}
	if err == unix.Errno(0) {
		err = nil
	}
	return int(r0), err
}

func epollCtl(epfd, op, fd int, evt *eventdefs.EpollEvent) error {
	_, _, err := unix.RawSyscall6(unix.SYS_EPOLL_CTL,
		uintptr(epfd), uintptr(op), uintptr(fd), uintptr(unsafe.Pointer(evt)), 0, 0)
	if err == unix.Errno(0) {
		return nil
	}
	return err
}
