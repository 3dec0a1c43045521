// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build freebsd || dragonfly || darwin

package sys

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/log"
	"github.com/trpc-group/tpoll/metrics"
)

// kqueueSelector is the BSD/Darwin Selector backend, grounded on the
// teacher's kqueue poller but reshaped from a callback-driven Wait loop into
// a batch-returning Select. Unlike epoll, kqueue tracks read and write
// readiness as independent filters sharing one ident (the fd), so
// Register/Reregister issue one kevent change per requested filter.
type kqueueSelector struct {
	fd   int
	reg  *registry
	buf  []unix.Kevent_t
	wake *userEventWaker
}

// NewSelector constructs the platform Selector for the current host.
func NewSelector() (Selector, error) {
	fd, err := unix.Kqueue()
	if err != nil {
		return nil, wrapf(os.NewSyscallError("kqueue", err), "new selector")
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		_ = unix.Close(fd)
		return nil, wrapf(err, "new selector")
	}
	return &kqueueSelector{
		fd:  fd,
		reg: newRegistry(),
		buf: make([]unix.Kevent_t, 128),
	}, nil
}

func changesFor(reg *registration, interest Interest, op uint16) []unix.Kevent_t {
	var changes []unix.Kevent_t
	ident := newKeventIdent(reg.fd)
	if interest.IsReadable() {
		evt := unix.Kevent_t{Ident: ident, Filter: unix.EVFILT_READ, Flags: op}
		*(**registration)(unsafe.Pointer(&evt.Udata)) = reg
		changes = append(changes, evt)
	}
	if interest.IsWritable() {
		evt := unix.Kevent_t{Ident: ident, Filter: unix.EVFILT_WRITE, Flags: op}
		*(**registration)(unsafe.Pointer(&evt.Udata)) = reg
		changes = append(changes, evt)
	}
	return changes
}

func (s *kqueueSelector) Register(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	reg, err := s.reg.add(fd, token, interest)
	if err != nil {
		return err
	}
	changes := changesFor(reg, interest, unix.EV_ADD|unix.EV_ENABLE|unix.EV_RECEIPT)
	if _, err := unix.Kevent(s.fd, changes, nil, nil); err != nil {
		_, _ = s.reg.remove(fd)
		metrics.Add(metrics.RegisterFails, 1)
		return wrapf(os.NewSyscallError("kevent add", err), "register")
	}
	metrics.Add(metrics.Registers, 1)
	log.Debugf("kqueue: registered fd %d token %d interest %v", fd, token, interest)
	return nil
}

func (s *kqueueSelector) Reregister(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	s.reg.mu.Lock()
	old, ok := s.reg.regs[fd]
	s.reg.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	prevInterest := old.interest

	reg, err := s.reg.update(fd, token, interest)
	if err != nil {
		return err
	}

	var changes []unix.Kevent_t
	if prevInterest.IsReadable() && !interest.IsReadable() {
		changes = append(changes, changesFor(reg, Readable, unix.EV_DELETE)...)
	}
	if prevInterest.IsWritable() && !interest.IsWritable() {
		changes = append(changes, changesFor(reg, Writable, unix.EV_DELETE)...)
	}
	var toAdd Interest
	if interest.IsReadable() && !prevInterest.IsReadable() {
		toAdd = toAdd.Add(Readable)
	}
	if interest.IsWritable() && !prevInterest.IsWritable() {
		toAdd = toAdd.Add(Writable)
	}
	if toAdd.valid() {
		changes = append(changes, changesFor(reg, toAdd, unix.EV_ADD|unix.EV_ENABLE|unix.EV_RECEIPT)...)
	}
	if len(changes) == 0 {
		return nil
	}
	if _, err := unix.Kevent(s.fd, changes, nil, nil); err != nil {
		return wrapf(os.NewSyscallError("kevent mod", err), "reregister")
	}
	metrics.Add(metrics.Reregisters, 1)
	return nil
}

func (s *kqueueSelector) Deregister(fd int) error {
	reg, err := s.reg.remove(fd)
	if err != nil {
		return err
	}
	changes := append(
		changesFor(reg, Readable, unix.EV_DELETE),
		changesFor(reg, Writable, unix.EV_DELETE)...,
	)
	if _, err := unix.Kevent(s.fd, changes, nil, nil); err != nil {
		return wrapf(os.NewSyscallError("kevent delete", err), "deregister")
	}
	metrics.Add(metrics.Deregisters, 1)
	return nil
}

func (s *kqueueSelector) Select(events *Events, timeout *time.Duration) error {
	var ts unix.Timespec
	var tsp *unix.Timespec
	if timeout != nil {
		d := *timeout
		if d < 0 {
			d = 0
		}
		ts = unix.NsecToTimespec(d.Nanoseconds())
		tsp = &ts
	}
	if tsp != nil && *tsp == (unix.Timespec{}) {
		metrics.Add(metrics.SelectNoWait, 1)
	}
	metrics.Add(metrics.SelectCalls, 1)
	n, err := unix.Kevent(s.fd, nil, s.buf, tsp)
	if n < 0 && err == unix.EINTR {
		n = 0
		err = nil
		metrics.Add(metrics.SelectInterrupted, 1)
	}
	if err != nil {
		return wrapf(os.NewSyscallError("kevent", err), "select")
	}
	if n == 0 {
		metrics.Add(metrics.SelectTimeouts, 1)
	}
	events.Clear()
	for i := 0; i < n; i++ {
		raw := s.buf[i]
		reg := *(**registration)(unsafe.Pointer(&raw.Udata))
		events.Append(Event{
			Token:  reg.token,
			filter: raw.Filter,
			flags:  raw.Flags,
			fflags: raw.Fflags,
		})
	}
	metrics.Add(metrics.SelectEvents, uint64(events.Len()))
	log.Debugf("kqueue: select returned %d events", events.Len())
	return nil
}

func (s *kqueueSelector) Close() error {
	return wrapf(os.NewSyscallError("close", unix.Close(s.fd)), "close selector")
}

func (s *kqueueSelector) NewWaker(token Token) (Waker, error) {
	w, err := newUserEventWaker(s, token)
	if err != nil {
		return nil, err
	}
	s.wake = w
	return w, nil
}
