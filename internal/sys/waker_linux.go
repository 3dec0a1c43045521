// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build linux

package sys

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/internal/sys/eventdefs"
	"github.com/trpc-group/tpoll/metrics"
)

// eventfdWaker is a Waker backed by a Linux eventfd, grounded on the
// teacher's poller notify/Trigger mechanism. Multiple Wake calls between two
// Select wakeups coalesce into a single delivered event, matching eventfd's
// counter-increment semantics.
type eventfdWaker struct {
	fd  int
	reg *registration
}

func newEventfdWaker(s *epollSelector, token Token) (*eventfdWaker, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, wrapf(os.NewSyscallError("eventfd", err), "new waker")
	}
	reg := &registration{fd: fd, token: token, interest: Readable}
	evt := eventdefs.EpollEvent{Events: unix.EPOLLIN}
	*(**registration)(unsafe.Pointer(&evt.Data)) = reg
	if err := epollCtl(s.fd, unix.EPOLL_CTL_ADD, fd, &evt); err != nil {
		_ = unix.Close(fd)
		return nil, wrapf(os.NewSyscallError("epoll_ctl add", err), "new waker")
	}
	return &eventfdWaker{fd: fd, reg: reg}, nil
}

// Wake increments the eventfd counter, causing a blocked Select to return.
func (w *eventfdWaker) Wake() error {
	metrics.Add(metrics.WakerWakes, 1)
	buf := [8]byte{1, 0, 0, 0, 0, 0, 0, 0}
	for {
		_, err := unix.Write(w.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN {
			// Counter already saturated; an earlier Wake has not yet been
			// drained, which is itself the coalescing behavior we want.
			metrics.Add(metrics.WakerCoalesced, 1)
			return nil
		}
		return wrapf(os.NewSyscallError("write", err), "wake")
	}
}

// drain resets the eventfd counter to zero after a wakeup is observed.
func (w *eventfdWaker) drain() {
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		return
	}
}

// Close releases the eventfd. The caller is responsible for having already
// deregistered it from the selector's epoll instance.
func (w *eventfdWaker) Close() error {
	return wrapf(os.NewSyscallError("close", unix.Close(w.fd)), "close waker")
}
