// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build freebsd || dragonfly || darwin

package sys

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/metrics"
)

// userEventWaker is a Waker backed by kqueue's EVFILT_USER filter, grounded
// on the teacher's notify/Trigger mechanism. EV_CLEAR means multiple Wake
// calls between two Select wakeups coalesce into one delivered event.
type userEventWaker struct {
	reg *registration
	fd  int
}

func newUserEventWaker(s *kqueueSelector, token Token) (*userEventWaker, error) {
	reg := &registration{fd: -1, token: token, interest: Readable}
	evt := unix.Kevent_t{
		Ident:  0,
		Filter: unix.EVFILT_USER,
		Flags:  unix.EV_ADD | unix.EV_CLEAR,
	}
	*(**registration)(unsafe.Pointer(&evt.Udata)) = reg
	if _, err := unix.Kevent(s.fd, []unix.Kevent_t{evt}, nil, nil); err != nil {
		return nil, wrapf(os.NewSyscallError("kevent add|clear", err), "new waker")
	}
	return &userEventWaker{reg: reg, fd: s.fd}, nil
}

// Wake triggers the EVFILT_USER filter, causing a blocked Select to return.
func (w *userEventWaker) Wake() error {
	evt := unix.Kevent_t{
		Ident:  0,
		Filter: unix.EVFILT_USER,
		Fflags: unix.NOTE_TRIGGER,
	}
	for {
		_, err := unix.Kevent(w.fd, []unix.Kevent_t{evt}, nil, nil)
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err == nil {
			metrics.Add(metrics.WakerWakes, 1)
		}
		return wrapf(os.NewSyscallError("kevent trigger", err), "wake")
	}
}

// Close is a no-op: the EVFILT_USER registration is torn down along with the
// kqueue instance itself when the selector closes.
func (w *userEventWaker) Close() error { return nil }
