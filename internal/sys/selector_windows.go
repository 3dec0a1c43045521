// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build windows

package sys

import (
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/trpc-group/tpoll/log"
	"github.com/trpc-group/tpoll/metrics"
)

// iocpSelector emulates the Unix register/reregister/deregister/select
// contract on top of a single IOCP completion port. There is no portable way
// to ask Windows "is this socket readable" the way epoll/kqueue do; instead
// each armed interest posts a zero-byte overlapped WSARecv or WSASend and
// treats its completion as one readiness edge, then re-arms it. Grounded on
// the zero-byte-probe pattern of Orizon's experimental IOCP poller, adapted
// from a callback dispatcher into SockState-tracked slots a batch Select call
// drains.
type iocpSelector struct {
	port windows.Handle

	mu   sync.Mutex
	regs map[int]*winSlot

	wakeToken Token
	hasWaker  bool
}

const wakeCompletionKey = ^uintptr(0)

// NewSelector constructs the platform Selector for the current host.
func NewSelector() (Selector, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, wrapf(err, "new selector")
	}
	return &iocpSelector{
		port: port,
		regs: make(map[int]*winSlot),
	}, nil
}

func (s *iocpSelector) Register(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	sock := windows.Handle(fd)

	s.mu.Lock()
	if _, ok := s.regs[fd]; ok {
		s.mu.Unlock()
		return ErrAlreadyExists
	}
	slot := &winSlot{sock: sock, token: token, interest: interest, state: stateNew}
	s.regs[fd] = slot
	s.mu.Unlock()

	if _, err := windows.CreateIoCompletionPort(sock, s.port, uintptr(fd), 0); err != nil {
		s.mu.Lock()
		delete(s.regs, fd)
		s.mu.Unlock()
		metrics.Add(metrics.RegisterFails, 1)
		return wrapf(err, "register: associate with completion port")
	}
	s.arm(slot, interest)
	metrics.Add(metrics.Registers, 1)
	log.Debugf("iocp: registered fd %d token %d interest %v", fd, token, interest)
	return nil
}

func (s *iocpSelector) Reregister(fd int, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	s.mu.Lock()
	slot, ok := s.regs[fd]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	slot.mu.Lock()
	slot.token = token
	slot.interest = interest
	slot.mu.Unlock()

	s.arm(slot, interest)
	metrics.Add(metrics.Reregisters, 1)
	return nil
}

func (s *iocpSelector) Deregister(fd int) error {
	s.mu.Lock()
	slot, ok := s.regs[fd]
	if ok {
		delete(s.regs, fd)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	slot.mu.Lock()
	slot.state = stateDeleted
	slot.mu.Unlock()
	_ = windows.CancelIoEx(slot.sock, nil)
	metrics.Add(metrics.Deregisters, 1)
	return nil
}

// arm posts whichever zero-byte probes interest requires and are not
// already in flight.
func (s *iocpSelector) arm(slot *winSlot, interest Interest) {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.state == stateDeleted {
		return
	}
	if interest.IsReadable() && slot.readOv == nil {
		ov := &winOverlapped{slot: slot}
		slot.readOv = ov
		var buf windows.WSABuf
		var flags uint32
		_ = windows.WSARecv(slot.sock, &buf, 1, nil, &flags, &ov.Overlapped, nil)
	}
	if interest.IsWritable() && slot.writeOv == nil {
		ov := &winOverlapped{slot: slot, isSend: true}
		slot.writeOv = ov
		var buf windows.WSABuf
		_ = windows.WSASend(slot.sock, &buf, 1, nil, 0, &ov.Overlapped, nil)
	}
	slot.state = statePending
}

func (s *iocpSelector) Select(events *Events, timeout *time.Duration) error {
	ms := uint32(windows.INFINITE)
	switch {
	case timeout == nil:
		ms = windows.INFINITE
	case *timeout <= 0:
		ms = 0
	default:
		ms = uint32(timeout.Milliseconds())
	}

	if ms == 0 {
		metrics.Add(metrics.SelectNoWait, 1)
	}
	metrics.Add(metrics.SelectCalls, 1)

	entries := make([]windows.OverlappedEntry, events.Cap())
	var n uint32
	err := windows.GetQueuedCompletionStatusEx(s.port, entries, &n, ms, false)
	events.Clear()
	if err == windows.WAIT_TIMEOUT {
		metrics.Add(metrics.SelectTimeouts, 1)
		return nil
	}
	if err != nil {
		return wrapf(err, "select")
	}
	for i := uint32(0); i < n; i++ {
		entry := entries[i]
		if entry.CompletionKey == wakeCompletionKey {
			if s.hasWaker {
				events.Append(Event{Token: s.wakeToken})
			}
			continue
		}
		if entry.Overlapped == nil {
			continue
		}
		ov := (*winOverlapped)(unsafe.Pointer(entry.Overlapped))
		slot := ov.slot
		if slot == nil {
			continue
		}
		s.handleCompletion(slot, ov, entry.BytesTransferred, events)
	}
	metrics.Add(metrics.SelectEvents, uint64(events.Len()))
	log.Debugf("iocp: select returned %d events", events.Len())
	return nil
}

func (s *iocpSelector) handleCompletion(slot *winSlot, ov *winOverlapped, transferred uint32, events *Events) {
	slot.mu.Lock()
	if slot.state == stateDeleted {
		slot.mu.Unlock()
		return
	}
	if ov.isSend {
		slot.writeOv = nil
	} else {
		slot.readOv = nil
	}
	interest, token := slot.interest, slot.token
	slot.mu.Unlock()

	ev := Event{Token: token}
	if ov.isSend {
		ev.writable = true
	} else {
		ev.readable = true
		if transferred == 0 {
			ev.readClosed = true
		}
	}
	events.Append(ev)

	// Re-arm so the next readiness edge on this fd is still observed.
	s.arm(slot, interest)
}

func (s *iocpSelector) Close() error {
	return wrapf(windows.CloseHandle(s.port), "close selector")
}

func (s *iocpSelector) NewWaker(token Token) (Waker, error) {
	s.mu.Lock()
	s.wakeToken = token
	s.hasWaker = true
	s.mu.Unlock()
	return &iocpWaker{port: s.port}, nil
}
