// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package sys

import "github.com/trpc-group/tpoll/internal/locker"

// registration is the record a Unix selector packs a pointer to into the
// kernel event's opaque data field (epoll_event.data / kevent.udata), mirrored
// after the *Desc trick the teacher codebase uses to avoid a map lookup on
// every delivered event. registry additionally keeps registrations reachable
// for the Go garbage collector, since the only other live reference to one is
// the raw pointer handed to the kernel.
type registration struct {
	fd       int
	token    Token
	interest Interest
}

// registry tracks the live registrations of a single selector, keyed by fd.
// It exists purely to root registration values against garbage collection and
// to let Reregister/Deregister find the previous record; the hot path (event
// delivery) never touches it. The critical section is a handful of map
// operations, so a spinlock avoids the syscall-capable path of sync.Mutex
// under contention.
type registry struct {
	mu   locker.Locker
	regs map[int]*registration
}

func newRegistry() *registry {
	return &registry{regs: make(map[int]*registration)}
}

func (r *registry) add(fd int, token Token, interest Interest) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[fd]; ok {
		return nil, ErrAlreadyExists
	}
	reg := &registration{fd: fd, token: token, interest: interest}
	r.regs[fd] = reg
	return reg, nil
}

func (r *registry) update(fd int, token Token, interest Interest) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[fd]
	if !ok {
		return nil, ErrNotFound
	}
	reg.token = token
	reg.interest = interest
	return reg, nil
}

func (r *registry) remove(fd int) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[fd]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.regs, fd)
	return reg, nil
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}
