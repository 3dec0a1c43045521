// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trpc-group/tpoll/internal/sys"
)

// Source is the capability every registrable object (TCP/UDP/Unix sockets,
// SourceFd, IoSource, Waker) implements. Methods are unexported: a caller
// never invokes them directly, only through Registry.Register/Reregister/
// Deregister, which is what the "capability interface consumed from
// sources" in the readiness model describes.
type Source interface {
	register(registry *Registry, token Token, interest Interest) error
	reregister(registry *Registry, token Token, interest Interest) error
	deregister(registry *Registry) error
}

// fdSource is embedded by every concrete Source to supply the shared
// register/reregister/deregister bookkeeping: tracking which fd is live
// against which Selector, and rejecting a registration against a second,
// different Selector while one is already live. This is the Go rendering of
// the per-source InternalState slot: "if the slot is empty, the source is
// not registered with any selector".
type fdSource struct {
	mu       sync.Mutex
	fd       int
	selector uintptr
	bound    bool
}

func (s *fdSource) register(registry *Registry, token Token, interest Interest, fd int) error {
	sel, err := registry.selector()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound {
		return ErrInvalidInput
	}
	if err := sel.Register(fd, sys.Token(token), toSysInterest(interest)); err != nil {
		return translateErr(err)
	}
	s.fd = fd
	s.selector = registry.selectorID()
	s.bound = true
	return nil
}

func (s *fdSource) reregister(registry *Registry, token Token, interest Interest) error {
	sel, err := registry.selector()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return ErrInvalidInput
	}
	if s.selector != registry.selectorID() {
		return ErrInvalidInput
	}
	if err := sel.Reregister(s.fd, sys.Token(token), toSysInterest(interest)); err != nil {
		return translateErr(err)
	}
	return nil
}

func (s *fdSource) deregister(registry *Registry) error {
	sel, err := registry.selector()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return ErrNotFound
	}
	if s.selector != registry.selectorID() {
		return ErrNotFound
	}
	if err := sel.Deregister(s.fd); err != nil {
		return translateErr(err)
	}
	s.bound = false
	s.selector = 0
	return nil
}

// toSysInterest maps the public Interest bitset onto the internal sys one.
// The two are declared independently (sys stays leaf-level, free of an
// import back up to the public package) but keep identical bit positions,
// so the conversion is a straight bit-for-bit copy rather than a table.
func toSysInterest(i Interest) sys.Interest {
	var out sys.Interest
	if i.IsReadable() {
		out |= sys.Readable
	}
	if i.IsWritable() {
		out |= sys.Writable
	}
	if i.IsPriority() {
		out |= sys.Priority
	}
	if i.IsAIO() {
		out |= sys.AIO
	}
	if i.IsLIO() {
		out |= sys.LIO
	}
	return out
}

// translateErr maps a sys-level sentinel onto its public equivalent,
// preserving the wrapped syscall cause for anything else.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sys.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, sys.ErrAlreadyExists):
		return ErrAlreadyExists
	case errors.Is(err, sys.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, sys.ErrClosed):
		return ErrClosed
	default:
		return wrapf(err, "selector")
	}
}
