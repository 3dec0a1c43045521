// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

// RawDescriptor is implemented by any caller-owned value that can hand back
// the native handle the Selector registers: a file descriptor on Unix, a
// SOCKET/HANDLE value (widened to int) on Windows.
type RawDescriptor interface {
	RawDescriptor() int
}

// IoSource is a generic pass-through capability wrapper around any T that
// knows its own raw descriptor. It is the Go rendering of IoSource<T:
// AsRawSocket>: a source that delegates register/reregister/deregister to
// the Selector using T's native handle, without T having to implement the
// Source interface itself. On Windows the per-source SockState lifecycle
// (see internal/sys) is tracked by the Selector keyed on that same handle,
// so IoSource needs no additional state of its own.
type IoSource[T RawDescriptor] struct {
	fdSource
	inner T
}

// NewIoSource wraps inner for registration.
func NewIoSource[T RawDescriptor](inner T) *IoSource[T] {
	return &IoSource[T]{inner: inner}
}

// Inner returns the wrapped value.
func (s *IoSource[T]) Inner() T { return s.inner }

func (s *IoSource[T]) register(registry *Registry, token Token, interest Interest) error {
	return s.fdSource.register(registry, token, interest, s.inner.RawDescriptor())
}

func (s *IoSource[T]) reregister(registry *Registry, token Token, interest Interest) error {
	return s.fdSource.reregister(registry, token, interest)
}

func (s *IoSource[T]) deregister(registry *Registry) error {
	return s.fdSource.deregister(registry)
}
