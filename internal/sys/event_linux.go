// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build linux

package sys

import "golang.org/x/sys/unix"

// Event is the readiness record epoll delivers for a single registration.
// flags carries the raw EPOLL* bits so the predicate methods can stay level
// semantics regardless of which bits the kernel happened to coalesce.
type Event struct {
	Token Token
	flags uint32
}

// IsReadable reports read readiness: EPOLLIN or EPOLLPRI.
func (e Event) IsReadable() bool { return e.flags&(unix.EPOLLIN|unix.EPOLLPRI) != 0 }

// IsWritable reports write readiness: EPOLLOUT.
func (e Event) IsWritable() bool { return e.flags&unix.EPOLLOUT != 0 }

// IsPriority reports out-of-band readiness: EPOLLPRI.
func (e Event) IsPriority() bool { return e.flags&unix.EPOLLPRI != 0 }

// IsError reports EPOLLERR. The caller is expected to perform getsockopt
// SO_ERROR to retrieve the concrete cause; the selector does not do it on
// the caller's behalf.
func (e Event) IsError() bool { return e.flags&unix.EPOLLERR != 0 }

// IsReadClosed reports a best-effort read-side shutdown signal: EPOLLRDHUP
// (peer half-closed) or EPOLLHUP combined with no outstanding write interest.
func (e Event) IsReadClosed() bool {
	return e.flags&(unix.EPOLLRDHUP|unix.EPOLLHUP) != 0
}

// IsWriteClosed reports a best-effort write-side shutdown signal: EPOLLHUP
// or EPOLLERR observed while writable was requested.
func (e Event) IsWriteClosed() bool {
	return e.flags&(unix.EPOLLHUP|unix.EPOLLERR) != 0
}

// IsAIO always reports false; AIO readiness is a kqueue-only concept.
func (e Event) IsAIO() bool { return false }

// IsLIO always reports false; LIO readiness is a kqueue-only concept.
func (e Event) IsLIO() bool { return false }
