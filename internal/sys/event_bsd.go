// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build freebsd || dragonfly || darwin

package sys

import "golang.org/x/sys/unix"

// Event is the readiness record kqueue delivers for a single registration.
// filter and flags carry the raw EVFILT_*/EV_* bits the kevent syscall
// returned, so the predicate methods stay level semantics regardless of how
// the kernel coalesced them.
type Event struct {
	Token  Token
	filter int16
	flags  uint16
	fflags uint32
}

// IsReadable reports read readiness: EVFILT_READ.
func (e Event) IsReadable() bool { return e.filter == unix.EVFILT_READ }

// IsWritable reports write readiness: EVFILT_WRITE.
func (e Event) IsWritable() bool { return e.filter == unix.EVFILT_WRITE }

// IsPriority always reports false; kqueue has no out-of-band filter distinct
// from EVFILT_READ.
func (e Event) IsPriority() bool { return false }

// IsError reports EV_ERROR.
func (e Event) IsError() bool { return e.flags&unix.EV_ERROR != 0 }

// IsReadClosed reports a best-effort read-side shutdown signal: EVFILT_READ
// combined with EV_EOF.
func (e Event) IsReadClosed() bool {
	return e.filter == unix.EVFILT_READ && e.flags&unix.EV_EOF != 0
}

// IsWriteClosed reports a best-effort write-side shutdown signal: EVFILT_WRITE
// combined with EV_EOF, or EV_ERROR on either filter.
func (e Event) IsWriteClosed() bool {
	if e.flags&unix.EV_ERROR != 0 {
		return true
	}
	return e.filter == unix.EVFILT_WRITE && e.flags&unix.EV_EOF != 0
}

// IsAIO reports EVFILT_AIO readiness.
func (e Event) IsAIO() bool { return e.filter == unix.EVFILT_AIO }

// IsLIO reports EVFILT_LIO readiness. FreeBSD only; always false elsewhere.
func (e Event) IsLIO() bool { return int(e.filter) == evfiltLIO }
