// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import "github.com/trpc-group/tpoll/internal/sys"

// Event is a thin, per-access view over one platform readiness record. It
// carries a token and a set of readiness predicates derived directly from
// the kernel record that produced it; constructing one never allocates.
type Event struct {
	inner sys.Event
}

// Token returns the token the event's registration was last associated with.
func (e Event) Token() Token { return Token(e.inner.Token) }

// IsReadable reports read readiness.
func (e Event) IsReadable() bool { return e.inner.IsReadable() }

// IsWritable reports write readiness.
func (e Event) IsWritable() bool { return e.inner.IsWritable() }

// IsError reports that the kernel flagged an error condition on the source.
// Callers that need the concrete cause should consult the source itself
// (e.g. getsockopt SO_ERROR); the selector does not retrieve it.
func (e Event) IsError() bool { return e.inner.IsError() }

// IsReadClosed is a best-effort signal that the read side has been closed:
// never a false positive, occasionally a false negative.
func (e Event) IsReadClosed() bool { return e.inner.IsReadClosed() }

// IsWriteClosed is a best-effort signal that the write side has been closed,
// with the same false-negative-only guarantee as IsReadClosed.
func (e Event) IsWriteClosed() bool { return e.inner.IsWriteClosed() }

// IsPriority reports out-of-band readiness. Only ever true on Linux.
func (e Event) IsPriority() bool { return e.inner.IsPriority() }

// IsAIO reports kqueue EVFILT_AIO readiness. Only ever true on BSD/Darwin.
func (e Event) IsAIO() bool { return e.inner.IsAIO() }

// IsLIO reports kqueue EVFILT_LIO readiness. Only ever true on FreeBSD.
func (e Event) IsLIO() bool { return e.inner.IsLIO() }
