// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build windows

package sys

// Event is the readiness record the Windows backend synthesizes from an IOCP
// completion. Unlike epoll/kqueue, readiness here is inferred from a
// zero-byte overlapped WSARecv/WSASend completing rather than read directly
// off a kernel readiness bitmap, so readable/writable/errored/closed are
// plain fields rather than raw-flag predicates.
type Event struct {
	Token      Token
	readable   bool
	writable   bool
	errored    bool
	readClosed bool
}

// IsReadable reports whether the completion indicates read readiness.
func (e Event) IsReadable() bool { return e.readable }

// IsWritable reports whether the completion indicates write readiness.
func (e Event) IsWritable() bool { return e.writable }

// IsPriority always reports false; out-of-band readiness has no IOCP analog.
func (e Event) IsPriority() bool { return false }

// IsError reports whether the completion carried an unexpected status.
func (e Event) IsError() bool { return e.errored }

// IsReadClosed reports a best-effort read-side shutdown signal: the
// zero-byte WSARecv completed with zero bytes transferred, or with a
// graceful-close status.
func (e Event) IsReadClosed() bool { return e.readClosed }

// IsWriteClosed reports the same shutdown signal as IsError: this backend
// cannot distinguish a broken write side from a generic completion error.
func (e Event) IsWriteClosed() bool { return e.errored }

// IsAIO always reports false; AIO readiness is a kqueue-only concept.
func (e Event) IsAIO() bool { return false }

// IsLIO always reports false; LIO readiness is a kqueue-only concept.
func (e Event) IsLIO() bool { return false }
