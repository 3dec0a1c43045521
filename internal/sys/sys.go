// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

// Package sys implements the platform Selector: the multiplexer adapter that
// turns epoll, kqueue or an IOCP completion port into the uniform
// register/reregister/deregister/select contract the public tpoll package
// builds on. Nothing outside this package (and its per-OS files) knows
// whether the host speaks epoll, kqueue or AFD-style overlapped polling.
package sys

// Token mirrors tpoll.Token. It is redeclared here (rather than imported)
// so this package stays leaf-level and free of a dependency back on the
// public API it implements.
type Token uintptr

// Interest mirrors tpoll.Interest bit-for-bit; the public package casts
// between the two at the Registry boundary.
type Interest uint8

// Interest bit values. Must stay in lockstep with the tpoll.Interest consts.
const (
	Readable Interest = 1 << iota
	Writable
	Priority
	AIO
	LIO
)

// IsReadable reports whether i requests Readable readiness.
func (i Interest) IsReadable() bool { return i&Readable != 0 }

// IsWritable reports whether i requests Writable readiness.
func (i Interest) IsWritable() bool { return i&Writable != 0 }

// IsPriority reports whether i requests Priority readiness.
func (i Interest) IsPriority() bool { return i&Priority != 0 }

// IsAIO reports whether i requests AIO readiness.
func (i Interest) IsAIO() bool { return i&AIO != 0 }

// IsLIO reports whether i requests LIO readiness.
func (i Interest) IsLIO() bool { return i&LIO != 0 }

// valid reports whether i is a legal, nonzero interest set.
func (i Interest) valid() bool { return i != 0 }
