// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import "fmt"

// Interest is a bitset of readiness kinds a registration wants to be told
// about. The zero value is invalid: Registry.Register/Reregister reject it
// with ErrInvalidInput.
type Interest uint8

const (
	// Readable readiness: the next read is likely to make progress.
	Readable Interest = 1 << iota
	// Writable readiness: the next write is likely to make progress.
	Writable
	// Priority readiness (epoll EPOLLPRI / out-of-band data). Linux only;
	// ignored (never set) by other backends.
	Priority
	// AIO readiness (kqueue EVFILT_AIO). BSD/Darwin only.
	AIO
	// LIO readiness (kqueue EVFILT_LIO). FreeBSD only.
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

// add returns the union of i and other. Union is commutative and idempotent.
func (i Interest) add(other Interest) Interest { return i | other }

// valid reports whether i is a legal, nonzero interest set.
func (i Interest) valid() bool { return i != 0 }

// String implements fmt.Stringer for debugging and log lines.
func (i Interest) String() string {
	if i == 0 {
		return "(none)"
	}
	var parts []string
	if i.IsReadable() {
		parts = append(parts, "READABLE")
	}
	if i.IsWritable() {
		parts = append(parts, "WRITABLE")
	}
	if i.IsPriority() {
		parts = append(parts, "PRIORITY")
	}
	if i.IsAIO() {
		parts = append(parts, "AIO")
	}
	if i.IsLIO() {
		parts = append(parts, "LIO")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}

// Add returns the union of two Interest sets. Exported helper mirroring the
// BitOr a caller would otherwise have to spell out by hand.
func (i Interest) Add(other Interest) Interest { return i.add(other) }

var errZeroInterest = fmt.Errorf("tpoll: interest must be nonzero")
