// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && !arm64 && !loong64 && !mips && !mipsle

// Package eventdefs provides architecture-specific layouts of the raw epoll
// event record, so that a pointer can be packed into and recovered from the
// event's opaque data field regardless of host word size and alignment.
package eventdefs

// EpollEvent mirrors the kernel's struct epoll_event layout for amd64, 386 and arm.
type EpollEvent struct {
	Events uint32
	_      [4]byte
	Data   [8]byte
}
