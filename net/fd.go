// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

// Package net provides concrete, registrable socket sources (TCP, UDP and
// Unix-domain) built directly on raw non-blocking file descriptors rather
// than on the standard library's net package. A net.Conn's read/write
// methods park the calling goroutine in the Go runtime's own netpoller,
// which would race with a tpoll Selector watching the same fd; these types
// instead expose raw, would-block-returning Read/Write so the caller drives
// I/O itself after a tpoll.Poll call reports readiness, exactly as the
// capability interface in the core package expects of a source.
package net

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/internal/netutil"
)

// RawFD extracts the underlying file descriptor of any stdlib socket type
// satisfying syscall.Conn (*net.TCPConn, *net.UDPConn, *net.TCPListener,
// ...), for registering it through tpoll.NewSourceFd directly. Unlike
// FromTCPConn this does not duplicate the descriptor: the caller must not
// also drive the original conn's blocking Read/Write/Accept once its fd is
// under tpoll's control, since both would race over the same descriptor.
func RawFD(socket interface{}) (int, error) {
	return netutil.GetFD(socket)
}

// fdHandle adapts a raw descriptor to tpoll.RawDescriptor.
type fdHandle struct {
	fd int
}

// RawDescriptor returns the wrapped file descriptor.
func (f fdHandle) RawDescriptor() int { return f.fd }

func newNonblockingSocket(family, sotype int) (int, error) {
	fd, err := unix.Socket(family, sotype, 0)
	if err != nil {
		return -1, os.NewSyscallError("socket", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, os.NewSyscallError("setnonblock", err)
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

func setReuseAddr(fd int) error {
	return os.NewSyscallError("setsockopt", unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1))
}

// readFD performs a single non-blocking read, returning (0, syscall.EAGAIN)
// (wrapped) when no data is currently available rather than blocking.
func readFD(fd int, b []byte) (int, error) {
	n, err := unix.Read(fd, b)
	if err != nil {
		return 0, os.NewSyscallError("read", err)
	}
	return n, nil
}

func writeFD(fd int, b []byte) (int, error) {
	n, err := unix.Write(fd, b)
	if err != nil {
		return 0, os.NewSyscallError("write", err)
	}
	return n, nil
}

func closeFD(fd int) error {
	return os.NewSyscallError("close", unix.Close(fd))
}
