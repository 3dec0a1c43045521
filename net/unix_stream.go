// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package net

import (
	gonet "net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll"
)

// UnixStream is a registrable, non-blocking Unix-domain stream connection.
type UnixStream struct {
	*tpoll.IoSource[fdHandle]
	fd     int
	remote *gonet.UnixAddr
}

// DialUnix connects to a Unix-domain listener at path.
func DialUnix(path string) (*UnixStream, error) {
	fd, err := newNonblockingSocket(unix.AF_UNIX, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: path}); err != nil && err != unix.EINPROGRESS {
		_ = closeFD(fd)
		return nil, os.NewSyscallError("connect", err)
	}
	s := &UnixStream{fd: fd, remote: &gonet.UnixAddr{Name: path, Net: "unix"}}
	s.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return s, nil
}

// RemoteAddr returns the peer path the stream was dialed to.
func (s *UnixStream) RemoteAddr() gonet.Addr { return s.remote }

// Read performs a single non-blocking read into b.
func (s *UnixStream) Read(b []byte) (int, error) { return readFD(s.fd, b) }

// Write performs a single non-blocking write of b.
func (s *UnixStream) Write(b []byte) (int, error) { return writeFD(s.fd, b) }

// CloseWrite shuts down the write half, used to drive half-close scenarios.
func (s *UnixStream) CloseWrite() error {
	return os.NewSyscallError("shutdown", unix.Shutdown(s.fd, unix.SHUT_WR))
}

// Close closes the connection.
func (s *UnixStream) Close() error { return closeFD(s.fd) }
