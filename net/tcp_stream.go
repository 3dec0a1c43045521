// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package net

import (
	"net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll"
	"github.com/trpc-group/tpoll/internal/netutil"
)

// TCPStream is a registrable, non-blocking TCP connection. Register it
// WRITABLE to learn when a non-blocking connect has completed (or failed);
// register it READABLE to learn when Read is likely to make progress.
type TCPStream struct {
	*tpoll.IoSource[fdHandle]
	fd     int
	remote *net.TCPAddr
}

// DialTCP starts a non-blocking connect to address. The connect is typically
// still in progress when this returns; register the stream WRITABLE and
// check Error after the first writable event to learn the outcome.
func DialTCP(address string) (*TCPStream, error) {
	raddr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, err
	}
	family := unix.AF_INET
	if raddr.IP.To4() == nil {
		family = unix.AF_INET6
	}
	fd, err := newNonblockingSocket(family, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	sa, err := netutil.AddrToSockAddr(raddr, raddr)
	if err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
		_ = closeFD(fd)
		return nil, os.NewSyscallError("connect", err)
	}
	s := &TCPStream{fd: fd, remote: raddr}
	s.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return s, nil
}

// FromTCPConn adopts an existing *net.TCPConn, handing its descriptor to
// tpoll instead of the Go runtime's netpoller. The original conn is closed;
// the returned TCPStream owns a non-blocking duplicate of its descriptor.
// Useful for callers who obtained the connection through a stdlib API (for
// instance after a TLS handshake) but want tpoll-driven readiness from here
// on.
func FromTCPConn(conn *net.TCPConn) (*TCPStream, error) {
	fd, err := netutil.DupFD(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	remote, _ := conn.RemoteAddr().(*net.TCPAddr)
	_ = conn.Close()
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = closeFD(fd)
		return nil, os.NewSyscallError("setnonblock", err)
	}
	unix.CloseOnExec(fd)
	s := &TCPStream{fd: fd, remote: remote}
	s.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return s, nil
}

// RemoteAddr returns the peer address the stream was dialed to.
func (s *TCPStream) RemoteAddr() net.Addr { return s.remote }

// Read performs a single non-blocking read into b.
func (s *TCPStream) Read(b []byte) (int, error) { return readFD(s.fd, b) }

// Write performs a single non-blocking write of b.
func (s *TCPStream) Write(b []byte) (int, error) { return writeFD(s.fd, b) }

// CloseWrite shuts down the write half, used to drive half-close scenarios.
func (s *TCPStream) CloseWrite() error {
	return os.NewSyscallError("shutdown", unix.Shutdown(s.fd, unix.SHUT_WR))
}

// Error retrieves and clears the socket's pending error (SO_ERROR), the
// standard way to learn whether a non-blocking connect succeeded.
func (s *TCPStream) Error() error {
	errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return os.NewSyscallError("getsockopt", err)
	}
	if errno != 0 {
		return os.NewSyscallError("connect", unix.Errno(errno))
	}
	return nil
}

// SetKeepAlive enables TCP keepalive on the connection with the given probe
// interval in seconds.
func (s *TCPStream) SetKeepAlive(secs int) error {
	return netutil.SetKeepAlive(s.fd, secs)
}

// Close closes the connection.
func (s *TCPStream) Close() error { return closeFD(s.fd) }
