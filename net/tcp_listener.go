// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package net

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll"
	"github.com/trpc-group/tpoll/internal/netutil"
)

// TCPListener is a registrable, non-blocking TCP listener. Register it
// READABLE; a readable event means Accept is likely to succeed without
// blocking (level-triggered: it keeps firing while the backlog is
// non-empty).
type TCPListener struct {
	*tpoll.IoSource[fdHandle]
	fd   int
	addr *net.TCPAddr
}

// ListenTCP creates a non-blocking TCP listener bound to address.
func ListenTCP(address string) (*TCPListener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, err
	}
	family := unix.AF_INET
	if tcpAddr.IP.To4() == nil {
		family = unix.AF_INET6
	}
	fd, err := newNonblockingSocket(family, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	if err := setReuseAddr(fd); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	sa, err := netutil.AddrToSockAddr(tcpAddr, tcpAddr)
	if err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	l := &TCPListener{fd: fd, addr: tcpAddr}
	l.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return l, nil
}

// Addr returns the listener's bound local address.
func (l *TCPListener) Addr() net.Addr { return l.addr }

// Accept accepts one pending connection, returning a TCPStream wrapping it.
// It returns a wrapped syscall.EAGAIN when the backlog is currently empty;
// the caller should wait for another readable event before retrying.
func (l *TCPListener) Accept() (*TCPStream, error) {
	nfd, sa, err := netutil.Accept(l.fd)
	if err != nil {
		return nil, err
	}
	raddr, _ := netutil.SockaddrToTCPOrUnixAddr(sa).(*net.TCPAddr)
	s := &TCPStream{fd: nfd, remote: raddr}
	s.IoSource = tpoll.NewIoSource(fdHandle{fd: nfd})
	return s, nil
}

// Close closes the listening socket.
func (l *TCPListener) Close() error { return closeFD(l.fd) }
