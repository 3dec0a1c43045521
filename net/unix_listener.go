// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package net

import (
	gonet "net"

	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll"
	"github.com/trpc-group/tpoll/internal/netutil"
)

// UnixListener is a registrable, non-blocking Unix-domain stream listener.
type UnixListener struct {
	*tpoll.IoSource[fdHandle]
	fd   int
	path string
}

// ListenUnix creates a non-blocking Unix-domain listener bound to path.
func ListenUnix(path string) (*UnixListener, error) {
	fd, err := newNonblockingSocket(unix.AF_UNIX, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	l := &UnixListener{fd: fd, path: path}
	l.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return l, nil
}

// Addr returns the listener's bound path as a net.UnixAddr.
func (l *UnixListener) Addr() gonet.Addr { return &gonet.UnixAddr{Name: l.path, Net: "unix"} }

// Accept accepts one pending connection, returning a UnixStream wrapping it.
func (l *UnixListener) Accept() (*UnixStream, error) {
	nfd, sa, err := netutil.Accept(l.fd)
	if err != nil {
		return nil, err
	}
	raddr, _ := netutil.SockaddrToTCPOrUnixAddr(sa).(*gonet.UnixAddr)
	s := &UnixStream{fd: nfd, remote: raddr}
	s.IoSource = tpoll.NewIoSource(fdHandle{fd: nfd})
	return s, nil
}

// Close closes the listening socket and unlinks the bound path.
func (l *UnixListener) Close() error {
	err := closeFD(l.fd)
	_ = unix.Unlink(l.path)
	return err
}
