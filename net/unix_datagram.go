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
)

// UnixDatagram is a registrable, non-blocking Unix-domain datagram socket.
type UnixDatagram struct {
	*tpoll.IoSource[fdHandle]
	fd   int
	path string
}

// ListenUnixgram binds a non-blocking Unix-domain datagram socket to path.
func ListenUnixgram(path string) (*UnixDatagram, error) {
	fd, err := newNonblockingSocket(unix.AF_UNIX, unix.SOCK_DGRAM)
	if err != nil {
		return nil, err
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	c := &UnixDatagram{fd: fd, path: path}
	c.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return c, nil
}

// LocalAddr returns the socket's bound path.
func (c *UnixDatagram) LocalAddr() gonet.Addr { return &gonet.UnixAddr{Name: c.path, Net: "unixgram"} }

// ReadFrom performs a single non-blocking receive.
func (c *UnixDatagram) ReadFrom(b []byte) (int, string, error) {
	n, sa, err := unix.Recvfrom(c.fd, b, 0)
	if err != nil {
		return 0, "", err
	}
	if su, ok := sa.(*unix.SockaddrUnix); ok {
		return n, su.Name, nil
	}
	return n, "", nil
}

// WriteTo performs a single non-blocking send to the Unix-domain path addr.
func (c *UnixDatagram) WriteTo(b []byte, addr string) (int, error) {
	if err := unix.Sendto(c.fd, b, 0, &unix.SockaddrUnix{Name: addr}); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close closes the socket and unlinks the bound path.
func (c *UnixDatagram) Close() error {
	err := closeFD(c.fd)
	_ = unix.Unlink(c.path)
	return err
}
