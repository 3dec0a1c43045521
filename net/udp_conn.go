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

	goreuseport "github.com/kavu/go_reuseport"
	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll"
	"github.com/trpc-group/tpoll/internal/netutil"
)

// UDPConn is a registrable, non-blocking UDP socket. UDP sockets are almost
// always writable; READABLE registration reports when RecvFrom is likely to
// return a packet.
type UDPConn struct {
	*tpoll.IoSource[fdHandle]
	fd    int
	laddr *net.UDPAddr
}

// ListenUDP binds a non-blocking UDP socket to address.
func ListenUDP(address string) (*UDPConn, error) {
	laddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, err
	}
	family := unix.AF_INET
	if laddr.IP != nil && laddr.IP.To4() == nil {
		family = unix.AF_INET6
	}
	fd, err := newNonblockingSocket(family, unix.SOCK_DGRAM)
	if err != nil {
		return nil, err
	}
	sa, err := netutil.AddrToSockAddr(laddr, laddr)
	if err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		_ = closeFD(fd)
		return nil, err
	}
	c := &UDPConn{fd: fd, laddr: laddr}
	c.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return c, nil
}

// ListenUDPReusePort binds a non-blocking UDP socket to address with
// SO_REUSEPORT set, letting several processes or several tpoll.Poll
// instances in one process each hold a bound listener on the same port and
// let the kernel load-balance datagrams across them. The socket is created
// through go_reuseport rather than by hand because it already carries the
// platform-specific SO_REUSEPORT constant and sockaddr construction.
func ListenUDPReusePort(address string) (*UDPConn, error) {
	pc, err := goreuseport.ListenPacket("udp", address)
	if err != nil {
		return nil, err
	}
	udpConn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, os.ErrInvalid
	}
	laddr, _ := udpConn.LocalAddr().(*net.UDPAddr)
	// File() duplicates the descriptor into file; that duplicate is the one
	// this UDPConn keeps, so the original udpConn is closed once taken, but
	// file itself must stay open since closing it closes the fd it names.
	file, err := udpConn.File()
	_ = udpConn.Close()
	if err != nil {
		return nil, err
	}
	fd := int(file.Fd())
	// The duplicate inherits blocking mode from the original socket.
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = file.Close()
		return nil, os.NewSyscallError("setnonblock", err)
	}
	unix.CloseOnExec(fd)

	c := &UDPConn{fd: fd, laddr: laddr}
	c.IoSource = tpoll.NewIoSource(fdHandle{fd: fd})
	return c, nil
}

// LocalAddr returns the socket's bound local address.
func (c *UDPConn) LocalAddr() net.Addr { return c.laddr }

// ReadFrom performs a single non-blocking receive.
func (c *UDPConn) ReadFrom(b []byte) (int, net.Addr, error) {
	n, sa, err := unix.Recvfrom(c.fd, b, 0)
	if err != nil {
		return 0, nil, err
	}
	return n, netutil.SockaddrToUDPAddr(sa), nil
}

// WriteTo performs a single non-blocking send to addr.
func (c *UDPConn) WriteTo(b []byte, addr *net.UDPAddr) (int, error) {
	sa, err := netutil.AddrToSockAddr(addr, addr)
	if err != nil {
		return 0, err
	}
	if err := unix.Sendto(c.fd, b, 0, sa); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close closes the socket.
func (c *UDPConn) Close() error { return closeFD(c.fd) }
