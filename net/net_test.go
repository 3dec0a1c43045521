// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package net

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trpc-group/tpoll"
)

func pollUntil(t *testing.T, p *tpoll.Poll, events *tpoll.Events, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatal("timed out waiting for events")
		}
		require.NoError(t, p.Poll(events, &remaining))
		if events.Len() > 0 {
			return
		}
	}
}

// TestLoopbackTCP exercises a full listen/dial/accept/write/read cycle
// driven entirely by tpoll readiness notifications.
func TestLoopbackTCP(t *testing.T) {
	p, err := tpoll.New()
	require.NoError(t, err)
	defer p.Close()

	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	require.NoError(t, p.Registry().Register(ln, tpoll.Token(0), tpoll.Readable))

	stream, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer stream.Close()
	require.NoError(t, p.Registry().Register(stream, tpoll.Token(1), tpoll.Writable))

	events := tpoll.NewEvents(8)
	pollUntil(t, p, events, 2*time.Second)

	var sawListener, sawStream bool
	events.Range(func(e tpoll.Event) bool {
		switch e.Token() {
		case tpoll.Token(0):
			sawListener = e.IsReadable()
		case tpoll.Token(1):
			sawStream = e.IsWritable()
		}
		return true
	})
	assert.True(t, sawListener)
	assert.True(t, sawStream)

	accepted, err := ln.Accept()
	require.NoError(t, err)
	defer accepted.Close()

	_, err = stream.Write([]byte("ping"))
	require.NoError(t, err)

	require.NoError(t, p.Registry().Register(accepted, tpoll.Token(2), tpoll.Readable))
	events2 := tpoll.NewEvents(8)
	pollUntil(t, p, events2, 2*time.Second)

	var gotAcceptedReadable bool
	events2.Range(func(e tpoll.Event) bool {
		if e.Token() == tpoll.Token(2) && e.IsReadable() {
			gotAcceptedReadable = true
		}
		return true
	})
	require.True(t, gotAcceptedReadable)

	buf := make([]byte, 16)
	n, err := accepted.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

// TestHalfClose exercises shutting down the write half of one endpoint of an
// established pair and observing the read-closed signal on the other.
func TestHalfClose(t *testing.T) {
	p, err := tpoll.New()
	require.NoError(t, err)
	defer p.Close()

	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	client, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, p.Registry().Register(ln, tpoll.Token(0), tpoll.Readable))
	events := tpoll.NewEvents(4)
	pollUntil(t, p, events, 2*time.Second)

	server, err := ln.Accept()
	require.NoError(t, err)
	defer server.Close()
	require.NoError(t, p.Registry().Register(server, tpoll.Token(1), tpoll.Readable))

	require.NoError(t, client.CloseWrite())

	events2 := tpoll.NewEvents(4)
	pollUntil(t, p, events2, 2*time.Second)

	var sawReadClosed bool
	events2.Range(func(e tpoll.Event) bool {
		if e.Token() == tpoll.Token(1) && e.IsReadClosed() {
			sawReadClosed = true
		}
		return true
	})
	assert.True(t, sawReadClosed)
}

// TestUDPReregisterChange matches the scenario of reregistering a UDP
// socket under a new token and interest set and observing that no stale
// event ever surfaces under the old token afterward.
func TestUDPReregisterChange(t *testing.T) {
	p, err := tpoll.New()
	require.NoError(t, err)
	defer p.Close()

	conn, err := ListenUDP("127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, p.Registry().Register(conn, tpoll.Token(1), tpoll.Readable))
	require.NoError(t, p.Registry().Reregister(conn, tpoll.Token(2), tpoll.Writable))

	events := tpoll.NewEvents(4)
	zero := time.Duration(0)
	require.NoError(t, p.Poll(events, &zero))
	events.Range(func(e tpoll.Event) bool {
		assert.Equal(t, tpoll.Token(2), e.Token())
		return true
	})
}

// TestZeroTimeoutReturnsQuickly matches the zero-timeout scenario: with
// nothing ready, Poll returns immediately with zero events.
func TestZeroTimeoutReturnsQuickly(t *testing.T) {
	p, err := tpoll.New()
	require.NoError(t, err)
	defer p.Close()

	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	require.NoError(t, p.Registry().Register(ln, tpoll.Token(0), tpoll.Readable))

	events := tpoll.NewEvents(4)
	zero := time.Duration(0)
	start := time.Now()
	require.NoError(t, p.Poll(events, &zero))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, 0, events.Len())
}
