// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build linux
// +build linux

package sys_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/trpc-group/tpoll/internal/sys"
)

func newEventFD(t *testing.T) int {
	t.Helper()
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	require.Nil(t, err)
	return fd
}

func TestSelectorRegisterSelectDeregister(t *testing.T) {
	sel, err := sys.NewSelector()
	require.Nil(t, err)
	defer sel.Close()

	fd := newEventFD(t)
	defer unix.Close(fd)

	require.Nil(t, sel.Register(fd, sys.Token(1), sys.Readable))

	buf := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	_, err = unix.Write(fd, buf)
	require.Nil(t, err)

	events := sys.NewEvents(4)
	timeout := 2 * time.Second
	require.Nil(t, sel.Select(events, &timeout))
	require.Equal(t, 1, events.Len())
	assert.Equal(t, sys.Token(1), events.Get(0).Token)
	assert.True(t, events.Get(0).IsReadable())

	require.Nil(t, sel.Deregister(fd))
}

func TestSelectorRegisterDuplicateFails(t *testing.T) {
	sel, err := sys.NewSelector()
	require.Nil(t, err)
	defer sel.Close()

	fd := newEventFD(t)
	defer unix.Close(fd)

	require.Nil(t, sel.Register(fd, sys.Token(1), sys.Readable))
	err = sel.Register(fd, sys.Token(2), sys.Readable)
	assert.NotNil(t, err)
}

func TestSelectorReregisterUnknownFails(t *testing.T) {
	sel, err := sys.NewSelector()
	require.Nil(t, err)
	defer sel.Close()

	err = sel.Reregister(-1, sys.Token(1), sys.Readable)
	assert.NotNil(t, err)
}

func TestSelectorSelectZeroTimeout(t *testing.T) {
	sel, err := sys.NewSelector()
	require.Nil(t, err)
	defer sel.Close()

	fd := newEventFD(t)
	defer unix.Close(fd)
	require.Nil(t, sel.Register(fd, sys.Token(1), sys.Readable))

	events := sys.NewEvents(4)
	zero := time.Duration(0)
	start := time.Now()
	require.Nil(t, sel.Select(events, &zero))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, 0, events.Len())
}

func TestWakerWakesSelect(t *testing.T) {
	sel, err := sys.NewSelector()
	require.Nil(t, err)
	defer sel.Close()

	waker, err := sel.NewWaker(sys.Token(9))
	require.Nil(t, err)
	defer waker.Close()

	done := make(chan error, 1)
	events := sys.NewEvents(4)
	go func() {
		done <- sel.Select(events, nil)
	}()

	time.Sleep(20 * time.Millisecond)
	require.Nil(t, waker.Wake())

	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("select did not return after wake")
	}
	require.Equal(t, 1, events.Len())
	assert.Equal(t, sys.Token(9), events.Get(0).Token)
}
