// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import (
	"time"

	"github.com/trpc-group/tpoll/internal/sys"
)

// Poll is the exclusive owner of one platform Selector. Only Poll.Poll may
// block; every Registry obtained from it may be used concurrently with a
// Poll call running on another goroutine.
type Poll struct {
	sel      sys.Selector
	registry *Registry
}

// New constructs a Selector for the host platform (epoll on Linux, kqueue on
// the BSD family and Darwin, an IOCP-backed emulation on Windows) and
// returns a Poll owning it.
func New() (*Poll, error) {
	sel, err := sys.NewSelector()
	if err != nil {
		return nil, wrapf(err, "poll new")
	}
	return &Poll{sel: sel, registry: newRegistry(sel)}, nil
}

// Registry returns the Registry used to add, change or remove registrations
// against this Poll's Selector. The returned handle may be cloned with
// Registry.TryClone and shared across goroutines.
func (p *Poll) Registry() *Registry { return p.registry }

// Poll blocks up to timeout and fills events with the readiness records the
// Selector produced. A nil timeout blocks indefinitely (interrupted only by
// a Waker); a zero timeout is a non-blocking poll. Poll always clears events
// before populating it, even when it returns zero events.
func (p *Poll) Poll(events *Events, timeout *time.Duration) error {
	if err := p.sel.Select(events.inner, timeout); err != nil {
		return wrapf(err, "poll")
	}
	return nil
}

// Close releases the underlying Selector. No Registry obtained from this
// Poll may be used afterward.
func (p *Poll) Close() error {
	return wrapf(p.sel.Close(), "poll close")
}
