// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package sys

import "time"

// Selector is the capability every platform backend (epoll, kqueue, IOCP)
// implements. Register/Reregister/Deregister must be safe to call
// concurrently with Select running on another goroutine; only Select itself
// may block.
type Selector interface {
	// Register associates fd with token for the readiness kinds in interest.
	// Returns ErrAlreadyExists if fd is already known to this selector.
	Register(fd int, token Token, interest Interest) error

	// Reregister atomically replaces the (token, interest) pair associated
	// with fd. No event delivered after Reregister returns may reflect a
	// mixture of the old and new association. Returns ErrNotFound if fd was
	// never registered.
	Reregister(fd int, token Token, interest Interest) error

	// Deregister removes fd from the selector. After it returns, no future
	// Select call will surface an event for fd. Returns ErrNotFound if fd was
	// never registered.
	Deregister(fd int) error

	// Select blocks up to timeout (nil means forever, 0 means a non-blocking
	// poll) and appends ready events to events, up to its capacity. It
	// returns success even when zero events are produced.
	Select(events *Events, timeout *time.Duration) error

	// Close releases the underlying kernel object (epoll fd, kqueue fd, IOCP
	// handle). No method may be called after Close returns.
	Close() error

	// NewWaker installs a wakeup source on this selector that, once Wake is
	// called, causes a blocked Select to return with an event carrying token.
	NewWaker(token Token) (Waker, error)
}

// Waker is the capability a registered wakeup source exposes back to the
// public Waker type.
type Waker interface {
	Wake() error
	Close() error
}

// Events is a bounded, caller-owned sequence of platform event records. It is
// cleared and refilled by each Selector.Select call.
type Events struct {
	items []Event
}

// NewEvents allocates an Events buffer with room for up to capacity records.
func NewEvents(capacity int) *Events {
	if capacity <= 0 {
		capacity = 1
	}
	return &Events{items: make([]Event, 0, capacity)}
}

// Len returns the number of events currently held.
func (e *Events) Len() int { return len(e.items) }

// Cap returns the buffer's capacity, i.e. the maximum batch Select will
// deliver in one call.
func (e *Events) Cap() int { return cap(e.items) }

// Clear empties the buffer while retaining its backing array.
func (e *Events) Clear() { e.items = e.items[:0] }

// Get returns the i'th event. The caller must ensure 0 <= i < Len().
func (e *Events) Get(i int) Event { return e.items[i] }

// Append adds ev to the buffer; it is a no-op once Cap() is reached, matching
// Selector.Select's "at most its capacity" contract.
func (e *Events) Append(ev Event) bool {
	if len(e.items) >= cap(e.items) {
		return false
	}
	e.items = append(e.items, ev)
	return true
}

// Remaining reports how many more events Append can accept before the
// buffer's capacity is reached.
func (e *Events) Remaining() int { return cap(e.items) - len(e.items) }
