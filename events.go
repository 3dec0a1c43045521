// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import "github.com/trpc-group/tpoll/internal/sys"

// Events is a bounded, caller-owned buffer of readiness records. Poll.Poll
// clears and refills it on every call; it is not safe for concurrent use
// while a Poll call that targets it is in flight.
type Events struct {
	inner *sys.Events
}

// NewEvents allocates an Events buffer able to hold up to capacity records
// per Poll.Poll call. A larger capacity amortizes the per-call syscall cost
// at the expense of more memory and potential starvation of sources whose
// events land past the cutoff in a single saturated call.
func NewEvents(capacity int) *Events {
	return &Events{inner: sys.NewEvents(capacity)}
}

// Len returns the number of events currently held.
func (e *Events) Len() int { return e.inner.Len() }

// Cap returns the maximum number of events one Poll.Poll call will deliver.
func (e *Events) Cap() int { return e.inner.Cap() }

// Get returns the i'th event. The caller must ensure 0 <= i < Len().
func (e *Events) Get(i int) Event { return Event{inner: e.inner.Get(i)} }

// Range calls fn for every event currently held, in delivery order, stopping
// early if fn returns false. Events within a single batch carry no mutual
// ordering guarantee beyond the order they happen to appear in the buffer.
func (e *Events) Range(fn func(Event) bool) {
	for i := 0; i < e.inner.Len(); i++ {
		if !fn(e.Get(i)) {
			return
		}
	}
}
