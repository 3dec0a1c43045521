// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import "github.com/trpc-group/tpoll/internal/sys"

// Waker is a registered source that, when woken from any goroutine, causes
// an in-flight Poll.Poll to return delivering an event carrying the token it
// was created with. Multiple Wake calls between two Poll returns coalesce
// into a single delivered event; at least one Wake after the previous return
// always delivers at least one.
type Waker struct {
	w sys.Waker
}

// NewWaker installs a Waker on registry's Selector, associated with token.
func NewWaker(registry *Registry, token Token) (*Waker, error) {
	sel, err := registry.selector()
	if err != nil {
		return nil, err
	}
	w, err := sel.NewWaker(sys.Token(token))
	if err != nil {
		return nil, translateErr(err)
	}
	return &Waker{w: w}, nil
}

// Wake signals the waker, unblocking a concurrent Poll.Poll call.
func (w *Waker) Wake() error {
	return translateErr(w.w.Wake())
}

// Close releases the waker's underlying OS resource (eventfd, EVFILT_USER
// registration, or IOCP sentinel key). It does not affect the Selector
// itself.
func (w *Waker) Close() error {
	return translateErr(w.w.Close())
}
