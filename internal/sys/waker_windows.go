// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build windows

package sys

import (
	"golang.org/x/sys/windows"

	"github.com/trpc-group/tpoll/metrics"
)

// iocpWaker posts a zero-length completion carrying a reserved completion
// key, which Select recognizes and swallows without surfacing an Event. A
// blocked GetQueuedCompletionStatusEx call returns as soon as any completion,
// including this one, lands on the port, so no explicit coalescing is
// needed: a burst of Wake calls before the next Select simply posts several
// harmless completions instead of one.
type iocpWaker struct {
	port windows.Handle
}

// Wake posts a sentinel completion to the port, unblocking a pending Select.
func (w *iocpWaker) Wake() error {
	err := windows.PostQueuedCompletionStatus(w.port, 0, wakeCompletionKey, nil)
	if err == nil {
		metrics.Add(metrics.WakerWakes, 1)
	}
	return wrapf(err, "wake")
}

// Close is a no-op: the sentinel carries no kernel resource beyond the port
// itself, which the selector's Close tears down.
func (w *iocpWaker) Close() error { return nil }
