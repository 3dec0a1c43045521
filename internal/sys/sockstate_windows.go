// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build windows

package sys

import (
	"sync"

	"golang.org/x/sys/windows"
)

// sockState is the lifecycle of a single Windows registration's in-flight
// zero-byte overlapped probes. There is no AFD \Device\Afd IOCTL available to
// a userland Go program without undocumented bindings, so readiness here is
// inferred the same way Orizon's experimental IOCP backend does it: posting a
// zero-byte WSARecv/WSASend and treating its completion as a readiness edge,
// then re-arming.
type sockState int32

const (
	// stateNew is assigned on Register, before the first probe is armed.
	stateNew sockState = iota
	// statePending means one or more overlapped probes are in flight.
	statePending
	// stateCancelled means CancelIoEx was issued but completions may still
	// be draining from the port; the slot must be kept alive until they are.
	stateCancelled
	// stateIdle means no probe is currently in flight (e.g. between a
	// Reregister that dropped an interest and the next Select call).
	stateIdle
	// stateDeleted means Deregister has fully unwound the slot; any
	// completion still referencing it must be discarded.
	stateDeleted
)

// winOverlapped embeds the OS overlapped structure so a pointer to it can be
// recovered from the OVERLAPPED_ENTRY the completion port hands back.
type winOverlapped struct {
	windows.Overlapped
	slot   *winSlot
	isSend bool
}

// winSlot is one fd's registration record, co-owned by the selector (which
// looks it up to re-arm probes) and by any in-flight winOverlapped values
// (which the kernel holds a bare pointer to, so the slot must stay reachable
// until every posted probe completes or is cancelled).
type winSlot struct {
	mu       sync.Mutex
	sock     windows.Handle
	token    Token
	interest Interest
	state    sockState
	readOv   *winOverlapped
	writeOv  *winOverlapped
}
