// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

// Package tpoll is a cross-platform, non-blocking I/O readiness notification
// library. It registers kernel-backed I/O handles (TCP, UDP and Unix-domain
// sockets, user-supplied descriptors, and an in-process wakeup source) with a
// single poller and blocks on one call that returns a batch of readiness
// events tagged with caller-supplied tokens.
//
// tpoll does not own buffers, does not schedule tasks and does not perform
// I/O on the caller's behalf. It is a thin, uniform surface over whatever
// readiness primitive the host offers: epoll on Linux, kqueue on the BSD
// family and Darwin, and an IOCP-backed emulation on Windows.
//
// Readiness is advisory: it means that the next non-blocking operation on the
// handle will likely make progress, not that it is guaranteed to. Callers
// must still treat EAGAIN/EWOULDBLOCK as a normal outcome.
package tpoll
