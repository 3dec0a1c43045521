// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

//go:build !windows

package tpoll

// SourceFd is a pass-through capability wrapper letting a caller register
// any raw file descriptor it owns directly, without implementing the full
// Source interface itself. Its only job is routing register/reregister/
// deregister through the Selector using the wrapped fd. IoSourceState is
// zero-sized on Unix: there is nothing to track beyond the fd itself.
type SourceFd struct {
	fdSource
	fd int
}

// NewSourceFd wraps fd for registration. The caller retains ownership of fd
// and is responsible for closing it only after deregistering.
func NewSourceFd(fd int) *SourceFd {
	return &SourceFd{fd: fd}
}

// Fd returns the wrapped file descriptor.
func (s *SourceFd) Fd() int { return s.fd }

func (s *SourceFd) register(registry *Registry, token Token, interest Interest) error {
	return s.fdSource.register(registry, token, interest, s.fd)
}

func (s *SourceFd) reregister(registry *Registry, token Token, interest Interest) error {
	return s.fdSource.reregister(registry, token, interest)
}

func (s *SourceFd) deregister(registry *Registry) error {
	return s.fdSource.deregister(registry)
}
