// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import (
	"github.com/pkg/errors"
)

// Sentinel errors for the error kinds named by the readiness contract.
// Callers should compare with errors.Is; internal call sites wrap these with
// github.com/pkg/errors.Wrap to keep a syscall-level cause attached.
var (
	// ErrInvalidInput is returned for a zero Interest, a reregister/deregister
	// of a source never registered with this selector, or (when the caller
	// opted into cross-selector checks, see Registry.register) a register
	// call against a source already bound to a different Selector.
	ErrInvalidInput = errors.New("tpoll: invalid input")

	// ErrAlreadyExists is returned when a descriptor already known to the
	// selector is registered again instead of reregistered.
	ErrAlreadyExists = errors.New("tpoll: already registered")

	// ErrNotFound is returned by reregister/deregister against a descriptor
	// the selector has no record of.
	ErrNotFound = errors.New("tpoll: not found")

	// ErrClosed is returned by any operation performed after Poll.Close or
	// Registry.Close has torn down the underlying selector.
	ErrClosed = errors.New("tpoll: selector closed")
)

// wrapf attaches op context to a selector-level error without discarding the
// original cause, mirroring the os.NewSyscallError convention the teacher
// codebase uses at every epoll_ctl/kevent call site.
func wrapf(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, op)
}
