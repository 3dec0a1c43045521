// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package sys

import "github.com/pkg/errors"

// Sentinel errors mirroring the root package's (see tpoll/errors.go). Kept
// independent, like Token and Interest, so this package never imports back
// up to tpoll; the Registry boundary translates between the two sets.
var (
	ErrInvalidInput  = errors.New("sys: invalid input")
	ErrAlreadyExists = errors.New("sys: already registered")
	ErrNotFound      = errors.New("sys: not found")
	ErrClosed        = errors.New("sys: selector closed")
)

// wrapf attaches syscall-site context to err without discarding the cause,
// mirroring the teacher codebase's os.NewSyscallError convention.
func wrapf(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, op)
}
