// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import (
	"unsafe"

	"github.com/trpc-group/tpoll/internal/sys"
)

// registryCore is the shared, reference-counted handle a Registry and all of
// its clones point at. Cloning a Registry never duplicates the underlying
// Selector; it only adds another handle to the same core, mirroring the
// Arc<Selector> the Rust original shares between Registry clones.
type registryCore struct {
	sel sys.Selector
}

// Registry is a cheaply cloneable handle used to add, change or remove
// registrations on the Selector owned by a Poll. Registry methods never
// block; only Poll.Poll blocks.
type Registry struct {
	core *registryCore
}

func newRegistry(sel sys.Selector) *Registry {
	return &Registry{core: &registryCore{sel: sel}}
}

// selectorID returns a value that is equal across every clone of the same
// Registry and distinct across Registries wrapping different Selectors. Used
// by sources to detect registration against two different pollers.
func (r *Registry) selectorID() uintptr {
	return uintptr(unsafe.Pointer(r.core))
}

// Register associates source with token for the given interest set on this
// Registry's Selector. interest must be nonzero.
func (r *Registry) Register(source Source, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	return source.register(r, token, interest)
}

// Reregister atomically replaces the (token, interest) previously associated
// with source. It is a usage error to reregister a source never registered
// with this Registry.
func (r *Registry) Reregister(source Source, token Token, interest Interest) error {
	if !interest.valid() {
		return ErrInvalidInput
	}
	return source.reregister(r, token, interest)
}

// Deregister removes source from this Registry's Selector. It is a usage
// error to deregister a source that was never registered.
func (r *Registry) Deregister(source Source) error {
	return source.deregister(r)
}

// TryClone returns another handle to the same underlying Selector. The clone
// can be handed to another goroutine and used concurrently with the
// original and with Poll.Poll.
func (r *Registry) TryClone() (*Registry, error) {
	if r.core == nil {
		return nil, ErrClosed
	}
	return &Registry{core: r.core}, nil
}

func (r *Registry) selector() (sys.Selector, error) {
	if r.core == nil || r.core.sel == nil {
		return nil, ErrClosed
	}
	return r.core.sel, nil
}
