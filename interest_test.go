// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterestPredicates(t *testing.T) {
	i := Readable.Add(Writable)
	assert.True(t, i.IsReadable())
	assert.True(t, i.IsWritable())
	assert.False(t, i.IsPriority())
	assert.False(t, i.IsAIO())
	assert.False(t, i.IsLIO())
	assert.True(t, i.valid())
}

func TestInterestZeroInvalid(t *testing.T) {
	var i Interest
	assert.False(t, i.valid())
	assert.Equal(t, "(none)", i.String())
}

func TestInterestString(t *testing.T) {
	assert.Equal(t, "READABLE", Readable.String())
	assert.Equal(t, "READABLE|WRITABLE", Readable.Add(Writable).String())
	assert.Equal(t, "READABLE|WRITABLE|PRIORITY|AIO|LIO",
		Readable.Add(Writable).Add(Priority).Add(AIO).Add(LIO).String())
}

func TestInterestAddIdempotent(t *testing.T) {
	i := Readable.Add(Readable)
	assert.Equal(t, Readable, i)
}
