// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trpc-group/tpoll/metrics"
)

func TestMetrics(t *testing.T) {
	metrics.Add(metrics.Registers, 1)
	assert.Equal(t, uint64(1), metrics.Get(metrics.Registers))
	metrics.Add(metrics.Registers, 1)
	assert.Equal(t, uint64(2), metrics.Get(metrics.Registers))
	metrics.Add(metrics.Max+1, 1)
	assert.Equal(t, uint64(0), metrics.Get(metrics.Max+1))

	metrics.Add(metrics.SelectNoWait, 8)
	metrics.Add(metrics.SelectCalls, 9)
	metrics.Add(metrics.SelectEvents, 99)
	metrics.Add(metrics.Reregisters, 191)
	metrics.Add(metrics.Deregisters, 1191)
	metrics.Add(metrics.WakerWakes, 3)
	metrics.Add(metrics.WakerCoalesced, 1)

	all := metrics.GetAll()
	assert.Equal(t, uint64(9), all[metrics.SelectCalls])

	metrics.ShowMetrics()
	metrics.ShowMetricsOfPeriod(time.Millisecond)
}
