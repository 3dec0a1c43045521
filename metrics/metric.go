//
//
// Tencent is pleased to support the open source community by making tRPC available.
//
// Copyright (C) 2023 THL A29 Limited, a Tencent company.
// All rights reserved.
//
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the  Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

// Package metrics provides runtime monitoring counters for the Selector:
// registration churn, select call volume, batching efficiency and waker
// activity, useful for tuning an Events buffer's capacity.
package metrics

import (
	"fmt"
	"time"

	"go.uber.org/atomic"
)

// All metrics definitions.
const (
	// Registrations
	Registers = iota
	Reregisters
	Deregisters
	RegisterFails

	// Select
	SelectCalls
	SelectNoWait
	SelectTimeouts
	SelectEvents
	SelectInterrupted

	// Waker
	WakerWakes
	WakerCoalesced

	Max
)

var (
	metrics [Max]atomic.Uint64
)

// Add metrics counter.
func Add(name int, delta uint64) {
	if name >= Max {
		return
	}
	metrics[name].Add(delta)
}

// Get one metric counter.
func Get(name int) uint64 {
	if name >= Max {
		return 0
	}
	return metrics[name].Load()
}

// GetAll get all metrics.
func GetAll() [Max]uint64 {
	var m [Max]uint64
	for i := range metrics {
		m[i] = metrics[i].Load()
	}
	return m
}

// ShowMetricsOfPeriod shows metric info of duration d from now on.
// It will block d duration, and then prints metrics info.
func ShowMetricsOfPeriod(d time.Duration) {
	old := GetAll()
	<-time.After(d)
	new := GetAll()
	var m [Max]uint64
	for i := range metrics {
		m[i] = new[i] - old[i]
	}
	showAll(m)
}

// ShowMetrics shows metric info in console.
func ShowMetrics() {
	m := GetAll()
	showAll(m)
}

func showAll(m [Max]uint64) {
	fmt.Println("######### tpoll metrics (", time.Now().Format("2006-01-02 15:04:05"), ") ###########")
	showRegistrationMetrics(m)
	showSelectMetrics(m)
	showWakerMetrics(m)
	fmt.Printf("\n")
}

func showRegistrationMetrics(m [Max]uint64) {
	fmt.Printf("%-59s: %d\n", "# number of register calls", m[Registers])
	fmt.Printf("%-59s: %d\n", "# number of reregister calls", m[Reregisters])
	fmt.Printf("%-59s: %d\n", "# number of deregister calls", m[Deregisters])
	fmt.Printf("%-59s: %d\n", "# number of failed register calls", m[RegisterFails])
}

func showSelectMetrics(m [Max]uint64) {
	fmt.Printf("%-59s: %d\n", "# number of select calls", m[SelectCalls])
	fmt.Printf("%-59s: %d\n", "# number of non-blocking select calls", m[SelectNoWait])
	fmt.Printf("%-59s: %d\n", "# number of select calls that timed out", m[SelectTimeouts])
	fmt.Printf("%-59s: %d\n", "# number of select calls interrupted by a signal", m[SelectInterrupted])
	fmt.Printf("%-59s: %d\n", "# number of events delivered", m[SelectEvents])
	if m[SelectCalls] > 0 {
		fmt.Printf("%-59s: %.2f\n", "# average events per select call",
			float64(m[SelectEvents])/float64(m[SelectCalls]))
	}
}

func showWakerMetrics(m [Max]uint64) {
	fmt.Printf("%-59s: %d\n", "# number of Waker.Wake calls", m[WakerWakes])
	fmt.Printf("%-59s: %d\n", "# number of wakes coalesced into a prior pending wake", m[WakerCoalesced])
}
