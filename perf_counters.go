// Package visioncore performance counter integration for kernel benchmarks
package visioncore

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// PerfCounters holds performance counter measurements
type PerfCounters struct {
	// Timing
	Duration time.Duration

	// CPU counters, zero when the platform or permissions do not allow
	// reading them
	Cycles       uint64
	Instructions uint64
	BranchMisses uint64
	CacheMisses  uint64

	// Derived metrics
	IPC        float64 // Instructions per cycle
	MPixPerSec float64
}

// hardwareMonitor reads hardware counters around a measured region
type hardwareMonitor interface {
	Start() error
	Stop() *PerfCounters
}

// MeasureKernel runs fn once and collects its duration and, where
// available, hardware counters. Counters cover the calling OS thread only,
// so Device launches report the share of work the caller executed.
func MeasureKernel(fn func()) *PerfCounters {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	monitor := newHardwareMonitor()
	hw := monitor.Start() == nil

	start := time.Now()
	fn()
	duration := time.Since(start)

	counters := &PerfCounters{}
	if hw {
		counters = monitor.Stop()
	}
	counters.Duration = duration
	if counters.Cycles > 0 {
		counters.IPC = float64(counters.Instructions) / float64(counters.Cycles)
	}
	return counters
}

// CalculateThroughput derives pixel throughput for a domain of pixels
func (pc *PerfCounters) CalculateThroughput(pixels int) {
	if pc.Duration > 0 {
		pc.MPixPerSec = float64(pixels) / pc.Duration.Seconds() / 1e6
	}
}

// String formats performance counters for display
func (pc *PerfCounters) String() string {
	var sb strings.Builder

	sb.WriteString("Performance Counters:\n")
	if pc.Duration > 0 {
		sb.WriteString(fmt.Sprintf("  Duration:          %v\n", pc.Duration))
	}
	if pc.Cycles > 0 {
		sb.WriteString(fmt.Sprintf("  CPU Cycles:        %d\n", pc.Cycles))
		sb.WriteString(fmt.Sprintf("  Instructions:      %d\n", pc.Instructions))
		sb.WriteString(fmt.Sprintf("  IPC:               %.2f\n", pc.IPC))
	}
	if pc.BranchMisses > 0 {
		sb.WriteString(fmt.Sprintf("  Branch Misses:     %d\n", pc.BranchMisses))
	}
	if pc.CacheMisses > 0 {
		sb.WriteString(fmt.Sprintf("  Cache Misses:      %d\n", pc.CacheMisses))
	}
	if pc.MPixPerSec > 0 {
		sb.WriteString(fmt.Sprintf("  Throughput:        %.2f MPix/s\n", pc.MPixPerSec))
	}

	return sb.String()
}
