//go:build linux

package visioncore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestHardwareEventAttr(t *testing.T) {
	attr := hardwareEventAttr(unix.PERF_COUNT_HW_INSTRUCTIONS)

	assert.Equal(t, uint32(unix.PERF_TYPE_HARDWARE), attr.Type)
	assert.Equal(t, uint64(unix.PERF_COUNT_HW_INSTRUCTIONS), attr.Config)
	assert.GreaterOrEqual(t, attr.Size, uint32(unix.PERF_ATTR_SIZE_VER0))
	assert.NotZero(t, attr.Bits&unix.PerfBitDisabled, "counters start disabled")
	assert.NotZero(t, attr.Bits&unix.PerfBitExcludeKernel)
}

func TestLinuxPerfMonitorStopWithoutStart(t *testing.T) {
	pm := &linuxPerfMonitor{}
	pc := pm.Stop()
	assert.Zero(t, pc.Cycles)
	assert.Empty(t, pm.fds)
}
