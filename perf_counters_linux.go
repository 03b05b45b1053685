//go:build linux

package visioncore

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type perfEventConfig struct {
	name   string
	config uint64
}

var perfEvents = []perfEventConfig{
	{"cycles", unix.PERF_COUNT_HW_CPU_CYCLES},
	{"instructions", unix.PERF_COUNT_HW_INSTRUCTIONS},
	{"branch-misses", unix.PERF_COUNT_HW_BRANCH_MISSES},
	{"cache-misses", unix.PERF_COUNT_HW_CACHE_MISSES},
}

// hardwareEventAttr describes a user-space-only hardware counter that starts
// disabled
func hardwareEventAttr(config uint64) *unix.PerfEventAttr {
	return &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: config,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
}

// linuxPerfMonitor reads hardware counters through perf_event_open
type linuxPerfMonitor struct {
	fds []int
}

func newHardwareMonitor() hardwareMonitor {
	return &linuxPerfMonitor{}
}

// Start opens and enables one counter per event for the calling thread
func (pm *linuxPerfMonitor) Start() error {
	pm.closeAll()

	for _, ev := range perfEvents {
		fd, err := unix.PerfEventOpen(hardwareEventAttr(ev.config), 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			pm.closeAll()
			return fmt.Errorf("failed to open perf event %s: %w", ev.name, err)
		}
		pm.fds = append(pm.fds, fd)
	}

	for _, fd := range pm.fds {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
			pm.closeAll()
			return err
		}
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
			pm.closeAll()
			return err
		}
	}
	return nil
}

// Stop disables the counters, reads them and releases the descriptors
func (pm *linuxPerfMonitor) Stop() *PerfCounters {
	counters := &PerfCounters{}
	buf := make([]byte, 8)
	for i, fd := range pm.fds {
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)
		if n, err := unix.Read(fd, buf); err != nil || n != len(buf) {
			continue
		}
		value := binary.NativeEndian.Uint64(buf)
		switch perfEvents[i].name {
		case "cycles":
			counters.Cycles = value
		case "instructions":
			counters.Instructions = value
		case "branch-misses":
			counters.BranchMisses = value
		case "cache-misses":
			counters.CacheMisses = value
		}
	}
	pm.closeAll()
	return counters
}

func (pm *linuxPerfMonitor) closeAll() {
	for _, fd := range pm.fds {
		unix.Close(fd)
	}
	pm.fds = nil
}
