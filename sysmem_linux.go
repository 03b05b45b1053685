//go:build linux

package visioncore

import (
	"golang.org/x/sys/unix"
)

// systemMemory returns total system memory in bytes
func systemMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil || info.Totalram == 0 {
		return fallbackSystemMemory
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
