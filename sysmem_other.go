//go:build !linux

package visioncore

// systemMemory returns total system memory in bytes
func systemMemory() uint64 {
	return fallbackSystemMemory
}
