//go:build !linux

package visioncore

// noHardwareMonitor is used where hardware counters are unavailable;
// MeasureKernel then reports timing only
type noHardwareMonitor struct{}

func newHardwareMonitor() hardwareMonitor {
	return noHardwareMonitor{}
}

func (noHardwareMonitor) Start() error {
	return NewDeviceError("PerfMonitor", "hardware counters unavailable on this platform", nil)
}

func (noHardwareMonitor) Stop() *PerfCounters {
	return &PerfCounters{}
}
