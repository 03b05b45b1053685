package visioncore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeasureKernel(t *testing.T) {
	ran := false
	pc := MeasureKernel(func() {
		ran = true
		time.Sleep(time.Millisecond)
	})

	assert.True(t, ran)
	assert.GreaterOrEqual(t, pc.Duration, time.Millisecond)
	if pc.Cycles > 0 {
		assert.Positive(t, pc.IPC)
	}
}

func TestPerfCountersThroughput(t *testing.T) {
	pc := &PerfCounters{Duration: time.Second}
	pc.CalculateThroughput(3_000_000)
	assert.InDelta(t, 3.0, pc.MPixPerSec, 1e-9)
	assert.Contains(t, pc.String(), "3.00 MPix/s")

	empty := &PerfCounters{}
	empty.CalculateThroughput(10)
	assert.Zero(t, empty.MPixPerSec)
	assert.NotContains(t, empty.String(), "Cycles")
}
