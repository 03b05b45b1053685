package visioncore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearEqualFloat32(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name     string
		a, b     float32
		tol      ToleranceConfig
		expected bool
	}{
		{"Exact_Equal", 1.0, 1.0, DefaultTolerance(), true},
		{"Within_AbsTol", 1e-8, 2e-8, DefaultTolerance(), true},
		{"Outside_AbsTol", 1e-6, 2e-6, DefaultTolerance(), false},
		{"Within_RelTol", 1000.0, 1000.001, DefaultTolerance(), true},
		{"Outside_RelTol", 1.0, 1.1, DefaultTolerance(), false},
		{"Both_NaN", nan, nan, DefaultTolerance(), true},
		{"NaN_Not_Checked", nan, nan, ToleranceConfig{}, false},
		{"NaN_And_Number", nan, 1, DefaultTolerance(), false},
		{"Both_PosInf", inf, inf, DefaultTolerance(), true},
		{"Inf_Not_Checked", inf, inf, ToleranceConfig{}, false},
		{"Opposite_Inf", inf, -inf, DefaultTolerance(), false},
		{"Exact_Rejects_Neighbour", 1.0, math.Nextafter32(1.0, 2.0), ExactTolerance(), false},
		{"ULP_Neighbour", 1.0, math.Nextafter32(1.0, 2.0), ToleranceConfig{ULPTol: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NearEqual(tt.a, tt.b, tt.tol))
		})
	}
}

func TestNearEqualInteger(t *testing.T) {
	assert.True(t, NearEqual[uint8](10, 10, ExactTolerance()))
	assert.False(t, NearEqual[uint8](10, 11, ExactTolerance()))
	assert.True(t, NearEqual[uint8](10, 11, ToleranceConfig{AbsTol: 1}))
	assert.True(t, NearEqual[int16](-5, -4, ToleranceConfig{AbsTol: 1}))
}

func TestULPDiff(t *testing.T) {
	assert.Equal(t, 0, ULPDiff[float32](1, 1))
	assert.Equal(t, 1, ULPDiff(float32(1), math.Nextafter32(1, 2)))
	assert.Equal(t, 2, ULPDiff(1.0, math.Nextafter(math.Nextafter(1, 2), 2)))
	assert.Equal(t, math.MaxInt32, ULPDiff[float32](1, -1))
}

func TestVerifySlices(t *testing.T) {
	expected := []float32{1, 2, 3, 4}

	result := VerifySlices(expected, []float32{1, 2, 3, 4}, DefaultTolerance())
	assert.True(t, result.IsAcceptable())
	assert.Equal(t, -1, result.FirstError)
	assert.Contains(t, result.String(), "PASS")

	result = VerifySlices(expected, []float32{1, 2.5, 3, 5}, DefaultTolerance())
	assert.False(t, result.IsAcceptable())
	assert.Equal(t, 2, result.NumErrors)
	assert.Equal(t, 1, result.FirstError)
	assert.InDelta(t, 1.0, result.MaxAbsError, 1e-9)
	assert.Contains(t, result.String(), "FAIL: 2/4")

	result = VerifySlices(expected, expected[:2], DefaultTolerance())
	assert.Equal(t, len(expected), result.NumErrors)
}

func TestVerify2DIgnoresPadding(t *testing.T) {
	dense, err := NewBuffer2DView[int32, Host]([]int32{1, 2, 3, 4, 5, 6}, 3, 2, 0)
	require.NoError(t, err)

	// same pixels with one padding element per row
	padded, err := NewBuffer2DView[int32, Device]([]int32{1, 2, 3, -1, 4, 5, 6}, 3, 2, 4)
	require.NoError(t, err)

	result := Verify2D(dense, padded, ExactTolerance())
	assert.True(t, result.IsAcceptable(), result.String())

	padded.Set(2, 1, 0)
	result = Verify2D(dense, padded, ExactTolerance())
	assert.Equal(t, 1, result.NumErrors)
	assert.Equal(t, 5, result.FirstError)
}
