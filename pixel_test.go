package visioncore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxLowestValue(t *testing.T) {
	assert.Equal(t, uint8(255), MaxValue[uint8]())
	assert.Equal(t, uint8(0), LowestValue[uint8]())
	assert.Equal(t, int16(math.MaxInt16), MaxValue[int16]())
	assert.Equal(t, int16(math.MinInt16), LowestValue[int16]())
	assert.Equal(t, uint64(math.MaxUint64), MaxValue[uint64]())
	assert.Equal(t, int64(math.MinInt64), LowestValue[int64]())
	assert.Equal(t, float32(math.MaxFloat32), MaxValue[float32]())
	assert.Equal(t, -math.MaxFloat64, LowestValue[float64]())
}

func TestConvertPixel(t *testing.T) {
	assert.Equal(t, uint8(255), ConvertPixel[float32, uint8](300.7))
	assert.Equal(t, uint8(0), ConvertPixel[float32, uint8](-4))
	assert.Equal(t, uint8(12), ConvertPixel[float64, uint8](12.9), "fractions truncate")
	assert.Equal(t, uint8(0), ConvertPixel[float32, uint8](float32(math.NaN())))
	assert.Equal(t, int8(-128), ConvertPixel[int32, int8](-1000))
	assert.Equal(t, int8(127), ConvertPixel[uint16, int8](1000))
	assert.Equal(t, uint16(0), ConvertPixel[int32, uint16](-1))
	assert.Equal(t, uint32(70000), ConvertPixel[int64, uint32](70000))
	assert.Equal(t, float32(0.5), ConvertPixel[float64, float32](0.5))
	assert.Equal(t, float64(200), ConvertPixel[uint8, float64](200))
	assert.Equal(t, int64(math.MaxInt64), ConvertPixel[uint64, int64](math.MaxUint64))
}

func TestValidity(t *testing.T) {
	assert.True(t, IsValid[float32](0))
	assert.False(t, IsValid(float32(math.NaN())))
	assert.False(t, IsValid(math.Inf(-1)))
	assert.False(t, IsValid(Invalid[float64]()))

	assert.True(t, IsValid[uint8](1))
	assert.False(t, IsValid[uint8](0))
	assert.Equal(t, uint16(0), Invalid[uint16]())
}

func TestInvertedValueAndClamp(t *testing.T) {
	assert.Equal(t, float32(0.25), InvertedValue[float32](0.75))
	assert.Equal(t, uint8(155), InvertedValue[uint8](100))
	assert.Equal(t, int16(math.MaxInt16), InvertedValue[int16](0))
	assert.Equal(t, int8(-1), InvertedValue[int8](-128), "signed values below -1 wrap")
	assert.Equal(t, int8(0), InvertedValue[int8](127))

	assert.Equal(t, 0.2, Clamp(-1.0, 0.2, 0.8))
	assert.Equal(t, 0.5, Clamp(0.5, 0.2, 0.8))
	assert.Equal(t, 0.8, Clamp(2.0, 0.2, 0.8))
	assert.Equal(t, uint8(10), Clamp[uint8](3, 10, 20))
}
