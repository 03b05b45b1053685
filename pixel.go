package visioncore

import (
	"math"
	"unsafe"
)

// Signed is the set of signed integer pixel types
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer pixel types
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is the set of integer pixel types
type Integer interface {
	Signed | Unsigned
}

// Float is the set of floating-point pixel types
type Float interface {
	~float32 | ~float64
}

// Scalar is the set of single-channel pixel types kernels operate on
type Scalar interface {
	Integer | Float
}

// Vec2 is a two-channel pixel
type Vec2[S Scalar] struct{ X, Y S }

// Vec3 is a three-channel pixel
type Vec3[S Scalar] struct{ X, Y, Z S }

// Vec4 is a four-channel pixel
type Vec4[S Scalar] struct{ X, Y, Z, W S }

func isFloat[T Scalar]() bool {
	var one T = 1
	return one/2 != 0
}

func isSigned[T Scalar]() bool {
	var zero T
	return zero-1 < 0
}

func bitSize[T Scalar]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// MaxValue returns the largest finite value of T
func MaxValue[T Scalar]() T {
	bits := bitSize[T]()
	switch {
	case isFloat[T]():
		f := math.MaxFloat64
		if bits == 32 {
			f = math.MaxFloat32
		}
		return T(f)
	case isSigned[T]():
		u := uint64(1)<<(bits-1) - 1
		return T(u)
	default:
		u := uint64(1)<<bits - 1
		return T(u)
	}
}

// LowestValue returns the most negative finite value of T
func LowestValue[T Scalar]() T {
	bits := bitSize[T]()
	switch {
	case isFloat[T]():
		return -MaxValue[T]()
	case isSigned[T]():
		i := int64(-1) << (bits - 1)
		return T(i)
	default:
		return 0
	}
}

// ConvertPixel converts a pixel value between scalar types. Integer
// destinations saturate at their range, NaN converts to zero and fractional
// values truncate toward zero.
func ConvertPixel[From, To Scalar](v From) To {
	if isFloat[To]() {
		return To(v)
	}

	if isFloat[From]() {
		f := float64(v)
		switch {
		case math.IsNaN(f):
			return 0
		case f <= float64(LowestValue[To]()):
			return LowestValue[To]()
		case f >= float64(MaxValue[To]()):
			return MaxValue[To]()
		}
		return To(f)
	}

	var u uint64
	if isSigned[From]() {
		i := int64(v)
		if i < 0 {
			if !isSigned[To]() {
				return 0
			}
			if i < int64(LowestValue[To]()) {
				return LowestValue[To]()
			}
			return To(i)
		}
		u = uint64(i)
	} else {
		u = uint64(v)
	}
	if u > uint64(MaxValue[To]()) {
		return MaxValue[To]()
	}
	return To(u)
}

// IsValid reports whether v holds data. Floating-point pixels are invalid
// when NaN or infinite, integer pixels when zero.
func IsValid[T Scalar](v T) bool {
	if isFloat[T]() {
		f := float64(v)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return v != 0
}

// Invalid returns the sentinel marking missing data: NaN for floating-point
// types and zero for integers.
func Invalid[T Scalar]() T {
	if isFloat[T]() {
		nan := math.NaN()
		return T(nan)
	}
	return 0
}

// InvertedValue mirrors v within the type's nominal range: 1-v for
// floating-point pixels, MaxValue-v for integers. Signed integers below -1
// wrap, so InvertedValue[int8](-128) is -1.
func InvertedValue[T Scalar](v T) T {
	if isFloat[T]() {
		return 1 - v
	}
	return MaxValue[T]() - v
}

// Clamp limits v to [lo, hi]
func Clamp[T Scalar](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
