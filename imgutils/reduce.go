package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

func minOf[T vc.Scalar](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func maxOf[T vc.Scalar](a, b T) T {
	if b > a {
		return b
	}
	return a
}

// CalcBufferMin returns the smallest pixel of buf, or MaxValue for an empty
// view
func CalcBufferMin[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG]) T {
	return vc.LaunchParallelReduce2D[TG](buf.Width(), buf.Height(), vc.MaxValue[T](),
		func(x, y int, acc *T) {
			if buf.InBounds(x, y) {
				*acc = minOf(*acc, buf.Get(x, y))
			}
		}, minOf[T])
}

// CalcBufferMax returns the largest pixel of buf, or LowestValue for an
// empty view
func CalcBufferMax[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG]) T {
	return vc.LaunchParallelReduce2D[TG](buf.Width(), buf.Height(), vc.LowestValue[T](),
		func(x, y int, acc *T) {
			if buf.InBounds(x, y) {
				*acc = maxOf(*acc, buf.Get(x, y))
			}
		}, maxOf[T])
}

// CalcBufferMean returns the average pixel of buf. The sum is accumulated
// in float64 so narrow integer types do not overflow. An empty view has a
// mean of zero.
func CalcBufferMean[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG]) T {
	if buf.IsEmpty() {
		return 0
	}
	sum := vc.LaunchParallelReduce2D[TG](buf.Width(), buf.Height(), 0.0,
		func(x, y int, acc *float64) {
			if buf.InBounds(x, y) {
				*acc += float64(buf.Get(x, y))
			}
		}, add[float64])
	return vc.ConvertPixel[float64, T](sum / float64(buf.Area()))
}

// CalcBufferMin1D returns the smallest element of buf, or MaxValue for an
// empty view
func CalcBufferMin1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG]) T {
	return vc.LaunchParallelReduce[TG](buf.Size(), vc.MaxValue[T](), func(i int, acc *T) {
		if buf.InBounds(i) {
			*acc = minOf(*acc, buf.Get(i))
		}
	}, minOf[T])
}

// CalcBufferMax1D returns the largest element of buf, or LowestValue for an
// empty view
func CalcBufferMax1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG]) T {
	return vc.LaunchParallelReduce[TG](buf.Size(), vc.LowestValue[T](), func(i int, acc *T) {
		if buf.InBounds(i) {
			*acc = maxOf(*acc, buf.Get(i))
		}
	}, maxOf[T])
}

// CalcBufferMean1D returns the average element of buf, zero when empty
func CalcBufferMean1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG]) T {
	if buf.IsEmpty() {
		return 0
	}
	sum := vc.LaunchParallelReduce[TG](buf.Size(), 0.0, func(i int, acc *float64) {
		if buf.InBounds(i) {
			*acc += float64(buf.Get(i))
		}
	}, add[float64])
	return vc.ConvertPixel[float64, T](sum / float64(buf.Size()))
}

func add[T vc.Scalar](a, b T) T {
	return a + b
}

// BufferSum adds every pixel of buf to initial, in the pixel type. On
// Device initial seeds every chunk, so pass zero unless the bias is meant
// to scale with the chunk count.
func BufferSum[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG], initial T) T {
	return vc.LaunchParallelReduce2D[TG](buf.Width(), buf.Height(), initial,
		func(x, y int, acc *T) {
			if buf.InBounds(x, y) {
				*acc += buf.Get(x, y)
			}
		}, add[T])
}

// BufferSum1D adds every element of buf to initial
func BufferSum1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG], initial T) T {
	return vc.LaunchParallelReduce[TG](buf.Size(), initial, func(i int, acc *T) {
		if buf.InBounds(i) {
			*acc += buf.Get(i)
		}
	}, add[T])
}

// CalcBufferSum returns the sum of every pixel of buf
func CalcBufferSum[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG]) T {
	return BufferSum(buf, 0)
}

// CalcBufferSum1D returns the sum of every element of buf
func CalcBufferSum1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG]) T {
	return BufferSum1D(buf, 0)
}
