package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

// FillBuffer sets every pixel of buf to v
func FillBuffer[T any, TG vc.Target](buf vc.Buffer2DView[T, TG], v T) {
	vc.LaunchParallelFor2D[TG](buf.Width(), buf.Height(), func(x, y int) {
		if buf.InBounds(x, y) {
			buf.Set(x, y, v)
		}
	})
}

// FillBuffer1D sets every element of buf to v
func FillBuffer1D[T any, TG vc.Target](buf vc.Buffer1DView[T, TG], v T) {
	vc.LaunchParallelFor[TG](buf.Size(), func(i int) {
		if buf.InBounds(i) {
			buf.Set(i, v)
		}
	})
}

// InvertBuffer replaces every pixel of buf with its InvertedValue
func InvertBuffer[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG]) {
	vc.LaunchParallelFor2D[TG](buf.Width(), buf.Height(), func(x, y int) {
		if buf.InBounds(x, y) {
			buf.Set(x, y, vc.InvertedValue(buf.Get(x, y)))
		}
	})
}

// InvertBuffer1D replaces every element of buf with its InvertedValue
func InvertBuffer1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG]) {
	vc.LaunchParallelFor[TG](buf.Size(), func(i int) {
		if buf.InBounds(i) {
			buf.Set(i, vc.InvertedValue(buf.Get(i)))
		}
	})
}

// ThresholdBuffer writes below to out where in < thr and above elsewhere
func ThresholdBuffer[T vc.Scalar, TG vc.Target](in, out vc.Buffer2DView[T, TG], thr, below, above T) error {
	if err := sameExtents("ThresholdBuffer", dims(in), dims(out)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if !in.InBounds(x, y) {
			return
		}
		if in.Get(x, y) < thr {
			out.Set(x, y, below)
		} else {
			out.Set(x, y, above)
		}
	})
	return nil
}

// ThresholdBufferSaturated thresholds the position of each pixel within
// [minval, maxval], so thr is a fraction of that range. With saturation
// set, pixels are first clamped to the range.
func ThresholdBufferSaturated[T vc.Scalar, TG vc.Target](in, out vc.Buffer2DView[T, TG], thr float64, below, above, minval, maxval T, saturation bool) error {
	if err := sameExtents("ThresholdBufferSaturated", dims(in), dims(out)); err != nil {
		return err
	}
	if minval == maxval {
		return vc.NewPreconditionError("ThresholdBufferSaturated", vc.ErrDegenerateRange,
			"minval and maxval are both %v", minval)
	}
	lo, span := float64(minval), float64(maxval)-float64(minval)
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if !in.InBounds(x, y) {
			return
		}
		v := in.Get(x, y)
		if saturation {
			v = vc.Clamp(v, minval, maxval)
		}
		if (float64(v)-lo)/span < thr {
			out.Set(x, y, below)
		} else {
			out.Set(x, y, above)
		}
	})
	return nil
}

// FlipXBuffer mirrors in horizontally into out. The views must not alias.
func FlipXBuffer[T any, TG vc.Target](in, out vc.Buffer2DView[T, TG]) error {
	if err := sameExtents("FlipXBuffer", dims(in), dims(out)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		nx := in.Width() - 1 - x
		if out.InBounds(x, y) && in.InBounds(nx, y) {
			out.Set(x, y, in.Get(nx, y))
		}
	})
	return nil
}

// FlipYBuffer mirrors in vertically into out. The views must not alias.
func FlipYBuffer[T any, TG vc.Target](in, out vc.Buffer2DView[T, TG]) error {
	if err := sameExtents("FlipYBuffer", dims(in), dims(out)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		ny := in.Height() - 1 - y
		if out.InBounds(x, y) && in.InBounds(x, ny) {
			out.Set(x, y, in.Get(x, ny))
		}
	})
	return nil
}

// BufferSubtract writes in1 - in2 to out
func BufferSubtract[T vc.Scalar, TG vc.Target](in1, in2, out vc.Buffer2DView[T, TG]) error {
	return subtractWith("BufferSubtract", in1, in2, out, func(a, b T) T { return a - b })
}

// BufferSubtractL1 writes |in1 - in2| to out
func BufferSubtractL1[T vc.Scalar, TG vc.Target](in1, in2, out vc.Buffer2DView[T, TG]) error {
	return subtractWith("BufferSubtractL1", in1, in2, out, absDiff[T])
}

// BufferSubtractL2 writes (in1 - in2)^2 to out
func BufferSubtractL2[T vc.Scalar, TG vc.Target](in1, in2, out vc.Buffer2DView[T, TG]) error {
	return subtractWith("BufferSubtractL2", in1, in2, out, func(a, b T) T {
		d := absDiff(a, b)
		return d * d
	})
}

// absDiff is |a - b| without wrapping for unsigned types
func absDiff[T vc.Scalar](a, b T) T {
	if a < b {
		return b - a
	}
	return a - b
}

func subtractWith[T vc.Scalar, TG vc.Target](op string, in1, in2, out vc.Buffer2DView[T, TG], f func(a, b T) T) error {
	if err := sameExtents(op, dims(out), dims(in1), dims(in2)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if out.InBounds(x, y) {
			out.Set(x, y, f(in1.Get(x, y), in2.Get(x, y)))
		}
	})
	return nil
}
