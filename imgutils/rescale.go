package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

// RescaleBuffer writes clamp(convert(in)*alpha+beta, clampMin, clampMax)
// into out. Arithmetic is done in float64 and the result converted to the
// output pixel type with saturation. in and out may be the same view.
func RescaleBuffer[T1, T2 vc.Scalar, TG vc.Target](in vc.Buffer2DView[T1, TG], out vc.Buffer2DView[T2, TG], alpha, beta, clampMin, clampMax float64) error {
	if err := sameExtents("RescaleBuffer", dims(in), dims(out)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if in.InBounds(x, y) && out.InBounds(x, y) {
			val := float64(vc.ConvertPixel[T1, T2](in.Get(x, y)))
			out.Set(x, y, vc.ConvertPixel[float64, T2](vc.Clamp(val*alpha+beta, clampMin, clampMax)))
		}
	})
	return nil
}

// RescaleBufferInplace applies clamp(v*alpha+beta, clampMin, clampMax) to
// every pixel of buf
func RescaleBufferInplace[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG], alpha, beta, clampMin, clampMax T) error {
	return RescaleBuffer(buf, buf, float64(alpha), float64(beta), float64(clampMin), float64(clampMax))
}

// RescaleBufferInplace1D is RescaleBufferInplace for a 1D view
func RescaleBufferInplace1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG], alpha, beta, clampMin, clampMax T) error {
	a, b := float64(alpha), float64(beta)
	lo, hi := float64(clampMin), float64(clampMax)
	vc.LaunchParallelFor[TG](buf.Size(), func(i int) {
		if buf.InBounds(i) {
			v := float64(buf.Get(i))*a + b
			buf.Set(i, vc.ConvertPixel[float64, T](vc.Clamp(v, lo, hi)))
		}
	})
	return nil
}

// RescaleBufferInplaceMinMax maps [vmin, vmax] onto [0, 1] in place and
// clamps the result to [clampMin, clampMax]
func RescaleBufferInplaceMinMax[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG], vmin, vmax, clampMin, clampMax T) error {
	if vmax == vmin {
		return vc.NewPreconditionError("RescaleBufferInplaceMinMax", vc.ErrDegenerateRange,
			"vmin and vmax are both %v", vmin)
	}
	scale := 1 / (float64(vmax) - float64(vmin))
	return RescaleBuffer(buf, buf, scale, -float64(vmin)*scale, float64(clampMin), float64(clampMax))
}

// NormalizeBufferInplace maps the value range of buf onto [0, 1]. A buffer
// whose pixels all hold the same value cannot be normalized.
func NormalizeBufferInplace[T vc.Float, TG vc.Target](buf vc.Buffer2DView[T, TG]) error {
	if buf.IsEmpty() {
		return nil
	}
	lo, hi := CalcBufferMin(buf), CalcBufferMax(buf)
	if lo == hi {
		return vc.NewPreconditionError("NormalizeBufferInplace", vc.ErrDegenerateRange,
			"every pixel is %v", lo)
	}
	return RescaleBufferInplaceMinMax(buf, lo, hi, 0, 1)
}

// ClampBuffer limits every pixel of buf to [lo, hi]
func ClampBuffer[T vc.Scalar, TG vc.Target](buf vc.Buffer2DView[T, TG], lo, hi T) {
	vc.LaunchParallelFor2D[TG](buf.Width(), buf.Height(), func(x, y int) {
		if buf.InBounds(x, y) {
			buf.Set(x, y, vc.Clamp(buf.Get(x, y), lo, hi))
		}
	})
}

// ClampBuffer1D limits every element of buf to [lo, hi]
func ClampBuffer1D[T vc.Scalar, TG vc.Target](buf vc.Buffer1DView[T, TG], lo, hi T) {
	vc.LaunchParallelFor[TG](buf.Size(), func(i int) {
		if buf.InBounds(i) {
			buf.Set(i, vc.Clamp(buf.Get(i), lo, hi))
		}
	})
}
