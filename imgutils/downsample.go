package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

func checkHalf[T any, TG vc.Target](op string, in, out vc.Buffer2DView[T, TG]) error {
	if in.Width()/2 != out.Width() || in.Height()/2 != out.Height() {
		return vc.NewPreconditionError(op, vc.ErrDimensionMismatch,
			"output %dx%d is not half of input %dx%d", out.Width(), out.Height(), in.Width(), in.Height())
	}
	return nil
}

// DownsampleHalf writes the average of every 2x2 block of in to out. out
// must be exactly half of in in both directions; an odd last row or column
// of in is ignored.
func DownsampleHalf[T vc.Scalar, TG vc.Target](in, out vc.Buffer2DView[T, TG]) error {
	if err := checkHalf("DownsampleHalf", in, out); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if !out.InBounds(x, y) {
			return
		}
		top, bottom := in.Row(2*y), in.Row(2*y+1)
		sum := float64(top[2*x]) + float64(top[2*x+1]) + float64(bottom[2*x]) + float64(bottom[2*x+1])
		out.Set(x, y, vc.ConvertPixel[float64, T](sum/4))
	})
	return nil
}

// DownsampleHalfNoInvalid is DownsampleHalf that averages only the valid
// pixels of each block. A block without valid pixels produces Invalid.
func DownsampleHalfNoInvalid[T vc.Scalar, TG vc.Target](in, out vc.Buffer2DView[T, TG]) error {
	if err := checkHalf("DownsampleHalfNoInvalid", in, out); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if !out.InBounds(x, y) {
			return
		}
		top, bottom := in.Row(2*y), in.Row(2*y+1)
		block := [4]T{top[2*x], top[2*x+1], bottom[2*x], bottom[2*x+1]}

		var sum float64
		n := 0
		for _, v := range block {
			if vc.IsValid(v) {
				sum += float64(v)
				n++
			}
		}
		if n == 0 {
			out.Set(x, y, vc.Invalid[T]())
			return
		}
		out.Set(x, y, vc.ConvertPixel[float64, T](sum/float64(n)))
	})
	return nil
}

// LeaveQuarter keeps the top-left pixel of every 2x2 block of in
func LeaveQuarter[T any, TG vc.Target](in, out vc.Buffer2DView[T, TG]) error {
	if err := checkHalf("LeaveQuarter", in, out); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if out.InBounds(x, y) {
			out.Set(x, y, in.Get(2*x, 2*y))
		}
	})
	return nil
}

// BuildPyramid fills levels 1 and up of pyr by repeatedly halving the level
// above with DownsampleHalf. Level 0 is left untouched.
func BuildPyramid[T vc.Scalar, TG vc.Target](pyr vc.PyramidView[vc.Buffer2DView[T, TG]]) error {
	for i := 1; i < pyr.Levels(); i++ {
		if err := DownsampleHalf(pyr.Level(i-1), pyr.Level(i)); err != nil {
			return err
		}
	}
	return nil
}
