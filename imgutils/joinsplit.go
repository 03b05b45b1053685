package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

// Join2 interleaves two single-channel views into a two-channel view
func Join2[S vc.Scalar, TG vc.Target](in1, in2 vc.Buffer2DView[S, TG], out vc.Buffer2DView[vc.Vec2[S], TG]) error {
	if err := sameExtents("Join2", dims(out), dims(in1), dims(in2)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if out.InBounds(x, y) {
			out.Set(x, y, vc.Vec2[S]{X: in1.Get(x, y), Y: in2.Get(x, y)})
		}
	})
	return nil
}

// Join3 interleaves three single-channel views into a three-channel view
func Join3[S vc.Scalar, TG vc.Target](in1, in2, in3 vc.Buffer2DView[S, TG], out vc.Buffer2DView[vc.Vec3[S], TG]) error {
	if err := sameExtents("Join3", dims(out), dims(in1), dims(in2), dims(in3)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if out.InBounds(x, y) {
			out.Set(x, y, vc.Vec3[S]{X: in1.Get(x, y), Y: in2.Get(x, y), Z: in3.Get(x, y)})
		}
	})
	return nil
}

// Join4 interleaves four single-channel views into a four-channel view
func Join4[S vc.Scalar, TG vc.Target](in1, in2, in3, in4 vc.Buffer2DView[S, TG], out vc.Buffer2DView[vc.Vec4[S], TG]) error {
	if err := sameExtents("Join4", dims(out), dims(in1), dims(in2), dims(in3), dims(in4)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](out.Width(), out.Height(), func(x, y int) {
		if out.InBounds(x, y) {
			out.Set(x, y, vc.Vec4[S]{X: in1.Get(x, y), Y: in2.Get(x, y), Z: in3.Get(x, y), W: in4.Get(x, y)})
		}
	})
	return nil
}

// Split2 separates a two-channel view into one view per channel
func Split2[S vc.Scalar, TG vc.Target](in vc.Buffer2DView[vc.Vec2[S], TG], out1, out2 vc.Buffer2DView[S, TG]) error {
	if err := sameExtents("Split2", dims(in), dims(out1), dims(out2)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if in.InBounds(x, y) {
			p := in.Get(x, y)
			out1.Set(x, y, p.X)
			out2.Set(x, y, p.Y)
		}
	})
	return nil
}

// Split3 separates a three-channel view into one view per channel
func Split3[S vc.Scalar, TG vc.Target](in vc.Buffer2DView[vc.Vec3[S], TG], out1, out2, out3 vc.Buffer2DView[S, TG]) error {
	if err := sameExtents("Split3", dims(in), dims(out1), dims(out2), dims(out3)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if in.InBounds(x, y) {
			p := in.Get(x, y)
			out1.Set(x, y, p.X)
			out2.Set(x, y, p.Y)
			out3.Set(x, y, p.Z)
		}
	})
	return nil
}

// Split4 separates a four-channel view into one view per channel
func Split4[S vc.Scalar, TG vc.Target](in vc.Buffer2DView[vc.Vec4[S], TG], out1, out2, out3, out4 vc.Buffer2DView[S, TG]) error {
	if err := sameExtents("Split4", dims(in), dims(out1), dims(out2), dims(out3), dims(out4)); err != nil {
		return err
	}
	vc.LaunchParallelFor2D[TG](in.Width(), in.Height(), func(x, y int) {
		if in.InBounds(x, y) {
			p := in.Get(x, y)
			out1.Set(x, y, p.X)
			out2.Set(x, y, p.Y)
			out3.Set(x, y, p.Z)
			out4.Set(x, y, p.W)
		}
	})
	return nil
}
