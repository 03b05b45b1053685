package visioncore

import (
	"unsafe"
)

// Transfer1D copies src into dst, which may live on different targets. It
// is the only operation in the package that accepts two targets; every
// kernel requires a single one.
func Transfer1D[T any, DT, ST Target](dst Buffer1DView[T, DT], src Buffer1DView[T, ST]) error {
	if dst.Size() != src.Size() {
		return NewPreconditionError("Memcpy", ErrDimensionMismatch,
			"dst has %d elements, src has %d", dst.Size(), src.Size())
	}
	copy(dst.data, src.data)
	DefaultContext().recordTransfer(memcpyKind(KindOf[DT](), KindOf[ST]()), src.SizeBytes())
	return nil
}

// Transfer2D copies src into dst row by row, honouring both pitches. The
// views may live on different targets.
func Transfer2D[T any, DT, ST Target](dst Buffer2DView[T, DT], src Buffer2DView[T, ST]) error {
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return NewPreconditionError("Memcpy2D", ErrDimensionMismatch,
			"dst is %dx%d, src is %dx%d", dst.Width(), dst.Height(), src.Width(), src.Height())
	}
	if src.IsEmpty() {
		return nil
	}

	if src.IsDense() && dst.IsDense() {
		copy(dst.data, src.data)
	} else {
		for y := 0; y < src.height; y++ {
			copy(dst.Row(y), src.Row(y))
		}
	}

	var zero T
	DefaultContext().recordTransfer(memcpyKind(KindOf[DT](), KindOf[ST]()), src.Area()*int(unsafe.Sizeof(zero)))
	return nil
}

// Copy1D copies between two views on the same target
func Copy1D[T any, TG Target](dst, src Buffer1DView[T, TG]) error {
	return Transfer1D(dst, src)
}

// Copy2D copies between two views on the same target
func Copy2D[T any, TG Target](dst, src Buffer2DView[T, TG]) error {
	return Transfer2D(dst, src)
}
