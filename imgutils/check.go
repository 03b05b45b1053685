package imgutils

import (
	vc "github.com/LynnColeArt/visioncore"
)

// sameExtents returns a dimension mismatch error unless every extents pair
// equals the first one
func sameExtents(op string, extents ...[2]int) error {
	for _, e := range extents[1:] {
		if e != extents[0] {
			return vc.NewPreconditionError(op, vc.ErrDimensionMismatch,
				"%dx%d does not match %dx%d", e[0], e[1], extents[0][0], extents[0][1])
		}
	}
	return nil
}

func dims[T any, TG vc.Target](v vc.Buffer2DView[T, TG]) [2]int {
	return [2]int{v.Width(), v.Height()}
}
