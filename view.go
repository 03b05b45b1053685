package visioncore

import (
	"unsafe"
)

// Buffer1DView is a non-owning view over a contiguous run of elements on
// target TG. Copying a view copies the descriptor, never the elements.
//
// Access is two-tier: InBounds is the checked query, Get/Set/Ptr are the
// unchecked fast path. Kernels must call InBounds (or otherwise guarantee
// the index) before using the fast path; an index outside the view is a
// caller bug, not a recoverable error.
//
// The zero value is the empty view: Size is 0 and InBounds is always false.
type Buffer1DView[T any, TG Target] struct {
	data []T
}

// NewBuffer1DView creates a view over caller memory. The memory must stay
// alive, and on TG, for as long as the view is used.
func NewBuffer1DView[T any, TG Target](data []T) Buffer1DView[T, TG] {
	return Buffer1DView[T, TG]{data: data[:len(data):len(data)]}
}

// Size returns the number of elements
func (v Buffer1DView[T, TG]) Size() int {
	return len(v.data)
}

// SizeBytes returns the size of the viewed memory in bytes
func (v Buffer1DView[T, TG]) SizeBytes() int {
	var zero T
	return len(v.data) * int(unsafe.Sizeof(zero))
}

// IsEmpty reports whether the view has no elements
func (v Buffer1DView[T, TG]) IsEmpty() bool {
	return len(v.data) == 0
}

// InBounds reports whether 0 <= i < Size()
func (v Buffer1DView[T, TG]) InBounds(i int) bool {
	return i >= 0 && i < len(v.data)
}

// Get returns element i without checking it against the view extents
func (v Buffer1DView[T, TG]) Get(i int) T {
	return v.data[i]
}

// Set stores element i without checking it against the view extents
func (v Buffer1DView[T, TG]) Set(i int, val T) {
	v.data[i] = val
}

// Ptr returns the address of element i without checking it against the
// view extents
func (v Buffer1DView[T, TG]) Ptr(i int) *T {
	return &v.data[i]
}

// Data returns the viewed elements
func (v Buffer1DView[T, TG]) Data() []T {
	return v.data
}

// SubView returns a view of n elements starting at offset that shares this
// view's memory.
func (v Buffer1DView[T, TG]) SubView(offset, n int) (Buffer1DView[T, TG], error) {
	if offset < 0 || n < 0 || offset > len(v.data)-n {
		return Buffer1DView[T, TG]{}, NewPreconditionError("SubView", ErrRegionOutOfRange,
			"[%d, %d) outside view of %d elements", offset, offset+n, len(v.data))
	}
	return Buffer1DView[T, TG]{data: v.data[offset : offset+n : offset+n]}, nil
}

// CopyFrom copies src into v. Both views must have the same size.
func (v Buffer1DView[T, TG]) CopyFrom(src Buffer1DView[T, TG]) error {
	return Copy1D(v, src)
}

// Buffer2DView is a non-owning view over a row-strided 2D region on target
// TG. Row y starts Pitch() elements after row y-1; Pitch may exceed Width
// when rows are padded.
//
// The same two-tier contract as Buffer1DView applies: InBounds is checked,
// Get/Set/Ptr/Row are not.
type Buffer2DView[T any, TG Target] struct {
	data   []T
	width  int
	height int
	pitch  int // elements per row, including padding
}

// NewBuffer2DView creates a view of width x height elements over caller
// memory with rows pitch elements apart. A pitch of 0 means dense rows.
func NewBuffer2DView[T any, TG Target](data []T, width, height, pitch int) (Buffer2DView[T, TG], error) {
	if pitch == 0 {
		pitch = width
	}
	if width < 0 || height < 0 {
		return Buffer2DView[T, TG]{}, NewPreconditionError("NewBuffer2DView", ErrInvalidSize,
			"negative extents %dx%d", width, height)
	}
	if pitch < width {
		return Buffer2DView[T, TG]{}, NewPreconditionError("NewBuffer2DView", ErrInvalidPitch,
			"pitch %d < width %d", pitch, width)
	}
	need := spanOf(width, height, pitch)
	if need > len(data) {
		return Buffer2DView[T, TG]{}, NewPreconditionError("NewBuffer2DView", ErrShortBacking,
			"%dx%d with pitch %d needs %d elements, have %d", width, height, pitch, need, len(data))
	}
	return Buffer2DView[T, TG]{
		data:   data[:need:need],
		width:  width,
		height: height,
		pitch:  pitch,
	}, nil
}

// spanOf returns the number of elements a strided region touches
func spanOf(width, height, pitch int) int {
	if width == 0 || height == 0 {
		return 0
	}
	return (height-1)*pitch + width
}

// Width returns the number of columns
func (v Buffer2DView[T, TG]) Width() int {
	return v.width
}

// Height returns the number of rows
func (v Buffer2DView[T, TG]) Height() int {
	return v.height
}

// Pitch returns the distance between rows in elements
func (v Buffer2DView[T, TG]) Pitch() int {
	return v.pitch
}

// PitchBytes returns the distance between rows in bytes
func (v Buffer2DView[T, TG]) PitchBytes() int {
	var zero T
	return v.pitch * int(unsafe.Sizeof(zero))
}

// Area returns Width()*Height()
func (v Buffer2DView[T, TG]) Area() int {
	return v.width * v.height
}

// IsEmpty reports whether the view has no elements
func (v Buffer2DView[T, TG]) IsEmpty() bool {
	return v.width == 0 || v.height == 0
}

// IsDense reports whether rows follow each other without padding
func (v Buffer2DView[T, TG]) IsDense() bool {
	return v.pitch == v.width || v.height <= 1
}

// InBounds reports whether 0 <= x < Width() and 0 <= y < Height()
func (v Buffer2DView[T, TG]) InBounds(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// Get returns the element at (x, y) without checking the view extents
func (v Buffer2DView[T, TG]) Get(x, y int) T {
	return v.data[y*v.pitch+x]
}

// Set stores the element at (x, y) without checking the view extents
func (v Buffer2DView[T, TG]) Set(x, y int, val T) {
	v.data[y*v.pitch+x] = val
}

// Ptr returns the address of the element at (x, y) without checking the
// view extents
func (v Buffer2DView[T, TG]) Ptr(x, y int) *T {
	return &v.data[y*v.pitch+x]
}

// Row returns the Width() elements of row y without checking y
func (v Buffer2DView[T, TG]) Row(y int) []T {
	start := y * v.pitch
	return v.data[start : start+v.width : start+v.width]
}

// Data returns the viewed memory, from the first element of row 0 to the
// last element of the last row, padding included
func (v Buffer2DView[T, TG]) Data() []T {
	return v.data
}

// SubView returns a view of the w x h region whose top-left corner is
// (x, y). The region must lie inside this view; it shares its memory and
// pitch.
func (v Buffer2DView[T, TG]) SubView(x, y, w, h int) (Buffer2DView[T, TG], error) {
	if x < 0 || y < 0 || w < 0 || h < 0 || x > v.width-w || y > v.height-h {
		return Buffer2DView[T, TG]{}, NewPreconditionError("SubView", ErrRegionOutOfRange,
			"%dx%d at (%d,%d) outside %dx%d view", w, h, x, y, v.width, v.height)
	}
	if w == 0 || h == 0 {
		return Buffer2DView[T, TG]{width: w, height: h, pitch: v.pitch}, nil
	}
	start := y*v.pitch + x
	end := start + spanOf(w, h, v.pitch)
	return Buffer2DView[T, TG]{
		data:   v.data[start:end:end],
		width:  w,
		height: h,
		pitch:  v.pitch,
	}, nil
}

// AsBuffer1D returns the elements of a dense view as a 1D view
func (v Buffer2DView[T, TG]) AsBuffer1D() (Buffer1DView[T, TG], error) {
	if !v.IsDense() {
		return Buffer1DView[T, TG]{}, NewPreconditionError("AsBuffer1D", ErrNotDense,
			"pitch %d != width %d", v.pitch, v.width)
	}
	return Buffer1DView[T, TG]{data: v.data}, nil
}

// CopyFrom copies src into v row by row. Both views must have the same
// width and height; pitches may differ.
func (v Buffer2DView[T, TG]) CopyFrom(src Buffer2DView[T, TG]) error {
	return Copy2D(v, src)
}
