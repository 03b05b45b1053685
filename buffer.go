package visioncore

import (
	"unsafe"
)

// Buffer1D owns a contiguous allocation of elements on target TG and hands
// out views of it. A Buffer1D is the only owner of its memory: Move and
// Swap transfer ownership, Clone makes a deep copy.
//
// Destroying a buffer invalidates every view taken from it. Using such a
// view afterwards is a caller bug the type system does not catch; on Device
// the memory may already belong to another buffer.
type Buffer1D[T any, TG Target] struct {
	view Buffer1DView[T, TG]
	mem  region
}

// NewBuffer1D allocates n zeroed elements on TG. It fails with a memory
// error when the target cannot hold the allocation and with an invalid
// argument error for a negative n or an element type holding pointers.
func NewBuffer1D[T any, TG Target](n int) (*Buffer1D[T, TG], error) {
	data, mem, err := allocElements[T, TG]("NewBuffer1D", n)
	if err != nil {
		return nil, err
	}
	return &Buffer1D[T, TG]{view: Buffer1DView[T, TG]{data: data}, mem: mem}, nil
}

// View returns a view aliasing the buffer's memory
func (b *Buffer1D[T, TG]) View() Buffer1DView[T, TG] {
	return b.view
}

// Size returns the number of elements the buffer was allocated with
func (b *Buffer1D[T, TG]) Size() int {
	return b.view.Size()
}

// Move returns a new owner of the buffer's memory and leaves b empty
func (b *Buffer1D[T, TG]) Move() *Buffer1D[T, TG] {
	moved := &Buffer1D[T, TG]{view: b.view, mem: b.mem}
	b.view, b.mem = Buffer1DView[T, TG]{}, region{}
	return moved
}

// Swap exchanges the memory owned by b and other
func (b *Buffer1D[T, TG]) Swap(other *Buffer1D[T, TG]) {
	b.view, other.view = other.view, b.view
	b.mem, other.mem = other.mem, b.mem
}

// Clone allocates a new buffer of the same size on the same target and
// copies the elements into it
func (b *Buffer1D[T, TG]) Clone() (*Buffer1D[T, TG], error) {
	c, err := NewBuffer1D[T, TG](b.Size())
	if err != nil {
		return nil, err
	}
	if err := Copy1D(c.view, b.view); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

// Destroy releases the buffer's memory. Calling it again, or on a moved-from
// buffer, does nothing.
func (b *Buffer1D[T, TG]) Destroy() error {
	mem := b.mem
	b.view, b.mem = Buffer1DView[T, TG]{}, region{}
	if mem.empty() {
		return nil
	}
	return mem.owner.release(mem)
}

// Buffer2D owns a row-strided 2D allocation on target TG. Host buffers are
// dense; Device rows are padded so every row starts on the context's pitch
// alignment. Always read the pitch from the view.
type Buffer2D[T any, TG Target] struct {
	view Buffer2DView[T, TG]
	mem  region
}

// NewBuffer2D allocates a zeroed width x height buffer on TG
func NewBuffer2D[T any, TG Target](width, height int) (*Buffer2D[T, TG], error) {
	if width < 0 || height < 0 {
		return nil, NewPreconditionError("NewBuffer2D", ErrInvalidSize, "negative extents %dx%d", width, height)
	}

	var tg TG
	pitch := alignedPitch[T](width, tg.space().rowAlignment())
	if height > 0 && pitch > maxInt/height {
		return nil, NewPreconditionError("NewBuffer2D", ErrInvalidSize, "%dx%d overflows", pitch, height)
	}

	data, mem, err := allocElements[T, TG]("NewBuffer2D", pitch*height)
	if err != nil {
		return nil, err
	}

	view := Buffer2DView[T, TG]{width: width, height: height, pitch: pitch}
	if len(data) > 0 {
		n := spanOf(width, height, pitch)
		view.data = data[:n:n]
	}
	return &Buffer2D[T, TG]{view: view, mem: mem}, nil
}

// alignedPitch returns the smallest row length in elements that is at
// least width and whose size in bytes is a multiple of align.
func alignedPitch[T any](width, align int) int {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if align <= 0 || elem == 0 || width == 0 {
		return width
	}
	// rows must hold whole elements, so step in units of lcm(elem, align)
	step := lcm(elem, align) / elem
	return (width + step - 1) / step * step
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// View returns a view aliasing the buffer's memory
func (b *Buffer2D[T, TG]) View() Buffer2DView[T, TG] {
	return b.view
}

// Width returns the number of columns
func (b *Buffer2D[T, TG]) Width() int {
	return b.view.Width()
}

// Height returns the number of rows
func (b *Buffer2D[T, TG]) Height() int {
	return b.view.Height()
}

// Pitch returns the distance between rows in elements
func (b *Buffer2D[T, TG]) Pitch() int {
	return b.view.Pitch()
}

// Move returns a new owner of the buffer's memory and leaves b empty
func (b *Buffer2D[T, TG]) Move() *Buffer2D[T, TG] {
	moved := &Buffer2D[T, TG]{view: b.view, mem: b.mem}
	b.view, b.mem = Buffer2DView[T, TG]{}, region{}
	return moved
}

// Swap exchanges the memory owned by b and other
func (b *Buffer2D[T, TG]) Swap(other *Buffer2D[T, TG]) {
	b.view, other.view = other.view, b.view
	b.mem, other.mem = other.mem, b.mem
}

// Clone allocates a buffer with the same extents on the same target and
// copies the elements into it
func (b *Buffer2D[T, TG]) Clone() (*Buffer2D[T, TG], error) {
	c, err := NewBuffer2D[T, TG](b.Width(), b.Height())
	if err != nil {
		return nil, err
	}
	if err := Copy2D(c.view, b.view); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

// Destroy releases the buffer's memory. Calling it again, or on a moved-from
// buffer, does nothing.
func (b *Buffer2D[T, TG]) Destroy() error {
	mem := b.mem
	b.view, b.mem = Buffer2DView[T, TG]{}, region{}
	if mem.empty() {
		return nil
	}
	return mem.owner.release(mem)
}
