package visioncore

// PyramidView is a fixed-length sequence of views, one per level. Level 0
// is conventionally the full-resolution image and every following level
// half the size of the previous one, but the view itself does not enforce
// it. Copying a PyramidView copies the level descriptors, not the pixels:
// Set on one copy never changes another.
type PyramidView[V any] struct {
	levels []V
}

// NewPyramidView creates a pyramid with the given level views
func NewPyramidView[V any](levels ...V) PyramidView[V] {
	return PyramidView[V]{levels: append([]V(nil), levels...)}
}

// Levels returns the number of levels
func (p PyramidView[V]) Levels() int {
	return len(p.levels)
}

// Level returns level i without checking it
func (p PyramidView[V]) Level(i int) V {
	return p.levels[i]
}

// Set replaces the descriptor at level i without checking it. The levels
// are copied first, so other copies of p keep their descriptors.
func (p *PyramidView[V]) Set(i int, v V) {
	levels := append([]V(nil), p.levels...)
	levels[i] = v
	p.levels = levels
}

// SubPyramid returns levels [start, start+n) as a new pyramid that aliases
// the same pixel memory.
func (p PyramidView[V]) SubPyramid(start, n int) (PyramidView[V], error) {
	if start < 0 || n < 0 || start > len(p.levels)-n {
		return PyramidView[V]{}, NewPreconditionError("SubPyramid", ErrLevelRange,
			"levels [%d, %d) outside pyramid of %d", start, start+n, len(p.levels))
	}
	return PyramidView[V]{levels: append([]V(nil), p.levels[start:start+n]...)}, nil
}

// Clone returns an independent copy of the level descriptors
func (p PyramidView[V]) Clone() PyramidView[V] {
	return NewPyramidView(p.levels...)
}

// Swap exchanges the levels of p and other
func (p *PyramidView[V]) Swap(other *PyramidView[V]) {
	p.levels, other.levels = other.levels, p.levels
}

// Pyramid owns one Buffer2D per level. Level i is (width>>i) x (height>>i).
type Pyramid[T any, TG Target] struct {
	buffers []*Buffer2D[T, TG]
}

// NewPyramid allocates a pyramid of levels buffers whose base is width x
// height. The last level must still be at least 1x1.
func NewPyramid[T any, TG Target](levels, width, height int) (*Pyramid[T, TG], error) {
	if levels <= 0 {
		return nil, NewPreconditionError("NewPyramid", ErrLevelRange, "need at least one level, got %d", levels)
	}
	if width <= 0 || height <= 0 {
		return nil, NewPreconditionError("NewPyramid", ErrInvalidSize, "base level %dx%d", width, height)
	}
	if levels > bitsOfInt || width>>(levels-1) == 0 || height>>(levels-1) == 0 {
		return nil, NewPreconditionError("NewPyramid", ErrLevelRange,
			"%d levels do not fit a %dx%d base", levels, width, height)
	}

	p := &Pyramid[T, TG]{buffers: make([]*Buffer2D[T, TG], 0, levels)}
	w, h := width, height
	for i := 0; i < levels; i++ {
		b, err := NewBuffer2D[T, TG](w, h)
		if err != nil {
			p.Destroy()
			return nil, err
		}
		p.buffers = append(p.buffers, b)
		w, h = w/2, h/2
	}
	return p, nil
}

const bitsOfInt = 32 << (^uint(0) >> 63)

// Levels returns the number of levels
func (p *Pyramid[T, TG]) Levels() int {
	return len(p.buffers)
}

// Level returns the buffer of level i
func (p *Pyramid[T, TG]) Level(i int) *Buffer2D[T, TG] {
	return p.buffers[i]
}

// View returns a pyramid view over every level
func (p *Pyramid[T, TG]) View() PyramidView[Buffer2DView[T, TG]] {
	levels := make([]Buffer2DView[T, TG], len(p.buffers))
	for i, b := range p.buffers {
		levels[i] = b.View()
	}
	return PyramidView[Buffer2DView[T, TG]]{levels: levels}
}

// Destroy releases every level. The first release error is returned.
func (p *Pyramid[T, TG]) Destroy() error {
	var first error
	for _, b := range p.buffers {
		if err := b.Destroy(); err != nil && first == nil {
			first = err
		}
	}
	p.buffers = nil
	return first
}
