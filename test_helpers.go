package visioncore

import (
	"testing"
)

// NewBuffer1DOrFail allocates a 1D buffer, fails the test if unsuccessful
// and destroys the buffer when the test ends
func NewBuffer1DOrFail[T any, TG Target](t testing.TB, n int) *Buffer1D[T, TG] {
	t.Helper()
	buf, err := NewBuffer1D[T, TG](n)
	if err != nil {
		t.Fatalf("Failed to allocate %d elements on %s: %v", n, KindOf[TG](), err)
	}
	t.Cleanup(func() { buf.Destroy() })
	return buf
}

// NewBuffer2DOrFail allocates a 2D buffer, fails the test if unsuccessful
// and destroys the buffer when the test ends
func NewBuffer2DOrFail[T any, TG Target](t testing.TB, width, height int) *Buffer2D[T, TG] {
	t.Helper()
	buf, err := NewBuffer2D[T, TG](width, height)
	if err != nil {
		t.Fatalf("Failed to allocate %dx%d on %s: %v", width, height, KindOf[TG](), err)
	}
	t.Cleanup(func() { buf.Destroy() })
	return buf
}

// Buffer2DFromRows allocates a buffer holding rows, which must all have the
// same length
func Buffer2DFromRows[T any, TG Target](t testing.TB, rows [][]T) *Buffer2D[T, TG] {
	t.Helper()
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	buf := NewBuffer2DOrFail[T, TG](t, width, len(rows))
	view := buf.View()
	for y, row := range rows {
		if len(row) != width {
			t.Fatalf("row %d has %d elements, want %d", y, len(row), width)
		}
		copy(view.Row(y), row)
	}
	return buf
}

// Rows copies a 2D view into a slice of rows
func Rows[T any, TG Target](v Buffer2DView[T, TG]) [][]T {
	rows := make([][]T, v.Height())
	for y := range rows {
		rows[y] = append([]T(nil), v.Row(y)...)
	}
	return rows
}
