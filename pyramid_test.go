package visioncore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPyramidHalvesLevels(t *testing.T) {
	pyr, err := NewPyramid[float32, Device](4, 64, 48)
	require.NoError(t, err)
	defer pyr.Destroy()

	require.Equal(t, 4, pyr.Levels())
	wantW := []int{64, 32, 16, 8}
	wantH := []int{48, 24, 12, 6}
	for i := 0; i < pyr.Levels(); i++ {
		assert.Equal(t, wantW[i], pyr.Level(i).Width(), "level %d", i)
		assert.Equal(t, wantH[i], pyr.Level(i).Height(), "level %d", i)
	}

	view := pyr.View()
	require.Equal(t, 4, view.Levels())
	assert.Equal(t, 16, view.Level(2).Width())
}

func TestNewPyramidValidation(t *testing.T) {
	_, err := NewPyramid[float32, Host](0, 8, 8)
	assert.ErrorIs(t, err, ErrLevelRange)

	_, err = NewPyramid[float32, Host](2, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidSize)

	// 8 >> 3 == 1, 8 >> 4 == 0
	p, err := NewPyramid[float32, Host](4, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Level(3).Width())
	require.NoError(t, p.Destroy())

	_, err = NewPyramid[float32, Host](5, 8, 8)
	assert.ErrorIs(t, err, ErrLevelRange)

	_, err = NewPyramid[float32, Host](80, 8, 8)
	assert.ErrorIs(t, err, ErrLevelRange)
}

func TestPyramidViewSubPyramidAliases(t *testing.T) {
	pyr, err := NewPyramid[int32, Host](3, 8, 8)
	require.NoError(t, err)
	defer pyr.Destroy()

	view := pyr.View()
	sub, err := view.SubPyramid(1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, sub.Levels())
	assert.Equal(t, 4, sub.Level(0).Width())

	sub.Level(0).Set(1, 1, 9)
	assert.Equal(t, int32(9), pyr.Level(1).View().Get(1, 1), "sub-pyramids share pixels")

	_, err = view.SubPyramid(2, 2)
	assert.ErrorIs(t, err, ErrLevelRange)
	_, err = view.SubPyramid(-1, 1)
	assert.ErrorIs(t, err, ErrLevelRange)

	empty, err := view.SubPyramid(3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Levels())
}

func TestPyramidViewCloneAndSwap(t *testing.T) {
	a := NewPyramidView(1, 2, 3)
	b := NewPyramidView(7)

	clone := a.Clone()
	clone.Set(0, 10)
	assert.Equal(t, 1, a.Level(0), "clones copy the level descriptors")

	a.Swap(&b)
	assert.Equal(t, 1, a.Levels())
	assert.Equal(t, 7, a.Level(0))
	assert.Equal(t, 3, b.Levels())
}

func TestNewPyramidViewCopiesLevels(t *testing.T) {
	levels := []string{"a", "b"}
	p := NewPyramidView(levels...)
	levels[0] = "z"
	assert.Equal(t, "a", p.Level(0))
}

func TestPyramidViewCopyIsIndependent(t *testing.T) {
	big := NewBuffer1DOrFail[float32, Host](t, 4)
	small := NewBuffer1DOrFail[float32, Host](t, 2)

	p := NewPyramidView(big.View(), small.View())
	q := p
	q.Set(0, small.View())

	assert.Equal(t, 4, p.Level(0).Size(), "assignment copies the levels")
	assert.Equal(t, 2, q.Level(0).Size())

	sub, err := p.SubPyramid(0, 1)
	require.NoError(t, err)
	sub.Set(0, small.View())
	assert.Equal(t, 4, p.Level(0).Size())
}
