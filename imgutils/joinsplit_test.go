package imgutils

import (
	"testing"

	vc "github.com/LynnColeArt/visioncore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJoinSplit[TG vc.Target](t *testing.T) {
	r := vc.Buffer2DFromRows[uint8, TG](t, [][]uint8{{1, 2}, {3, 4}})
	g := vc.Buffer2DFromRows[uint8, TG](t, [][]uint8{{5, 6}, {7, 8}})
	b := vc.Buffer2DFromRows[uint8, TG](t, [][]uint8{{9, 10}, {11, 12}})
	a := vc.Buffer2DFromRows[uint8, TG](t, [][]uint8{{13, 14}, {15, 16}})

	rgba := vc.NewBuffer2DOrFail[vc.Vec4[uint8], TG](t, 2, 2)
	require.NoError(t, Join4(r.View(), g.View(), b.View(), a.View(), rgba.View()))
	assert.Equal(t, vc.Vec4[uint8]{X: 4, Y: 8, Z: 12, W: 16}, rgba.View().Get(1, 1))

	outs := make([]*vc.Buffer2D[uint8, TG], 4)
	for i := range outs {
		outs[i] = vc.NewBuffer2DOrFail[uint8, TG](t, 2, 2)
	}
	require.NoError(t, Split4(rgba.View(), outs[0].View(), outs[1].View(), outs[2].View(), outs[3].View()))
	for i, src := range []*vc.Buffer2D[uint8, TG]{r, g, b, a} {
		assert.Equal(t, vc.Rows(src.View()), vc.Rows(outs[i].View()), "channel %d", i)
	}

	rgb := vc.NewBuffer2DOrFail[vc.Vec3[uint8], TG](t, 2, 2)
	require.NoError(t, Join3(r.View(), g.View(), b.View(), rgb.View()))
	require.NoError(t, Split3(rgb.View(), outs[2].View(), outs[1].View(), outs[0].View()))
	assert.Equal(t, vc.Rows(r.View()), vc.Rows(outs[2].View()))
	assert.Equal(t, vc.Rows(b.View()), vc.Rows(outs[0].View()))

	rg := vc.NewBuffer2DOrFail[vc.Vec2[uint8], TG](t, 2, 2)
	require.NoError(t, Join2(r.View(), g.View(), rg.View()))
	require.NoError(t, Split2(rg.View(), outs[1].View(), outs[0].View()))
	assert.Equal(t, vc.Rows(r.View()), vc.Rows(outs[1].View()))
	assert.Equal(t, vc.Rows(g.View()), vc.Rows(outs[0].View()))
}

func TestJoinSplit(t *testing.T) {
	t.Run("host", testJoinSplit[vc.Host])
	t.Run("device", testJoinSplit[vc.Device])
}

func TestJoinDimensionMismatch(t *testing.T) {
	r := vc.NewBuffer2DOrFail[float32, vc.Host](t, 2, 2)
	g := vc.NewBuffer2DOrFail[float32, vc.Host](t, 3, 2)
	out := vc.NewBuffer2DOrFail[vc.Vec2[float32], vc.Host](t, 2, 2)
	assert.ErrorIs(t, Join2(r.View(), g.View(), out.View()), vc.ErrDimensionMismatch)
	assert.ErrorIs(t, Split2(out.View(), r.View(), g.View()), vc.ErrDimensionMismatch)
}
