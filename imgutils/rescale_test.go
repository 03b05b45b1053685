package imgutils

import (
	"testing"

	vc "github.com/LynnColeArt/visioncore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClamp[TG vc.Target](t *testing.T) {
	buf := vc.Buffer2DFromRows[float32, TG](t, [][]float32{{-1.0, 0.5, 2.0}})
	ClampBuffer(buf.View(), 0.2, 0.8)
	assert.Equal(t, [][]float32{{0.2, 0.5, 0.8}}, vc.Rows(buf.View()))

	buf1 := vc.NewBuffer1DOrFail[float32, TG](t, 3)
	copy(buf1.View().Data(), []float32{-1.0, 0.5, 2.0})
	ClampBuffer1D(buf1.View(), 0.2, 0.8)
	assert.Equal(t, []float32{0.2, 0.5, 0.8}, buf1.View().Data())
}

func TestClampBuffer(t *testing.T) {
	t.Run("host", testClamp[vc.Host])
	t.Run("device", testClamp[vc.Device])
}

func testRescale[TG vc.Target](t *testing.T) {
	in := vc.Buffer2DFromRows[uint8, TG](t, [][]uint8{
		{0, 100, 200},
		{255, 50, 10},
	})
	out := vc.NewBuffer2DOrFail[float32, TG](t, 3, 2)

	require.NoError(t, RescaleBuffer(in.View(), out.View(), 1.0/255, 0, 0, 1))
	got := vc.Rows(out.View())
	assert.InDelta(t, 0.0, got[0][0], 1e-6)
	assert.InDelta(t, 200.0/255, got[0][2], 1e-6)
	assert.InDelta(t, 1.0, got[1][0], 1e-6)

	// saturating conversion back to bytes
	back := vc.NewBuffer2DOrFail[uint8, TG](t, 3, 2)
	require.NoError(t, RescaleBuffer(in.View(), back.View(), 2, 0, 0, 1000))
	assert.Equal(t, [][]uint8{{0, 200, 255}, {255, 100, 20}}, vc.Rows(back.View()))

	wrong := vc.NewBuffer2DOrFail[float32, TG](t, 2, 3)
	assert.ErrorIs(t, RescaleBuffer(in.View(), wrong.View(), 1, 0, 0, 1), vc.ErrDimensionMismatch)
}

func TestRescaleBuffer(t *testing.T) {
	t.Run("host", testRescale[vc.Host])
	t.Run("device", testRescale[vc.Device])
}

func TestRescaleBufferInplace(t *testing.T) {
	buf := vc.Buffer2DFromRows[float64, vc.Device](t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, RescaleBufferInplace(buf.View(), 2, -1, 0, 6))
	assert.Equal(t, [][]float64{{1, 3}, {5, 6}}, vc.Rows(buf.View()))

	buf1 := vc.NewBuffer1DOrFail[int32, vc.Host](t, 4)
	copy(buf1.View().Data(), []int32{-5, 0, 5, 10})
	require.NoError(t, RescaleBufferInplace1D(buf1.View(), 3, 1, -10, 20))
	assert.Equal(t, []int32{-10, 1, 16, 20}, buf1.View().Data())
}

func TestRescaleBufferInplaceMinMax(t *testing.T) {
	buf := vc.Buffer2DFromRows[float32, vc.Host](t, [][]float32{{10, 15, 20, 30}})
	require.NoError(t, RescaleBufferInplaceMinMax(buf.View(), 10, 20, 0, 1))
	assert.Equal(t, [][]float32{{0, 0.5, 1, 1}}, vc.Rows(buf.View()))

	assert.ErrorIs(t, RescaleBufferInplaceMinMax(buf.View(), 3, 3, 0, 1), vc.ErrDegenerateRange)
}

func testNormalize[TG vc.Target](t *testing.T) {
	buf := vc.Buffer2DFromRows[float64, TG](t, [][]float64{
		{-2, 0},
		{2, 6},
	})
	require.NoError(t, NormalizeBufferInplace(buf.View()))
	assert.Equal(t, [][]float64{{0, 0.25}, {0.5, 1}}, vc.Rows(buf.View()))

	flat := vc.NewBuffer2DOrFail[float64, TG](t, 2, 2)
	FillBuffer(flat.View(), 7)
	assert.ErrorIs(t, NormalizeBufferInplace(flat.View()), vc.ErrDegenerateRange)

	var empty vc.Buffer2DView[float64, TG]
	assert.NoError(t, NormalizeBufferInplace(empty))
}

func TestNormalizeBufferInplace(t *testing.T) {
	t.Run("host", testNormalize[vc.Host])
	t.Run("device", testNormalize[vc.Device])
}
