package visioncore

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countInvocations[TG Target](n int) int64 {
	var count atomic.Int64
	LaunchParallelFor[TG](n, func(i int) {
		count.Add(1)
	})
	return count.Load()
}

func TestLaunchParallelForInvokesEveryIndexOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, DefaultBlockSize, DefaultBlockSize*3 + 1, 100000} {
		assert.Equal(t, int64(n), countInvocations[Host](n), "host n=%d", n)
		assert.Equal(t, int64(n), countInvocations[Device](n), "device n=%d", n)
	}
}

func TestLaunchParallelForDisjointWritesMatch(t *testing.T) {
	const n = 10007
	host := make([]int64, n)
	device := make([]int64, n)

	LaunchParallelFor[Host](n, func(i int) { host[i] = int64(i) * int64(i) })
	LaunchParallelFor[Device](n, func(i int) { device[i] = int64(i) * int64(i) })

	assert.Equal(t, host, device)
}

func TestLaunchParallelForHostIsSequential(t *testing.T) {
	var order []int
	LaunchParallelFor[Host](5, func(i int) { order = append(order, i) })
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLaunchParallelFor2DCoversDomain(t *testing.T) {
	const w, h = 37, 23
	for name, launch := range map[string]func(int, int, func(x, y int)){
		"host":   LaunchParallelFor2D[Host],
		"device": LaunchParallelFor2D[Device],
	} {
		t.Run(name, func(t *testing.T) {
			hits := make([]atomic.Int32, w*h)
			var outside atomic.Int32
			launch(w, h, func(x, y int) {
				if x < 0 || x >= w || y < 0 || y >= h {
					outside.Add(1)
					return
				}
				hits[y*w+x].Add(1)
			})
			assert.Zero(t, outside.Load())
			for i := range hits {
				assert.Equal(t, int32(1), hits[i].Load(), "index %d", i)
			}
		})
	}
}

func TestLaunchParallelFor2DEmptyDomain(t *testing.T) {
	called := false
	LaunchParallelFor2D[Device](0, 10, func(x, y int) { called = true })
	LaunchParallelFor2D[Host](10, 0, func(x, y int) { called = true })
	assert.False(t, called)
}

func TestLaunchNegativeExtentPanics(t *testing.T) {
	assert.Panics(t, func() { LaunchParallelFor[Host](-1, func(int) {}) })
	assert.Panics(t, func() { LaunchParallelFor2D[Device](-1, 2, func(int, int) {}) })
	assert.Panics(t, func() {
		LaunchParallelReduce[Device](-3, 0, func(int, *int) {}, func(a, b int) int { return a + b })
	})
}

func sumReduce[TG Target](data []float64) float64 {
	return LaunchParallelReduce[TG](len(data), 0.0, func(i int, acc *float64) {
		*acc += data[i]
	}, func(a, b float64) float64 { return a + b })
}

func TestLaunchParallelReduceSum(t *testing.T) {
	for _, n := range []int{1, 2, 255, 256, 257, 4096, 65537} {
		data := make([]float64, n)
		for i := range data {
			// integers keep the sum exact regardless of chunking
			data[i] = float64(i % 97)
		}
		var want float64
		for _, v := range data {
			want += v
		}

		assert.Equal(t, want, sumReduce[Host](data), "host n=%d", n)
		assert.Equal(t, want, sumReduce[Device](data), "device n=%d", n)
	}
}

func TestLaunchParallelReduceEmptyReturnsInitial(t *testing.T) {
	step := func(int, *int) { t.Fatal("step called for empty domain") }
	combine := func(a, b int) int { return a + b }

	assert.Equal(t, 42, LaunchParallelReduce[Host](0, 42, step, combine))
	assert.Equal(t, 42, LaunchParallelReduce[Device](0, 42, step, combine))
	assert.Equal(t, 7, LaunchParallelReduce2D[Device](0, 5, 7,
		func(int, int, *int) { t.Fatal("step called") }, combine))
}

func TestLaunchParallelReducePreservesOrder(t *testing.T) {
	// concatenation is associative but not commutative
	const n = 3000
	concat := func(a, b []int) []int { return append(append([]int(nil), a...), b...) }
	step := func(i int, acc *[]int) { *acc = append(*acc, i) }

	got := LaunchParallelReduce[Device](n, nil, step, concat)
	require.Len(t, got, n)
	for i, v := range got {
		if v != i {
			t.Fatalf("index %d holds %d", i, v)
		}
	}
}

func TestLaunchParallelReduce2DMax(t *testing.T) {
	const w, h = 64, 40
	maxOf := func(a, b int) int { return max(a, b) }
	step := func(x, y int, acc *int) { *acc = max(*acc, y*w+x) }

	assert.Equal(t, w*h-1, LaunchParallelReduce2D[Host](w, h, -1, step, maxOf))
	assert.Equal(t, w*h-1, LaunchParallelReduce2D[Device](w, h, -1, step, maxOf))
}

func TestDevicePanicIsRaisedOnCaller(t *testing.T) {
	boom := errors.New("boom")
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, IsExecutionError(err))
		assert.ErrorIs(t, err, boom)
	}()

	LaunchParallelFor[Device](10000, func(i int) {
		if i == 5000 {
			panic(boom)
		}
	})
}

func TestNestedDeviceLaunches(t *testing.T) {
	var total atomic.Int64
	LaunchParallelFor[Device](64, func(i int) {
		total.Add(countInvocations[Device](DefaultBlockSize * 2))
	})
	assert.Equal(t, int64(64*DefaultBlockSize*2), total.Load())
}

func TestMergeTree(t *testing.T) {
	for n := 1; n <= 9; n++ {
		parts := make([]string, n)
		want := ""
		for i := range parts {
			parts[i] = string(rune('a' + i))
			want += parts[i]
		}
		assert.Equal(t, want, mergeTree(parts, func(a, b string) string { return a + b }))
	}
}
