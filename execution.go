package visioncore

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// executor is the execution model behind a Target. Both models share the
// same chunked contract: partition decides how many contiguous chunks cover
// a domain, run invokes fn once per chunk and returns only after all chunks
// have finished.
type executor interface {
	partition(n int) int
	run(chunks int, fn func(chunk int))
}

// chunkRange returns the half-open index range [start, end) of chunk c when
// n indices are split into chunks pieces.
func chunkRange(n, chunks, c int) (start, end int) {
	size := (n + chunks - 1) / chunks
	start = c * size
	end = min(start+size, n)
	if start > n {
		start = n
	}
	return start, end
}

// hostExecutor is the sequential model: one chunk, run inline.
type hostExecutor struct{}

func (hostExecutor) partition(n int) int {
	if n <= 0 {
		return 0
	}
	return 1
}

func (hostExecutor) run(chunks int, fn func(chunk int)) {
	for c := 0; c < chunks; c++ {
		fn(c)
	}
}

// WorkerPool is the device execution model: a persistent set of worker
// goroutines that chunks are fanned out to. Workers are spawned once and
// reused by every launch.
type WorkerPool struct {
	workers        int
	blockSize      int
	gridMultiplier int
	tasks          chan func()
	mu             sync.RWMutex // guards tasks against Close
	closed         bool
	launches       atomic.Int64
}

// NewWorkerPool creates a new worker pool. Zero values select
// GOMAXPROCS workers, DefaultBlockSize and DefaultGridMultiplier.
func NewWorkerPool(workers, blockSize, gridMultiplier int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if gridMultiplier <= 0 {
		gridMultiplier = DefaultGridMultiplier
	}

	pool := &WorkerPool{
		workers:        workers,
		blockSize:      blockSize,
		gridMultiplier: gridMultiplier,
		tasks:          make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		go pool.worker()
	}

	return pool
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	for task := range wp.tasks {
		task()
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.workers
}

// BlockSize returns the minimum number of indices per chunk
func (wp *WorkerPool) BlockSize() int {
	return wp.blockSize
}

// Launches returns how many launches the pool has executed
func (wp *WorkerPool) Launches() int64 {
	return wp.launches.Load()
}

// Close shuts down the worker pool. Launches after Close run on the
// calling goroutine. Calling Close multiple times is safe.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
}

// partition splits n indices into blocks of at least blockSize indices and
// caps the number of chunks at workers*gridMultiplier.
func (wp *WorkerPool) partition(n int) int {
	if n <= 0 {
		return 0
	}
	blocks := (n + wp.blockSize - 1) / wp.blockSize
	return min(blocks, wp.workers*wp.gridMultiplier)
}

// run executes fn for every chunk and waits for all of them. Chunks are
// claimed through an atomic counter by the calling goroutine and by as many
// idle workers as the queue accepts, so nested launches from inside a
// kernel cannot deadlock. A panic in any chunk is re-raised on the caller
// after the barrier.
func (wp *WorkerPool) run(chunks int, fn func(chunk int)) {
	if chunks <= 0 {
		return
	}
	wp.launches.Add(1)

	var (
		next      atomic.Int64
		barrier   sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	barrier.Add(chunks)

	runChunk := func(c int) {
		defer barrier.Done()
		defer func() {
			if r := recover(); r != nil {
				panicOnce.Do(func() { panicked = r })
			}
		}()
		fn(c)
	}
	body := func() {
		for {
			c := int(next.Add(1)) - 1
			if c >= chunks {
				return
			}
			runChunk(c)
		}
	}

	wp.mu.RLock()
	if !wp.closed {
	submit:
		for i := 1; i < min(wp.workers, chunks); i++ {
			select {
			case wp.tasks <- body:
			default:
				break submit
			}
		}
	}
	wp.mu.RUnlock()

	body()
	barrier.Wait()

	if panicked != nil {
		if err, ok := panicked.(error); ok {
			panic(NewExecutionError("Launch", "kernel panicked", err))
		}
		panic(NewExecutionError("Launch", fmt.Sprintf("kernel panicked: %v", panicked), ErrKernelPanic))
	}
}
