package visioncore

// LaunchParallelFor calls op once for every index in [0, n) on target TG.
// Host runs the indices in order on the calling goroutine; Device fans
// contiguous chunks out to the worker pool, so op must be safe to call
// concurrently for distinct indices. The call returns once every index has
// been processed.
//
// Indices are not bounds-checked against any view: op is expected to guard
// its own accesses with InBounds.
func LaunchParallelFor[TG Target](n int, op func(i int)) {
	if n < 0 {
		panic(NewPreconditionError("LaunchParallelFor", ErrInvalidSize, "negative extent %d", n))
	}
	var tg TG
	ex := tg.executor()
	chunks := ex.partition(n)
	ex.run(chunks, func(c int) {
		start, end := chunkRange(n, chunks, c)
		for i := start; i < end; i++ {
			op(i)
		}
	})
}

// LaunchParallelFor2D calls op once for every (x, y) with 0 <= x < width
// and 0 <= y < height. Host visits the domain row by row.
func LaunchParallelFor2D[TG Target](width, height int, op func(x, y int)) {
	if width < 0 || height < 0 {
		panic(NewPreconditionError("LaunchParallelFor2D", ErrInvalidSize, "negative extents %dx%d", width, height))
	}
	if width == 0 || height == 0 {
		return
	}
	var tg TG
	ex := tg.executor()
	n := width * height
	chunks := ex.partition(n)
	ex.run(chunks, func(c int) {
		start, end := chunkRange(n, chunks, c)
		x, y := start%width, start/width
		for i := start; i < end; i++ {
			op(x, y)
			if x++; x == width {
				x = 0
				y++
			}
		}
	})
}

// LaunchParallelReduce folds every index in [0, n) into an accumulator of
// type A. Each chunk starts from initial and applies step to its indices in
// order; the chunk results are then merged pairwise with combine. For n == 0
// initial is returned unchanged.
//
// Host runs a single chunk, so initial is used exactly once. Device may seed
// several chunks with it: for the two targets to agree, initial must be an
// identity of combine and combine must be associative.
func LaunchParallelReduce[TG Target, A any](n int, initial A, step func(i int, acc *A), combine func(a, b A) A) A {
	if n < 0 {
		panic(NewPreconditionError("LaunchParallelReduce", ErrInvalidSize, "negative extent %d", n))
	}
	var tg TG
	ex := tg.executor()
	chunks := ex.partition(n)
	if chunks == 0 {
		return initial
	}

	partials := make([]A, chunks)
	ex.run(chunks, func(c int) {
		acc := initial
		start, end := chunkRange(n, chunks, c)
		for i := start; i < end; i++ {
			step(i, &acc)
		}
		partials[c] = acc
	})
	return mergeTree(partials, combine)
}

// LaunchParallelReduce2D is LaunchParallelReduce over a width x height
// domain. Each chunk visits its points row by row.
func LaunchParallelReduce2D[TG Target, A any](width, height int, initial A, step func(x, y int, acc *A), combine func(a, b A) A) A {
	if width < 0 || height < 0 {
		panic(NewPreconditionError("LaunchParallelReduce2D", ErrInvalidSize, "negative extents %dx%d", width, height))
	}
	if width == 0 || height == 0 {
		return initial
	}
	return LaunchParallelReduce[TG](width*height, initial, func(i int, acc *A) {
		step(i%width, i/width, acc)
	}, combine)
}

// mergeTree combines partial results pairwise, keeping the left operand of
// every merge the lower chunk so the order of the domain is preserved.
func mergeTree[A any](partials []A, combine func(a, b A) A) A {
	for len(partials) > 1 {
		half := (len(partials) + 1) / 2
		for i := 0; i < len(partials)/2; i++ {
			partials[i] = combine(partials[2*i], partials[2*i+1])
		}
		if len(partials)%2 == 1 {
			partials[half-1] = partials[len(partials)-1]
		}
		partials = partials[:half]
	}
	return partials[0]
}
