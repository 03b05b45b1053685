package visioncore

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/LynnColeArt/visioncore/internal/logging"
)

// MemcpyKind specifies the direction of memory transfer.
// Host and device memory are both CPU-addressable, so every kind is a plain
// copy; the kind only feeds the context transfer statistics.
type MemcpyKind int

const (
	MemcpyHostToHost     MemcpyKind = iota // Host to host transfer
	MemcpyHostToDevice                     // Host to device transfer
	MemcpyDeviceToHost                     // Device to host transfer
	MemcpyDeviceToDevice                   // Device to device transfer
)

// String returns the transfer direction
func (k MemcpyKind) String() string {
	switch k {
	case MemcpyHostToHost:
		return "HostToHost"
	case MemcpyHostToDevice:
		return "HostToDevice"
	case MemcpyDeviceToHost:
		return "DeviceToHost"
	case MemcpyDeviceToDevice:
		return "DeviceToDevice"
	default:
		return "Unknown"
	}
}

func memcpyKind(dst, src TargetKind) MemcpyKind {
	switch {
	case src == TargetHost && dst == TargetHost:
		return MemcpyHostToHost
	case src == TargetHost:
		return MemcpyHostToDevice
	case dst == TargetHost:
		return MemcpyDeviceToHost
	default:
		return MemcpyDeviceToDevice
	}
}

// region is a block of raw target memory backing one owning buffer.
// It remembers the space it came from so it can be released there even
// after the default context has been replaced.
type region struct {
	base  unsafe.Pointer
	size  int
	owner memorySpace
}

func (r region) empty() bool {
	return r.base == nil
}

// memorySpace is the allocator behind a Target.
type memorySpace interface {
	kind() TargetKind
	allocate(op string, size int) (region, error)
	release(r region) error
	rowAlignment() int
}

// hostSpace allocates from the Go heap. Memory is returned to the garbage
// collector once the last view over it is dropped.
type hostSpace struct{}

func (hostSpace) kind() TargetKind { return TargetHost }

func (h hostSpace) allocate(op string, size int) (region, error) {
	if size < 0 {
		return region{}, NewPreconditionError(op, ErrInvalidSize, "negative allocation size %d", size)
	}
	if size == 0 {
		return region{}, nil
	}
	// Only requests beyond physical memory are refused here. Smaller ones go
	// to the Go heap, where exhaustion is a fatal runtime error rather than
	// ErrOutOfMemory. Use a device buffer with a pool limit to bound usage.
	if uint64(size) > systemMemory() {
		logging.Warnf("%s: host allocation of %d bytes exceeds system memory", op, size)
		return region{}, &Error{
			Type:    ErrTypeMemory,
			Op:      op,
			Message: fmt.Sprintf("cannot allocate %d bytes on host", size),
			Err:     ErrOutOfMemory,
		}
	}
	words := make([]uint64, (size+7)/8)
	return region{base: unsafe.Pointer(&words[0]), size: size, owner: h}, nil
}

func (hostSpace) release(region) error { return nil }

// Host rows are never padded
func (hostSpace) rowAlignment() int { return 0 }

// MemoryPool manages device memory allocation with efficient reuse.
// It maintains a free list of previously allocated blocks to reduce
// allocation overhead and memory fragmentation, and refuses requests that
// would take the pool past its limit.
type MemoryPool struct {
	mu         sync.Mutex
	allocated  map[uintptr]*allocation
	freeList   []*allocation
	alignment  int
	pitchAlign int // row alignment of 2D buffers, in bytes
	limit      int64
	totalAlloc int64 // bytes handed out
	reserved   int64 // bytes held, including the free list
	peakAlloc  int64
}

type allocation struct {
	words []uint64 // keeps the block reachable
	base  unsafe.Pointer
	size  int
	used  bool
}

// NewMemoryPool creates a pool whose blocks are aligned to alignment bytes
// and whose reserved memory never exceeds limit bytes.
func NewMemoryPool(alignment int, limit int64) *MemoryPool {
	if alignment <= 0 {
		alignment = MemoryAlignment
	}
	return &MemoryPool{
		allocated: make(map[uintptr]*allocation),
		alignment: alignment,
		limit:     limit,
	}
}

func (mp *MemoryPool) kind() TargetKind { return TargetDevice }

func (mp *MemoryPool) rowAlignment() int { return mp.pitchAlign }

// SetPitchAlignment sets the byte alignment of rows of 2D buffers
// allocated from the pool. Zero disables row padding.
func (mp *MemoryPool) SetPitchAlignment(bytes int) {
	mp.pitchAlign = bytes
}

func (mp *MemoryPool) allocate(op string, size int) (region, error) {
	if size < 0 {
		return region{}, NewPreconditionError(op, ErrInvalidSize, "negative allocation size %d", size)
	}
	if size == 0 {
		return region{}, nil
	}
	base, err := mp.Allocate(size)
	if err != nil {
		return region{}, &Error{
			Type:    ErrTypeMemory,
			Op:      op,
			Message: fmt.Sprintf("cannot allocate %d bytes on device", size),
			Err:     err,
		}
	}
	return region{base: base, size: size, owner: mp}, nil
}

func (mp *MemoryPool) release(r region) error {
	if r.empty() {
		return nil
	}
	return mp.Free(r.base)
}

// Allocate returns a zeroed block of at least size bytes.
func (mp *MemoryPool) Allocate(size int) (unsafe.Pointer, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	// Round up to alignment
	alignedSize := (size + mp.alignment - 1) &^ (mp.alignment - 1)
	if alignedSize < MinAllocationSize {
		alignedSize = MinAllocationSize
	}

	// Try to reuse from free list
	for i, alloc := range mp.freeList {
		if alloc.size >= alignedSize {
			mp.freeList = append(mp.freeList[:i], mp.freeList[i+1:]...)
			alloc.used = true
			clear(unsafe.Slice((*byte)(alloc.base), alloc.size))
			mp.track(int64(alloc.size))
			return alloc.base, nil
		}
	}

	if mp.limit > 0 && mp.reserved+int64(alignedSize) > mp.limit {
		// Give cached blocks back before refusing
		mp.dropFreeList()
		if mp.reserved+int64(alignedSize) > mp.limit {
			logging.Warnf("device pool exhausted: requested %d bytes, %d of %d reserved",
				alignedSize, mp.reserved, mp.limit)
			return nil, ErrOutOfMemory
		}
	}

	// Over-allocate so the block can start on an alignment boundary
	words := make([]uint64, (alignedSize+mp.alignment)/8)
	addr := uintptr(unsafe.Pointer(&words[0]))
	pad := (uintptr(mp.alignment) - addr%uintptr(mp.alignment)) % uintptr(mp.alignment)
	base := unsafe.Add(unsafe.Pointer(&words[0]), pad)

	mp.allocated[uintptr(base)] = &allocation{
		words: words,
		base:  base,
		size:  alignedSize,
		used:  true,
	}
	mp.reserved += int64(alignedSize)
	mp.track(int64(alignedSize))
	logging.Debugf("device pool grew by %d bytes (reserved %d)", alignedSize, mp.reserved)

	return base, nil
}

func (mp *MemoryPool) track(n int64) {
	mp.totalAlloc += n
	if mp.totalAlloc > mp.peakAlloc {
		mp.peakAlloc = mp.totalAlloc
	}
}

func (mp *MemoryPool) dropFreeList() {
	for _, alloc := range mp.freeList {
		delete(mp.allocated, uintptr(alloc.base))
		mp.reserved -= int64(alloc.size)
	}
	mp.freeList = nil
}

// Free returns memory to the pool
func (mp *MemoryPool) Free(base unsafe.Pointer) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	alloc, ok := mp.allocated[uintptr(base)]
	if !ok {
		return NewMemoryError("Free", "pointer not found in allocation pool", nil)
	}

	if !alloc.used {
		return ErrDoubleFree
	}

	alloc.used = false
	mp.freeList = append(mp.freeList, alloc)
	mp.totalAlloc -= int64(alloc.size)

	return nil
}

// Trim releases every cached block on the free list.
func (mp *MemoryPool) Trim() {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.dropFreeList()
}

// GetStats returns memory pool statistics
func (mp *MemoryPool) GetStats() (allocated, peak int64) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.totalAlloc, mp.peakAlloc
}

// Reserved returns the bytes held by the pool, including cached blocks.
func (mp *MemoryPool) Reserved() int64 {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.reserved
}

// Limit returns the pool's memory limit in bytes (0 means unlimited).
func (mp *MemoryPool) Limit() int64 {
	return mp.limit
}

var pointerFree sync.Map // reflect.Type -> bool

// isPointerFree reports whether values of t can live in untyped pool memory
// without hiding pointers from the garbage collector.
func isPointerFree(t reflect.Type) bool {
	if v, ok := pointerFree.Load(t); ok {
		return v.(bool)
	}
	free := checkPointerFree(t)
	pointerFree.Store(t, free)
	return free
}

func checkPointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || checkPointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !checkPointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// allocElements allocates n zeroed elements of T on target TG.
func allocElements[T any, TG Target](op string, n int) ([]T, region, error) {
	var zero T
	if !isPointerFree(reflect.TypeOf(&zero).Elem()) {
		return nil, region{}, NewPreconditionError(op, ErrPointerElement, "element type %T holds pointers", zero)
	}
	if n < 0 {
		return nil, region{}, NewPreconditionError(op, ErrInvalidSize, "negative element count %d", n)
	}
	elem := int(unsafe.Sizeof(zero))
	if elem > 0 && n > maxInt/elem {
		return nil, region{}, NewPreconditionError(op, ErrInvalidSize, "%d elements of %d bytes overflow", n, elem)
	}
	if n == 0 {
		return nil, region{}, nil
	}
	if elem == 0 {
		return make([]T, n), region{}, nil
	}

	var tg TG
	r, err := tg.space().allocate(op, n*elem)
	if err != nil {
		return nil, region{}, err
	}
	return unsafe.Slice((*T)(r.base), n), r, nil
}

const maxInt = int(^uint(0) >> 1)
