package visioncore

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/LynnColeArt/visioncore/internal/logging"
)

// DeviceInfo describes the emulated compute device. Device memory is CPU
// memory managed by a pool, device kernels run on a worker pool.
type DeviceInfo struct {
	ID             int    // Unique device identifier
	Name           string // Human-readable device name
	TotalMem       uint64 // Memory available to the device pool in bytes
	NumCores       int    // Number of CPU cores
	MaxThreads     int    // Number of device workers
	PitchAlignment int    // Row alignment of 2D device allocations in bytes
}

// TransferStats counts bytes moved between targets.
type TransferStats struct {
	HostToHost     int64
	HostToDevice   int64
	DeviceToHost   int64
	DeviceToDevice int64
}

// Context owns the device resources: its memory pool, its worker pool and
// the configuration they were built from.
type Context struct {
	device  *DeviceInfo
	config  Config
	memory  *MemoryPool
	workers *WorkerPool

	transfers [4]atomic.Int64 // indexed by MemcpyKind
}

// Global runtime state
var (
	defaultContext atomic.Pointer[Context]
	initMu         sync.Mutex
)

// NewContext creates a device context from cfg.
func NewContext(cfg Config) (*Context, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limit := cfg.Device.MemoryLimit
	if limit == 0 {
		limit = int64(systemMemory())
	}

	ctx := &Context{
		device: &DeviceInfo{
			ID:             0,
			Name:           "CPU (" + GetCPUInfo() + ")",
			TotalMem:       uint64(limit),
			NumCores:       runtime.NumCPU(),
			MaxThreads:     cfg.Device.Workers,
			PitchAlignment: cfg.Device.PitchAlignment,
		},
		config:  cfg,
		memory:  NewMemoryPool(MemoryAlignment, limit),
		workers: NewWorkerPool(cfg.Device.Workers, cfg.Device.BlockSize, cfg.Device.GridMultiplier),
	}

	ctx.memory.SetPitchAlignment(cfg.Device.PitchAlignment)

	logging.WithField("device", ctx.device.Name).Debugf(
		"device context: %d workers, block %d, grid x%d, pitch %d bytes, memory limit %d bytes",
		cfg.Device.Workers, cfg.Device.BlockSize, cfg.Device.GridMultiplier,
		cfg.Device.PitchAlignment, limit)

	return ctx, nil
}

// Init replaces the default device context with one built from cfg and
// configures logging. Buffers allocated from the previous context stay
// valid and are released to the pool they came from. Init must not run
// concurrently with device launches.
func Init(cfg Config) error {
	if err := logging.Init(cfg.Log.Level, cfg.Log.File, cfg.Log.Console); err != nil {
		return NewDeviceError("Init", "failed to initialize logging", err)
	}

	ctx, err := NewContext(cfg)
	if err != nil {
		return err
	}

	initMu.Lock()
	old := defaultContext.Swap(ctx)
	initMu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// DefaultContext returns the context used by the Device target, creating
// it from DefaultConfig on first use.
func DefaultContext() *Context {
	if ctx := defaultContext.Load(); ctx != nil {
		return ctx
	}

	initMu.Lock()
	defer initMu.Unlock()
	if ctx := defaultContext.Load(); ctx != nil {
		return ctx
	}
	ctx, err := NewContext(DefaultConfig())
	if err != nil {
		// DefaultConfig always validates
		panic(err)
	}
	defaultContext.Store(ctx)
	return ctx
}

// Close stops the context's workers. Later launches on it run inline.
func (ctx *Context) Close() {
	ctx.workers.Close()
}

// Device returns the device description
func (ctx *Context) Device() *DeviceInfo {
	return ctx.device
}

// Config returns the configuration the context was built from
func (ctx *Context) Config() Config {
	return ctx.config
}

// MemoryPool returns the device memory pool
func (ctx *Context) MemoryPool() *MemoryPool {
	return ctx.memory
}

// Workers returns the device worker pool
func (ctx *Context) Workers() *WorkerPool {
	return ctx.workers
}

// Transfers returns the bytes copied per direction so far
func (ctx *Context) Transfers() TransferStats {
	return TransferStats{
		HostToHost:     ctx.transfers[MemcpyHostToHost].Load(),
		HostToDevice:   ctx.transfers[MemcpyHostToDevice].Load(),
		DeviceToHost:   ctx.transfers[MemcpyDeviceToHost].Load(),
		DeviceToDevice: ctx.transfers[MemcpyDeviceToDevice].Load(),
	}
}

func (ctx *Context) recordTransfer(kind MemcpyKind, bytes int) {
	ctx.transfers[kind].Add(int64(bytes))
}

// GetDevice returns the current device information.
//
// Example:
//
//	device := visioncore.GetDevice()
//	fmt.Printf("Running on: %s with %d workers\n", device.Name, device.MaxThreads)
func GetDevice() *DeviceInfo {
	return DefaultContext().device
}
