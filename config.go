// Package visioncore configuration constants and runtime configuration
package visioncore

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Thread and block dimensions
const (
	// Default number of indices per device block
	DefaultBlockSize = 256

	// Maximum indices per block
	MaxBlockSize = 1 << 20

	// Default grid size multiplier (chunks per worker)
	DefaultGridMultiplier = 4
)

// Memory pool parameters
const (
	// Minimum allocation size to prevent fragmentation
	MinAllocationSize = 64

	// Memory alignment for pool blocks
	MemoryAlignment = 64
)

// Config is the runtime configuration of the default device context.
// It is usually loaded from a YAML file:
//
//	device:
//	  workers: 8
//	  block_size: 256
//	  memory_limit: 1073741824
//	log:
//	  level: debug
type Config struct {
	Device DeviceConfig `yaml:"device"`
	Log    LogConfig    `yaml:"log"`
}

// DeviceConfig tunes the emulated device target.
type DeviceConfig struct {
	// Workers is the number of persistent device workers (0 = GOMAXPROCS)
	Workers int `yaml:"workers"`

	// BlockSize is the minimum number of indices a device chunk covers
	BlockSize int `yaml:"block_size"`

	// GridMultiplier caps the number of chunks at Workers*GridMultiplier
	GridMultiplier int `yaml:"grid_multiplier"`

	// MemoryLimit caps pool memory in bytes (0 = total system memory)
	MemoryLimit int64 `yaml:"memory_limit"`

	// PitchAlignment aligns 2D device rows to this many bytes
	// (0 = CPU cache line size)
	PitchAlignment int `yaml:"pitch_alignment"`
}

// LogConfig configures internal logging.
type LogConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// DefaultConfig returns the configuration used when Init is never called.
func DefaultConfig() Config {
	return Config{
		Device: DeviceConfig{
			Workers:        runtime.GOMAXPROCS(0),
			BlockSize:      DefaultBlockSize,
			GridMultiplier: DefaultGridMultiplier,
			PitchAlignment: cacheLineSize(),
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults replaces zero values with their automatic settings
func (c *Config) applyDefaults() {
	if c.Device.Workers == 0 {
		c.Device.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Device.BlockSize == 0 {
		c.Device.BlockSize = DefaultBlockSize
	}
	if c.Device.GridMultiplier == 0 {
		c.Device.GridMultiplier = DefaultGridMultiplier
	}
	if c.Device.PitchAlignment == 0 {
		c.Device.PitchAlignment = cacheLineSize()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	d := c.Device
	switch {
	case d.Workers < 0:
		return NewPreconditionError("Config", ErrInvalidConfig, "workers must be >= 0, got %d", d.Workers)
	case d.BlockSize < 0 || d.BlockSize > MaxBlockSize:
		return NewPreconditionError("Config", ErrInvalidConfig, "block_size must be in [0, %d], got %d", MaxBlockSize, d.BlockSize)
	case d.GridMultiplier < 0:
		return NewPreconditionError("Config", ErrInvalidConfig, "grid_multiplier must be >= 0, got %d", d.GridMultiplier)
	case d.MemoryLimit < 0:
		return NewPreconditionError("Config", ErrInvalidConfig, "memory_limit must be >= 0, got %d", d.MemoryLimit)
	case d.PitchAlignment < 0 || d.PitchAlignment&(d.PitchAlignment-1) != 0:
		return NewPreconditionError("Config", ErrInvalidConfig, "pitch_alignment must be a power of two, got %d", d.PitchAlignment)
	}
	return nil
}

// fallbackSystemMemory is assumed when the platform cannot report memory
const fallbackSystemMemory = 16 * 1024 * 1024 * 1024
