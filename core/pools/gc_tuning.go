package pools

import (
	"runtime"
	"runtime/debug"
)

// GCConfig holds GC tuning parameters
type GCConfig struct {
	// GOGC sets the garbage collection target percentage
	// Default is 100. Lower values = more frequent GC but less memory
	GOGC int

	// MemoryLimit sets soft memory limit in bytes
	// 0 = no limit
	MemoryLimit int64

	// MinRetainExtra is the size of a block allocated once after a forced
	// GC at startup; the block is not kept referenced afterwards
	MinRetainExtra int64
}

// DefaultGCConfig returns optimized GC settings for high-performance servers
func DefaultGCConfig() GCConfig {
	return GCConfig{
		GOGC:           200,      // Less frequent GC (default 100)
		MemoryLimit:    0,        // No hard limit
		MinRetainExtra: 50 << 20, // Allocate 50MB once at startup
	}
}

// ApplyGCConfig applies GC tuning to reduce GC pressure
func ApplyGCConfig(cfg GCConfig) {
	if cfg.GOGC > 0 {
		debug.SetGCPercent(cfg.GOGC)
	}

	if cfg.MemoryLimit > 0 {
		debug.SetMemoryLimit(cfg.MemoryLimit)
	}

	// Increase initial heap size to reduce early GC
	if cfg.MinRetainExtra > 0 {
		// Force a GC then immediately allocate to set baseline
		runtime.GC()
		_ = make([]byte, cfg.MinRetainExtra)
	}
}
