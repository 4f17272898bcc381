// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

// transferPrefix is prepended to every error this package creates.
const transferPrefix = "transfer: "

// Config holds the tunables of a Task.
type Config struct {
	// FrameCount is the depth of the staging ring, i.e. the number
	// of frames that may be in flight at once. The original's
	// MaxFrame default is 3.
	FrameCount int

	// Alignment is the byte alignment applied to every packed
	// region's staging offset during TransferData. Region sizes are
	// not rounded.
	Alignment int64

	// MinStagingSize is the smallest staging buffer a Task
	// allocates, even if the first frame's pending data is
	// smaller.
	MinStagingSize int64
}

// DefaultConfig returns the Config new Tasks should start from.
func DefaultConfig() Config {
	return Config{
		FrameCount:     3,
		Alignment:      4,
		MinStagingSize: 1 << 20, // 1 MiB
	}
}

// Configure fills in any zero-valued field of cfg with the
// corresponding DefaultConfig value.
func Configure(cfg *Config) {
	d := DefaultConfig()
	if cfg.FrameCount <= 0 {
		cfg.FrameCount = d.FrameCount
	}
	if cfg.Alignment <= 0 {
		cfg.Alignment = d.Alignment
	}
	if cfg.MinStagingSize <= 0 {
		cfg.MinStagingSize = d.MinStagingSize
	}
}

// align rounds n up to the next multiple of a (a itself, when n is
// already aligned). a must be a power of two.
func align(n, a int64) int64 {
	if a <= 1 {
		return n
	}
	return (n + a - 1) &^ (a - 1)
}
