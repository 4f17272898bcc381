// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

// FrameRing tracks which of a fixed number of staging slots is
// current. It carries no data of its own: Task uses it to index
// into its own per-frame staging resources.
//
// A FrameRing starts in the unset state: no frame has begun yet, and
// Index reports the sentinel value Len() until the first Advance.
type FrameRing struct {
	n   int
	cur int // -1 until the first Advance
}

// NewFrameRing creates a FrameRing over n frames. n must be greater
// than 0.
func NewFrameRing(n int) *FrameRing {
	if n <= 0 {
		panic("transfer: FrameRing count <= 0")
	}
	return &FrameRing{n: n, cur: -1}
}

// Advance moves the ring to the next frame. The first call leaves
// the ring on slot 0; Set reports true from then on.
func (r *FrameRing) Advance() {
	if r.cur < 0 {
		r.cur = 0
		return
	}
	r.cur = (r.cur + 1) % r.n
}

// Set reports whether Advance has been called at least once.
func (r *FrameRing) Set() bool { return r.cur >= 0 }

// Index returns the slot index k frames relative to the current
// one (k may be negative). Before the first Advance it returns the
// sentinel value Len(), which is never a valid slot index.
func (r *FrameRing) Index(k int) int {
	if r.cur < 0 {
		return r.n
	}
	idx := (r.cur + k) % r.n
	if idx < 0 {
		idx += r.n
	}
	return idx
}

// Len returns the number of frames in the ring.
func (r *FrameRing) Len() int { return r.n }
