// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package driver

// Semaphore is a GPU-side synchronization primitive used to order
// work submitted to different queues, or to let the CPU order two
// submissions without blocking on completion.
type Semaphore interface {
	Destroyer
}

// Queue is the interface that submits recorded command buffers for
// execution, gated by semaphores rather than by the channel-based
// GPU.Commit protocol.
// It exists alongside GPU.Commit for collaborators, such as the
// transfer engine, that need to chain work across frames using
// semaphores instead of blocking on a channel.
type Queue interface {
	// NewSemaphore creates a new, unsignaled Semaphore.
	NewSemaphore() (Semaphore, error)

	// Submit records cb for execution.
	// Wait is consumed (each Semaphore in it is waited on exactly
	// once and then may be reused by the caller for a later
	// submission); Signal is signaled when cb completes execution.
	Submit(info *SubmitInfo) error
}

// SubmitInfo describes a single Queue.Submit call.
type SubmitInfo struct {
	CmdBuffer []CmdBuffer
	Wait      []Semaphore
	Signal    []Semaphore
}
