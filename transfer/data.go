// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// DataVariance tells a Task how long to keep a ledger entry for a
// Data: a Static entry leaves the ledger once it has been copied,
// while a Dynamic entry stays and is re-checked every TransferData.
type DataVariance int

const (
	// Static data is expected to be set once and never modified.
	Static DataVariance = iota
	// Dynamic data is expected to be modified every few frames.
	Dynamic
)

// Data is the CPU-side buffer a BufferInfo or ImageInfo points at. A
// single Data may be referenced by more than one Info, and tracks
// its own modification count so the transfer engine can tell which
// device copies are stale.
type Data struct {
	id       uuid.UUID
	bytes    []byte
	modified uint64 // atomic
	refs     int32  // atomic
	Variance DataVariance
}

// NewData wraps bytes as a Data with an initial modification count
// of 1 (so that a brand new Data always looks modified to a Task
// that has never seen it) and a single reference belonging to the
// caller.
func NewData(bytes []byte, variance DataVariance) *Data {
	return &Data{id: uuid.New(), bytes: bytes, modified: 1, refs: 1, Variance: variance}
}

// ID returns a stable identity for the Data, independent of its
// pointer value.
func (d *Data) ID() uuid.UUID { return d.id }

// Bytes returns the Data's backing slice.
func (d *Data) Bytes() []byte { return d.bytes }

// ModifiedCount returns the current modification count.
func (d *Data) ModifiedCount() uint64 { return atomic.LoadUint64(&d.modified) }

// Modify increments the modification count. Callers must call this
// after writing to the slice returned by Bytes, or the Task will
// not notice the change.
func (d *Data) Modify() { atomic.AddUint64(&d.modified, 1) }

// Ref increments the reference count and returns its new value.
func (d *Data) Ref() int32 { return atomic.AddInt32(&d.refs, 1) }

// Unref decrements the reference count and returns its new value.
func (d *Data) Unref() int32 { return atomic.AddInt32(&d.refs, -1) }

// RefCount returns the current reference count.
func (d *Data) RefCount() int32 { return atomic.LoadInt32(&d.refs) }
