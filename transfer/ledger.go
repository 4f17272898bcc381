// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"fmt"
	"sort"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

// dataToCopy is the Modification Ledger: the set of BufferInfo and
// ImageInfo entries a Task still owes a device copy. Entries are
// kept per destination buffer in an offset-ordered map, since the
// packing pass in Task.TransferData needs a stable, monotonically
// increasing walk and plain Go map iteration order is unspecified.
type dataToCopy struct {
	buffers map[driver.Buffer]map[int64]*BufferInfo
	order   map[driver.Buffer][]int64

	images     map[*ImageInfo]struct{}
	imageOrder []*ImageInfo
}

func newDataToCopy() *dataToCopy {
	return &dataToCopy{
		buffers: make(map[driver.Buffer]map[int64]*BufferInfo),
		order:   make(map[driver.Buffer][]int64),
		images:  make(map[*ImageInfo]struct{}),
	}
}

// addBuffer records bi as pending, keyed by its destination buffer
// and offset. Assigning the same (buffer, offset) pair again
// replaces the previous entry, matching "last write wins" for a
// destination range reassigned before its prior copy ran.
func (c *dataToCopy) addBuffer(bi *BufferInfo) {
	m, ok := c.buffers[bi.Dst]
	if !ok {
		m = make(map[int64]*BufferInfo)
		c.buffers[bi.Dst] = m
	}
	if _, exists := m[bi.DstOffset]; !exists {
		c.order[bi.Dst] = insertSorted(c.order[bi.Dst], bi.DstOffset)
	}
	m[bi.DstOffset] = bi
}

// addImage records ii as pending. ii is deduplicated by pointer
// identity: assigning the same ImageInfo twice before it transfers
// does not create a second entry.
func (c *dataToCopy) addImage(ii *ImageInfo) {
	if _, ok := c.images[ii]; !ok {
		c.images[ii] = struct{}{}
		c.imageOrder = append(c.imageOrder, ii)
	}
}

// empty reports whether the ledger holds no pending entries.
func (c *dataToCopy) empty() bool {
	return len(c.buffers) == 0 && len(c.images) == 0
}

// forEachBuffer walks every pending BufferInfo, destination buffer
// by destination buffer, each buffer's offsets visited in
// increasing order.
func (c *dataToCopy) forEachBuffer(f func(buf driver.Buffer, bi *BufferInfo)) {
	bufs := make([]driver.Buffer, 0, len(c.buffers))
	for buf := range c.buffers {
		bufs = append(bufs, buf)
	}
	// Buffer identity has no natural order; sort by the address
	// captured in a comparable form so that iteration is at least
	// deterministic across calls within a single process.
	sort.Slice(bufs, func(i, j int) bool { return bufferLess(bufs[i], bufs[j]) })
	for _, buf := range bufs {
		m := c.buffers[buf]
		for _, off := range c.order[buf] {
			f(buf, m[off])
		}
	}
}

// forEachImage walks every pending ImageInfo in assignment order.
func (c *dataToCopy) forEachImage(f func(ii *ImageInfo)) {
	for _, ii := range c.imageOrder {
		f(ii)
	}
}

// removeBuffer drops the entry at (dst, off), if any. Used once a
// BufferInfo no longer needs to stay pending: either its Data was
// evicted, or it was copied and will never change again (Static).
// Dynamic entries that were copied are left in place, since they may
// be modified and need copying again on a future frame.
func (c *dataToCopy) removeBuffer(dst driver.Buffer, off int64) {
	m, ok := c.buffers[dst]
	if !ok {
		return
	}
	if _, ok := m[off]; !ok {
		return
	}
	delete(m, off)
	order := c.order[dst]
	i := sort.Search(len(order), func(i int) bool { return order[i] >= off })
	if i < len(order) && order[i] == off {
		order = append(order[:i], order[i+1:]...)
	}
	if len(m) == 0 {
		delete(c.buffers, dst)
		delete(c.order, dst)
		return
	}
	c.order[dst] = order
}

// removeImage drops ii from the ledger, if present. See removeBuffer.
func (c *dataToCopy) removeImage(ii *ImageInfo) {
	if _, ok := c.images[ii]; !ok {
		return
	}
	delete(c.images, ii)
	for i, x := range c.imageOrder {
		if x == ii {
			c.imageOrder = append(c.imageOrder[:i], c.imageOrder[i+1:]...)
			break
		}
	}
}

// clear empties the ledger.
func (c *dataToCopy) clear() {
	for k := range c.buffers {
		delete(c.buffers, k)
	}
	for k := range c.order {
		delete(c.order, k)
	}
	for k := range c.images {
		delete(c.images, k)
	}
	c.imageOrder = c.imageOrder[:0]
}

// insertSorted inserts v into the ascending slice s if not already
// present, and returns the (possibly reallocated) slice.
func insertSorted(s []int64, v int64) []int64 {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i < len(s) && s[i] == v {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// bufferLess provides a total order over driver.Buffer values using
// their interface data pointer, purely so that ledger iteration is
// deterministic; it carries no meaning beyond that.
func bufferLess(a, b driver.Buffer) bool {
	return fmt.Sprintf("%p", a) < fmt.Sprintf("%p", b)
}
