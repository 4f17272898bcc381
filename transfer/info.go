// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"sync"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

// BufferInfo binds a Data's contents to a range of a destination
// driver.Buffer.
type BufferInfo struct {
	Data   *Data
	Offset int64 // offset into Data.Bytes
	Range  int64 // number of bytes to copy; 0 means len(Data.Bytes())-Offset

	Dst       driver.Buffer
	DstOffset int64

	mu       sync.Mutex
	modified map[uint32]uint64
}

// size returns the number of bytes this BufferInfo copies.
func (b *BufferInfo) size() int64 {
	if b.Range != 0 {
		return b.Range
	}
	return int64(len(b.Data.Bytes())) - b.Offset
}

// syncModifiedCount reports whether Data's modification count for
// the given device differs from the last value recorded for it, and
// records the current value as a side effect. The first call for a
// given device always reports a change.
func (b *BufferInfo) syncModifiedCount(device uint32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.modified == nil {
		b.modified = make(map[uint32]uint64)
	}
	cur := b.Data.ModifiedCount()
	if last, ok := b.modified[device]; ok && last == cur {
		return false
	}
	b.modified[device] = cur
	return true
}

// ImageInfo binds a Data's contents to a region of a destination
// driver.Image, converting between SrcFormat and DstFormat as
// needed.
type ImageInfo struct {
	Data      *Data
	SrcFormat driver.PixelFmt

	Dst       driver.Image
	DstFormat driver.PixelFmt
	Size      driver.Dim3D
	Off       driver.Off3D
	Layer     int
	Level     int

	// MipLevels is the number of mip levels packed into Data,
	// starting at Size and halving (floored, minimum 1) each
	// dimension per level. A value <= 1 means Data holds a single,
	// full-size level.
	MipLevels int

	mu       sync.Mutex
	modified map[uint32]uint64
}

// MipmapOffsets returns the byte offset of each mip level within
// Data, assuming texels of texelSize bytes and a tight, unpadded
// packing of one level after another, largest first - the layout
// computeMipmapOffsets produces.
func (i *ImageInfo) MipmapOffsets(texelSize int) []int64 {
	levels := i.MipLevels
	if levels < 1 {
		levels = 1
	}
	offsets, _ := computeMipmapOffsets(i.Size, levels, texelSize)
	return offsets
}

// computeMipmapOffsets returns, for each of levels mip levels of an
// image sized size and packed at texelSize bytes per texel, the byte
// offset of that level's data relative to the start of level 0, and
// the total size in bytes of all levels combined. Each successive
// level halves every dimension (floored, minimum 1), mirroring the
// standard mipmap chain.
func computeMipmapOffsets(size driver.Dim3D, levels, texelSize int) (offsets []int64, total int64) {
	offsets = make([]int64, levels)
	var off int64
	for lvl := 0; lvl < levels; lvl++ {
		offsets[lvl] = off
		off += int64(mipTexels(size, lvl) * texelSize)
	}
	return offsets, off
}

// mipDim returns the dimensions of mip level lvl of an image sized
// size at level 0: each dimension halved, floored, and clamped to a
// minimum of 1, lvl times.
func mipDim(size driver.Dim3D, lvl int) driver.Dim3D {
	w, h, d := size.Width, size.Height, size.Depth
	for i := 0; i < lvl; i++ {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		if d > 1 {
			d /= 2
		}
	}
	return driver.Dim3D{Width: w, Height: h, Depth: d}
}

// mipTexels returns the texel count of mip level lvl of an image
// sized size at level 0.
func mipTexels(size driver.Dim3D, lvl int) int {
	d := mipDim(size, lvl)
	return d.Width * d.Height * d.Depth
}

func (i *ImageInfo) syncModifiedCount(device uint32) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.modified == nil {
		i.modified = make(map[uint32]uint64)
	}
	cur := i.Data.ModifiedCount()
	if last, ok := i.modified[device]; ok && last == cur {
		return false
	}
	i.modified[device] = cur
	return true
}
