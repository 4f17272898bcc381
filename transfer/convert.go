// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/driver/format"
)

// convertPixels copies texelCount texels of src (in srcFmt) into
// dst (in dstFmt), applying one of three cases:
//
//   - equal format: a plain byte copy.
//   - equal size, different format: also a plain byte copy, since
//     this package does not reorder channels - only pads or
//     rejects size mismatches.
//   - srcFmt's texel is smaller than dstFmt's: each texel is copied
//     and the remaining bytes filled from dstFmt's default value.
//
// A source texel larger than the destination texel is the one
// explicitly undefined case the original leaves unresolved; here it
// is rejected with ErrShrink rather than reading past dst.
func convertPixels(dst, src []byte, srcFmt, dstFmt driver.PixelFmt, texelCount int) error {
	srcSize := format.Size(srcFmt)
	dstSize := format.Size(dstFmt)
	if srcSize > dstSize {
		return ErrShrink
	}
	if srcSize == dstSize {
		copy(dst, src[:texelCount*srcSize])
		return nil
	}
	def := format.Of(dstFmt).Default
	for i := 0; i < texelCount; i++ {
		so := i * srcSize
		do := i * dstSize
		copy(dst[do:do+srcSize], src[so:so+srcSize])
		copy(dst[do+srcSize:do+dstSize], def[srcSize:dstSize])
	}
	return nil
}
