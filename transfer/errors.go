// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import "errors"

// ErrShrink is returned when an image upload's source texel size
// exceeds the destination texel size. The original leaves this case
// undefined; this module treats it as an explicit error instead of
// reading past the end of the source data.
var ErrShrink = errors.New(transferPrefix + "source texel size exceeds target texel size")

// ErrNoData is returned by Assign when a BufferInfo or ImageInfo
// has a nil Data.
var ErrNoData = errors.New(transferPrefix + "nil Data")

// ErrMipRange is returned when an ImageInfo's mip level count implies
// an offset that does not lie within its Data's byte range.
var ErrMipRange = errors.New(transferPrefix + "mipmap offset outside data range")
