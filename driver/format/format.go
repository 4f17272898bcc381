// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package format implements the Format Traits Oracle: it maps a
// driver.PixelFmt to the byte layout the transfer engine needs to
// pack, convert and default-fill pixel data.
package format

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

// Traits describes the byte layout of a driver.PixelFmt.
type Traits struct {
	// Size is the number of bytes a single texel occupies.
	Size int
	// Stride is the number of bytes between the start of one texel
	// and the next in a packed mip level, used to address individual
	// mip levels within a staged image region. It equals Size: this
	// package only describes tightly packed layouts, with no row or
	// slice padding.
	Stride int
	// Channels is the number of color/depth/stencil channels
	// packed into a texel.
	Channels int
	// Default is the texel value used to fill channels that a
	// source format with a smaller texel does not provide, when the
	// transfer engine expands that source into this format.
	// Only the first Size bytes are meaningful.
	Default [16]byte
}

// traits builds a Traits value with Stride set equal to size, the
// only relationship this package's tightly packed layouts ever need.
func traits(size, channels int, def [16]byte) Traits {
	return Traits{Size: size, Stride: size, Channels: channels, Default: def}
}

var table = map[driver.PixelFmt]Traits{
	driver.RGBA8un:   traits(4, 4, fill4(0, 0, 0, 255)),
	driver.RGBA8n:    traits(4, 4, fill4(0, 0, 0, 127)),
	driver.RGBA8sRGB: traits(4, 4, fill4(0, 0, 0, 255)),
	driver.BGRA8un:   traits(4, 4, fill4(0, 0, 0, 255)),
	driver.BGRA8sRGB: traits(4, 4, fill4(0, 0, 0, 255)),
	driver.RG8un:     traits(2, 2, [16]byte{}),
	driver.RG8n:      traits(2, 2, [16]byte{}),
	driver.R8un:      traits(1, 1, [16]byte{}),
	driver.R8n:       traits(1, 1, [16]byte{}),
	driver.RGBA16f:   traits(8, 4, fillF16(0, 0, 0, 1)),
	driver.RG16f:     traits(4, 2, [16]byte{}),
	driver.R16f:      traits(2, 1, [16]byte{}),
	driver.RGBA32f:   traits(16, 4, fillF32(0, 0, 0, 1)),
	driver.RG32f:     traits(8, 2, [16]byte{}),
	driver.R32f:      traits(4, 1, [16]byte{}),
	driver.D16un:     traits(2, 1, [16]byte{}),
	driver.D32f:      traits(4, 1, [16]byte{}),
	driver.S8ui:      traits(1, 1, [16]byte{}),
	driver.D24unS8ui: traits(4, 2, [16]byte{}),
	driver.D32fS8ui:  traits(5, 2, [16]byte{}),
}

// Of returns the Traits of pf.
// It panics if pf is not a recognized, non-internal format.
func Of(pf driver.PixelFmt) Traits {
	if pf.IsInternal() {
		panic("format.Of: cannot query traits of an internal format")
	}
	t, ok := table[pf]
	if !ok {
		panic("format.Of: undefined PixelFmt constant")
	}
	return t
}

// Size is a shorthand for Of(pf).Size.
func Size(pf driver.PixelFmt) int { return Of(pf).Size }

func fill4(r, g, b, a byte) (d [16]byte) {
	d[0], d[1], d[2], d[3] = r, g, b, a
	return
}

func fillF32(r, g, b, a float32) (d [16]byte) {
	putF32(d[0:4], r)
	putF32(d[4:8], g)
	putF32(d[8:12], b)
	putF32(d[12:16], a)
	return
}

func fillF16(r, g, b, a float32) (d [16]byte) {
	putF16(d[0:2], r)
	putF16(d[2:4], g)
	putF16(d[4:6], b)
	putF16(d[6:8], a)
	return
}

func putF32(b []byte, v float32) {
	u := f32bits(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}

// putF16 stores v as an IEEE 754 binary16 value.
// Only the values 0 and 1 are used by this package's default table,
// so a full binary32->binary16 conversion is not needed; this handles
// 0 and 1 precisely and panics on any other value.
func putF16(b []byte, v float32) {
	var u uint16
	switch v {
	case 0:
		u = 0
	case 1:
		u = 0x3C00
	default:
		panic("format.putF16: unsupported default value")
	}
	b[0] = byte(u)
	b[1] = byte(u >> 8)
}

func f32bits(v float32) uint32 {
	switch v {
	case 0:
		return 0
	case 1:
		return 0x3F800000
	default:
		panic("format.f32bits: unsupported default value")
	}
}
