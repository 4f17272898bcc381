// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package main

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

// memDriver is a software driver.Driver/driver.GPU pair: buffers
// live entirely in process memory and CopyBuffer runs synchronously,
// so it needs no platform library. It exists so this command has
// something to drive transfer.Task against without a real backend.
type memDriver struct{}

func (memDriver) Name() string  { return "mem" }
func (memDriver) Open() (driver.GPU, error) { return memGPU{}, nil }
func (memDriver) Close()        {}

type memGPU struct{}

func (memGPU) Driver() driver.Driver { return memDriver{} }

func (memGPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	if ch != nil {
		ch <- nil
	}
}

func (memGPU) NewCmdBuffer() (driver.CmdBuffer, error) { return &memCmdBuffer{}, nil }

func (memGPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	return &memBuffer{bytes: make([]byte, size)}, nil
}

func (memGPU) NewImage(driver.PixelFmt, driver.Dim3D, int, int, int, driver.Usage) (driver.Image, error) {
	panic("xferdemo: NewImage not supported by the in-memory driver")
}

func (memGPU) Limits() driver.Limits {
	return driver.Limits{MaxImage2D: 4096, MaxLayers: 256}
}

type memBuffer struct{ bytes []byte }

func (b *memBuffer) Destroy()      {}
func (b *memBuffer) Visible() bool { return true }
func (b *memBuffer) Bytes() []byte { return b.bytes }
func (b *memBuffer) Cap() int64    { return int64(len(b.bytes)) }

// memCmdBuffer implements driver.CmdBuffer by running every command
// synchronously against in-process buffers.
type memCmdBuffer struct{}

func (c *memCmdBuffer) Destroy()        {}
func (c *memCmdBuffer) Begin() error    { return nil }
func (c *memCmdBuffer) BeginBlit(bool)  {}
func (c *memCmdBuffer) EndBlit()        {}

func (c *memCmdBuffer) CopyBuffer(src, dst driver.Buffer, regions []driver.BufferCopy) {
	from, to := src.Bytes(), dst.Bytes()
	for _, r := range regions {
		copy(to[r.DstOffset:r.DstOffset+r.Size], from[r.SrcOffset:r.SrcOffset+r.Size])
	}
}

func (c *memCmdBuffer) CopyBufToImg(*driver.BufImgCopy) {}
func (c *memCmdBuffer) Fill(dst driver.Buffer, off int64, val byte, size int64) {
	b := dst.Bytes()[off : off+size]
	for i := range b {
		b[i] = val
	}
}
func (c *memCmdBuffer) Transition([]driver.Transition) {}
func (c *memCmdBuffer) End() error                     { return nil }
func (c *memCmdBuffer) Reset() error                   { return nil }

type memQueue struct{}

func (memQueue) NewSemaphore() (driver.Semaphore, error) { return &memSemaphore{}, nil }
func (memQueue) Submit(*driver.SubmitInfo) error         { return nil }

type memSemaphore struct{}

func (*memSemaphore) Destroy() {}
