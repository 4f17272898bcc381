// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

// The fakes below implement just enough of the driver interfaces
// for Task's unit tests to drive a full TransferData cycle without
// a real GPU backend, mirroring the hand-rolled test doubles the
// teacher package used for its own driver tests.

type fakeBuffer struct {
	bytes []byte
}

func newFakeBuffer(n int64) *fakeBuffer { return &fakeBuffer{bytes: make([]byte, n)} }

func (b *fakeBuffer) Destroy()        {}
func (b *fakeBuffer) Visible() bool   { return true }
func (b *fakeBuffer) Bytes() []byte   { return b.bytes }
func (b *fakeBuffer) Cap() int64      { return int64(len(b.bytes)) }

type fakeSemaphore struct{ destroyed bool }

func (s *fakeSemaphore) Destroy() { s.destroyed = true }

// copyCall records one batched CopyBuffer invocation: the source and
// destination buffers involved, and the regions copied between them.
type copyCall struct {
	src, dst driver.Buffer
	regions  []driver.BufferCopy
}

type fakeCmdBuffer struct {
	recording bool
	copies    []copyCall
}

func (c *fakeCmdBuffer) Destroy() {}
func (c *fakeCmdBuffer) Begin() error {
	c.recording = true
	return nil
}
func (c *fakeCmdBuffer) BeginBlit(bool) {}
func (c *fakeCmdBuffer) EndBlit()       {}
func (c *fakeCmdBuffer) CopyBuffer(src, dst driver.Buffer, regions []driver.BufferCopy) {
	c.copies = append(c.copies, copyCall{src, dst, regions})
}
func (c *fakeCmdBuffer) CopyBufToImg(*driver.BufImgCopy)        {}
func (c *fakeCmdBuffer) Fill(driver.Buffer, int64, byte, int64) {}
func (c *fakeCmdBuffer) Transition([]driver.Transition)         {}
func (c *fakeCmdBuffer) End() error {
	c.recording = false
	return nil
}
func (c *fakeCmdBuffer) Reset() error {
	c.recording = false
	c.copies = nil
	return nil
}

type fakeQueue struct{}

func (fakeQueue) NewSemaphore() (driver.Semaphore, error) { return &fakeSemaphore{}, nil }
func (fakeQueue) Submit(*driver.SubmitInfo) error         { return nil }

type fakeGPU struct{}

func (fakeGPU) Driver() driver.Driver                   { return nil }
func (fakeGPU) Commit([]driver.CmdBuffer, chan<- error) {}
func (fakeGPU) NewCmdBuffer() (driver.CmdBuffer, error) { return &fakeCmdBuffer{}, nil }
func (fakeGPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	return newFakeBuffer(size), nil
}
func (fakeGPU) NewImage(driver.PixelFmt, driver.Dim3D, int, int, int, driver.Usage) (driver.Image, error) {
	panic("fakeGPU: NewImage not implemented")
}
func (fakeGPU) Limits() driver.Limits { return driver.Limits{} }

type fakeDstBuffer struct{ *fakeBuffer }

func newFakeDst(n int64) *fakeDstBuffer { return &fakeDstBuffer{newFakeBuffer(n)} }

// fakeImage is a destination driver.Image with no backing storage:
// TransferData never reads or writes image contents directly, since
// that is the ImageTransferer collaborator's job.
type fakeImage struct{}

func (*fakeImage) Destroy() {}
