// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package transfer implements asynchronous CPU-to-GPU data upload:
// a ring of staging buffers is filled from the CPU each frame and
// drained by batched copy commands gated by semaphores, so the
// caller never has to block waiting for a previous frame's upload
// to finish.
package transfer

import (
	"sync"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/driver/format"
	"github.com/suchaoyong/VulkanSceneGraph/internal/log"
)

// ImageTransferer records the image-side commands a Task needs -
// CopyBufToImg plus whatever layout transitions the destination
// image requires - but does not implement itself, since doing so
// needs a concrete backend. Production code supplies one; it is an
// external collaborator of this package, not part of it.
type ImageTransferer interface {
	TransferImage(cb driver.CmdBuffer, src driver.Buffer, srcOff int64, ii *ImageInfo, data []byte) error
}

// stagingBlock is one ring slot: a host-visible buffer, the command
// buffer and semaphore recording and gating its copies, created
// lazily the first time a frame actually has data to transfer.
type stagingBlock struct {
	buf driver.Buffer
	cb  driver.CmdBuffer
	sem driver.Semaphore
}

func (b *stagingBlock) destroy() {
	if b.cb != nil {
		b.cb.Destroy()
	}
	if b.sem != nil {
		b.sem.Destroy()
	}
	if b.buf != nil {
		b.buf.Destroy()
	}
	*b = stagingBlock{}
}

// Task is the Transfer Task: it accumulates BufferInfo/ImageInfo
// assignments into a Modification Ledger and, on TransferData,
// packs whatever has changed since the last call into the current
// frame's staging block and records the copy commands for it.
//
// A Task is safe for concurrent use; all of its exported methods
// take the same mutex.
type Task struct {
	mu sync.Mutex

	cfg    Config
	Name   string
	device uint32

	gpu     driver.GPU
	queue   driver.Queue
	imgXfer ImageTransferer

	ring   *FrameRing
	blocks []*stagingBlock

	early *dataToCopy
	late  *dataToCopy

	extraWait []driver.Semaphore
}

// NewTask creates a Task with the given configuration, allocating
// gpu resources through gpu and submitting through queue. device
// identifies the GPU for the purposes of the per-device modified-
// count cache (BufferInfo/ImageInfo may be shared by Tasks driving
// different devices).
func NewTask(cfg Config, gpu driver.GPU, queue driver.Queue, imgXfer ImageTransferer, device uint32) *Task {
	Configure(&cfg)
	blocks := make([]*stagingBlock, cfg.FrameCount)
	for i := range blocks {
		blocks[i] = &stagingBlock{}
	}
	return &Task{
		cfg:     cfg,
		device:  device,
		gpu:     gpu,
		queue:   queue,
		imgXfer: imgXfer,
		ring:    NewFrameRing(cfg.FrameCount),
		blocks:  blocks,
		early:   newDataToCopy(),
		late:    newDataToCopy(),
	}
}

// Advance moves the Task to the next frame's staging slot. It must
// be called exactly once per frame, before the frame's Assign/
// TransferData calls.
func (t *Task) Advance() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ring.Advance()
}

// Index returns the ring slot index k frames relative to the
// current one.
func (t *Task) Index(k int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ring.Index(k)
}

// Assign records buffers and images as having data to upload. Data
// pointed at by an entry is Ref'd for as long as the ledger holds a
// pending copy for it; see ContainsDataToTransfer.
func (t *Task) Assign(buffers []*BufferInfo, images []*ImageInfo) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, bi := range buffers {
		if bi.Data == nil {
			return ErrNoData
		}
		bi.Data.Ref()
		t.late.addBuffer(bi)
	}
	for _, ii := range images {
		if ii.Data == nil {
			return ErrNoData
		}
		ii.Data.Ref()
		t.late.addImage(ii)
	}
	log.Debug("assigned data to transfer", "name", t.Name, "buffers", len(buffers), "images", len(images))
	return nil
}

// ContainsDataToTransfer reports whether the Task has any pending
// buffer or image copy, assigned but not yet transferred.
func (t *Task) ContainsDataToTransfer() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.early.empty() || !t.late.empty()
}

// pendingBuffer pairs a ledger entry with the staging offset it was
// packed at.
type pendingBuffer struct {
	bi  *BufferInfo
	off int64
}

type pendingImage struct {
	ii         *ImageInfo
	off        int64
	levels     int
	texelSize  int
	srcOffsets []int64
	dstOffsets []int64
}

// TransferData packs every change accumulated since the last call
// into the current frame's staging block and records the commands
// that copy it to its destinations. It returns the block's command
// buffer (already Begin/End'd, ready for Queue.Submit) and whether
// one was recorded. transferred is true whenever the ledger held any
// entry this frame, even if every entry was skipped as unmodified or
// evicted and the command buffer holds no copy.
//
// Ledger entries whose Data has a reference count of 1 are evicted
// without being copied: the only remaining holder is the ledger
// itself, meaning every owner already released the Data, so
// transferring it would produce a result nobody can observe.
func (t *Task) TransferData() (cb driver.CmdBuffer, transferred bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ring.Set() {
		log.Debug("transfer data requested before the first Advance", "name", t.Name)
		return nil, false, nil
	}

	if t.early.empty() {
		t.early, t.late = t.late, newDataToCopy()
	} else {
		t.late.forEachBuffer(func(_ driver.Buffer, bi *BufferInfo) { t.early.addBuffer(bi) })
		t.late.forEachImage(func(ii *ImageInfo) { t.early.addImage(ii) })
		t.late = newDataToCopy()
	}
	if t.early.empty() {
		log.Debug("no data to transfer", "name", t.Name)
		return nil, false, nil
	}

	blk := t.blocks[t.ring.Index(0)]

	var total int64
	var pendBufs []pendingBuffer
	var pendImgs []pendingImage
	// evicted/copied entries are removed from the ledger once the
	// packing pass below succeeds; Dynamic entries that were copied,
	// and anything not touched this pass, stay pending.
	var evictedBufs []*BufferInfo
	var evictedImgs []*ImageInfo
	var copiedStaticBufs []*BufferInfo
	var copiedStaticImgs []*ImageInfo

	t.early.forEachBuffer(func(_ driver.Buffer, bi *BufferInfo) {
		if err != nil {
			return
		}
		if bi.Data.RefCount() == 1 {
			bi.Data.Unref()
			evictedBufs = append(evictedBufs, bi)
			return
		}
		if !bi.syncModifiedCount(t.device) {
			return
		}
		off := align(total, t.cfg.Alignment)
		pendBufs = append(pendBufs, pendingBuffer{bi, off})
		total = off + bi.size()
		if bi.Data.Variance == Static {
			copiedStaticBufs = append(copiedStaticBufs, bi)
		}
	})
	if err != nil {
		return nil, false, err
	}

	t.early.forEachImage(func(ii *ImageInfo) {
		if err != nil {
			return
		}
		if ii.Data.RefCount() == 1 {
			ii.Data.Unref()
			evictedImgs = append(evictedImgs, ii)
			return
		}
		if !ii.syncModifiedCount(t.device) {
			return
		}
		srcSize := format.Size(ii.SrcFormat)
		dstSize := format.Size(ii.DstFormat)
		if srcSize > dstSize {
			err = ErrShrink
			return
		}
		levels := ii.MipLevels
		if levels < 1 {
			levels = 1
		}
		srcOffsets, srcTotal := computeMipmapOffsets(ii.Size, levels, srcSize)
		dstOffsets, dstTotal := computeMipmapOffsets(ii.Size, levels, dstSize)
		if int64(len(ii.Data.Bytes())) < srcTotal {
			err = ErrMipRange
			return
		}
		off := align(total, t.cfg.Alignment)
		pendImgs = append(pendImgs, pendingImage{ii, off, levels, dstSize, srcOffsets, dstOffsets})
		total = off + dstTotal
		if ii.Data.Variance == Static {
			copiedStaticImgs = append(copiedStaticImgs, ii)
		}
	})
	if err != nil {
		return nil, false, err
	}

	if err = t.ensureCapacity(blk, total); err != nil {
		return nil, false, err
	}
	if blk.cb == nil {
		if blk.cb, err = t.gpu.NewCmdBuffer(); err != nil {
			return nil, false, err
		}
	}
	if blk.sem == nil {
		if blk.sem, err = t.queue.NewSemaphore(); err != nil {
			return nil, false, err
		}
	}

	if err = blk.cb.Begin(); err != nil {
		return nil, false, err
	}
	blk.cb.BeginBlit(false)

	dst := blk.buf.Bytes()
	// Batch regions by destination buffer, mirroring vkCmdCopyBuffer:
	// one command per (src, dst) pair covering every region between
	// them, rather than one command per region.
	var curDst driver.Buffer
	var regions []driver.BufferCopy
	flush := func() {
		if len(regions) > 0 {
			blk.cb.CopyBuffer(blk.buf, curDst, regions)
		}
		regions = nil
	}
	for _, p := range pendBufs {
		src := p.bi.Data.Bytes()[p.bi.Offset:]
		n := p.bi.size()
		copy(dst[p.off:p.off+n], src[:n])
		if p.bi.Dst != curDst {
			flush()
			curDst = p.bi.Dst
		}
		regions = append(regions, driver.BufferCopy{
			SrcOffset: p.off,
			DstOffset: p.bi.DstOffset,
			Size:      n,
		})
	}
	flush()

	for _, p := range pendImgs {
		for lvl := 0; lvl < p.levels; lvl++ {
			texels := mipTexels(p.ii.Size, lvl)
			srcOff, dstOff := p.srcOffsets[lvl], p.dstOffsets[lvl]
			srcLevel := p.ii.Data.Bytes()[srcOff:]
			dstLevel := dst[p.off+dstOff : p.off+dstOff+int64(texels*p.texelSize)]
			if cerr := convertPixels(dstLevel, srcLevel, p.ii.SrcFormat, p.ii.DstFormat, texels); cerr != nil {
				err = cerr
				break
			}
		}
		if err != nil {
			break
		}
		if t.imgXfer != nil {
			region := dst[p.off : p.off+p.dstOffsets[p.levels-1]+int64(mipTexels(p.ii.Size, p.levels-1)*p.texelSize)]
			if ierr := t.imgXfer.TransferImage(blk.cb, blk.buf, p.off, p.ii, region); ierr != nil {
				err = ierr
				break
			}
		}
	}
	blk.cb.EndBlit()
	if err != nil {
		blk.cb.Reset()
		return nil, false, err
	}
	if err = blk.cb.End(); err != nil {
		return nil, false, err
	}

	for _, bi := range evictedBufs {
		t.early.removeBuffer(bi.Dst, bi.DstOffset)
	}
	for _, bi := range copiedStaticBufs {
		t.early.removeBuffer(bi.Dst, bi.DstOffset)
		bi.Data.Unref()
	}
	for _, ii := range evictedImgs {
		t.early.removeImage(ii)
	}
	for _, ii := range copiedStaticImgs {
		t.early.removeImage(ii)
		ii.Data.Unref()
	}

	log.Debug("transferred data", "name", t.Name, "buffers", len(pendBufs), "images", len(pendImgs), "bytes", total)
	return blk.cb, true, nil
}

// ensureCapacity grows blk's staging buffer so that it can hold at
// least need bytes, never shrinking below Config.MinStagingSize.
func (t *Task) ensureCapacity(blk *stagingBlock, need int64) error {
	if need < t.cfg.MinStagingSize {
		need = t.cfg.MinStagingSize
	}
	if blk.buf != nil && blk.buf.Cap() >= need {
		return nil
	}
	buf, err := t.gpu.NewBuffer(need, true, driver.UGeneric)
	if err != nil {
		return err
	}
	if blk.buf != nil {
		blk.buf.Destroy()
	}
	blk.buf = buf
	return nil
}

// SetWaitSemaphores records the semaphores the next WaitSemaphores
// call should return, e.g. a previous frame's render-completion
// semaphore. They are consumed once: WaitSemaphores clears them as
// it returns them, so the caller does not accidentally wait on the
// same semaphore across two submissions.
func (t *Task) SetWaitSemaphores(sems []driver.Semaphore) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.extraWait = sems
}

// WaitSemaphores returns the semaphores a submission of the current
// frame's command buffer should wait on before its copies run.
func (t *Task) WaitSemaphores() []driver.Semaphore {
	t.mu.Lock()
	defer t.mu.Unlock()
	sems := t.extraWait
	t.extraWait = nil
	return sems
}

// SignalSemaphores returns the semaphores the current frame's
// submission should signal: the transfer-completion semaphore
// first (see CurrentTransferCompletedSemaphore), followed by extra.
func (t *Task) SignalSemaphores(extra ...driver.Semaphore) []driver.Semaphore {
	if sem := t.CurrentTransferCompletedSemaphore(); sem != nil {
		return append([]driver.Semaphore{sem}, extra...)
	}
	return extra
}

// CurrentTransferCompletedSemaphore returns the completion semaphore
// of the current frame's staging slot, or nil if Advance has not yet
// run for this Task or TransferData has never recorded into that
// slot. A slot keeps its semaphore once created, so after the ring
// wraps this returns it whether or not TransferData has run, or
// recorded anything, for the current frame.
func (t *Task) CurrentTransferCompletedSemaphore() driver.Semaphore {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ring.Set() {
		return nil
	}
	return t.blocks[t.ring.Index(0)].sem
}

// Close destroys every staging block's GPU resources and releases
// every Data still referenced by a pending ledger entry. The Task
// must not be used afterwards.
func (t *Task) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range [...]*dataToCopy{t.early, t.late} {
		c.forEachBuffer(func(_ driver.Buffer, bi *BufferInfo) { bi.Data.Unref() })
		c.forEachImage(func(ii *ImageInfo) { ii.Data.Unref() })
		c.clear()
	}
	for _, blk := range t.blocks {
		blk.destroy()
	}
}
