// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"testing"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FrameCount = 2
	cfg.MinStagingSize = 64
	return cfg
}

func TestTransferDataNoopsBeforeFirstAdvance(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)

	src := NewData([]byte{1, 2, 3, 4}, Static)
	bi := &BufferInfo{Data: src, Dst: newFakeDst(64)}
	task.Assign([]*BufferInfo{bi}, nil)

	cb, transferred, err := task.TransferData()
	if err != nil {
		t.Fatalf("Task.TransferData: %v", err)
	}
	if transferred || cb != nil {
		t.Fatalf("Task.TransferData before Advance: have (%v, %v), want (nil, false)", cb, transferred)
	}
	if !task.ContainsDataToTransfer() {
		t.Fatal("Task.ContainsDataToTransfer: the assigned entry must still be pending")
	}

	task.Advance()
	if _, transferred, err := task.TransferData(); err != nil || !transferred {
		t.Fatalf("Task.TransferData after Advance: transferred=%v err=%v", transferred, err)
	}
}

func TestTransferDataCopiesBuffer(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	src := NewData([]byte{1, 2, 3, 4, 5, 6, 7, 8}, Static)
	dst := newFakeDst(64)
	bi := &BufferInfo{Data: src, Dst: dst, DstOffset: 0}

	if err := task.Assign([]*BufferInfo{bi}, nil); err != nil {
		t.Fatalf("Task.Assign: %v", err)
	}
	if !task.ContainsDataToTransfer() {
		t.Fatal("Task.ContainsDataToTransfer: want true after Assign")
	}

	cb, transferred, err := task.TransferData()
	if err != nil {
		t.Fatalf("Task.TransferData: %v", err)
	}
	if !transferred {
		t.Fatal("Task.TransferData: want transferred=true")
	}
	fcb := cb.(*fakeCmdBuffer)
	if len(fcb.copies) != 1 {
		t.Fatalf("len(copies):\nhave %d\nwant 1", len(fcb.copies))
	}
	if fcb.copies[0].dst != dst {
		t.Fatal("CopyBuffer: dst does not match destination buffer")
	}
	if len(fcb.copies[0].regions) != 1 || fcb.copies[0].regions[0].Size != 8 {
		t.Fatalf("CopyBuffer: regions\nhave %v\nwant one region of size 8", fcb.copies[0].regions)
	}

	// A Static entry that was actually copied leaves the ledger.
	if task.ContainsDataToTransfer() {
		t.Fatal("Task.ContainsDataToTransfer: want false, the Static entry should have been dropped")
	}
}

func TestTransferDataBatchesRegionsPerDestinationBuffer(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	dstA := newFakeDst(64)
	dstB := newFakeDst(64)
	biA1 := &BufferInfo{Data: NewData([]byte{1, 2}, Static), Dst: dstA, DstOffset: 0}
	biA2 := &BufferInfo{Data: NewData([]byte{3, 4}, Static), Dst: dstA, DstOffset: 8}
	biB := &BufferInfo{Data: NewData([]byte{5, 6}, Static), Dst: dstB, DstOffset: 0}

	if err := task.Assign([]*BufferInfo{biA1, biA2, biB}, nil); err != nil {
		t.Fatalf("Task.Assign: %v", err)
	}
	cb, _, err := task.TransferData()
	if err != nil {
		t.Fatalf("Task.TransferData: %v", err)
	}
	fcb := cb.(*fakeCmdBuffer)

	// Two destination buffers: exactly two CopyBuffer calls, the
	// first batching both regions destined for dstA.
	if len(fcb.copies) != 2 {
		t.Fatalf("len(copies):\nhave %d\nwant 2", len(fcb.copies))
	}
	if fcb.copies[0].dst != dstA || len(fcb.copies[0].regions) != 2 {
		t.Fatalf("copies[0]: dst=%v regions=%v, want dstA with 2 regions", fcb.copies[0].dst, fcb.copies[0].regions)
	}
	if fcb.copies[1].dst != dstB || len(fcb.copies[1].regions) != 1 {
		t.Fatalf("copies[1]: dst=%v regions=%v, want dstB with 1 region", fcb.copies[1].dst, fcb.copies[1].regions)
	}
}

func TestTransferDataSkipsUnmodified(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	src := NewData([]byte{1, 2, 3, 4}, Dynamic)
	dst := newFakeDst(64)
	bi := &BufferInfo{Data: src, Dst: dst}

	task.Assign([]*BufferInfo{bi}, nil)
	if _, transferred, err := task.TransferData(); err != nil || !transferred {
		t.Fatalf("first TransferData: transferred=%v err=%v", transferred, err)
	}

	// Re-assign without modifying the data: the modified-count
	// cache should skip the copy.
	task.Advance()
	task.Assign([]*BufferInfo{bi}, nil)
	cb, transferred, err := task.TransferData()
	if err != nil {
		t.Fatalf("second TransferData: %v", err)
	}
	if !transferred {
		t.Fatal("second TransferData: want transferred=true (block still created)")
	}
	if n := len(cb.(*fakeCmdBuffer).copies); n != 0 {
		t.Fatalf("second TransferData: copies\nhave %d\nwant 0 (unmodified data)", n)
	}
}

func TestTransferDataKeepsDynamicEntryPending(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	src := NewData([]byte{1, 2, 3, 4}, Dynamic)
	bi := &BufferInfo{Data: src, Dst: newFakeDst(64)}
	task.Assign([]*BufferInfo{bi}, nil)

	if _, transferred, err := task.TransferData(); err != nil || !transferred {
		t.Fatalf("TransferData: transferred=%v err=%v", transferred, err)
	}
	// A Dynamic entry stays in the ledger after a successful copy,
	// since it may be modified and need copying again later, even
	// though nothing re-Assigned it.
	if !task.ContainsDataToTransfer() {
		t.Fatal("ContainsDataToTransfer: want true, Dynamic entries must remain pending after copy")
	}

	// Five more frames without modification or re-Assign: the entry
	// is skipped every time (unmodified), but is never evicted.
	for i := 0; i < 5; i++ {
		task.Advance()
		if _, transferred, err := task.TransferData(); err != nil || !transferred {
			t.Fatalf("frame %d TransferData: transferred=%v err=%v", i, transferred, err)
		}
		if !task.ContainsDataToTransfer() {
			t.Fatalf("frame %d: Dynamic entry should not have been dropped", i)
		}
	}
}

func TestTransferDataEvictsRefCountOne(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	src := NewData([]byte{1, 2, 3, 4}, Dynamic)
	dst := newFakeDst(64)
	bi := &BufferInfo{Data: src, Dst: dst}

	task.Assign([]*BufferInfo{bi}, nil)
	// The only owner drops its reference before the data transfers;
	// only the ledger's Ref from Assign remains.
	src.Unref()

	cb, transferred, err := task.TransferData()
	if err != nil {
		t.Fatalf("Task.TransferData: %v", err)
	}
	if !transferred {
		t.Fatal("Task.TransferData: want transferred=true (block still created)")
	}
	if n := len(cb.(*fakeCmdBuffer).copies); n != 0 {
		t.Fatalf("copies:\nhave %d\nwant 0 (self-evicted)", n)
	}
	if task.ContainsDataToTransfer() {
		t.Fatal("ContainsDataToTransfer: want false, the evicted entry must leave the ledger")
	}
}

func TestAssignNilDataErrors(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	if err := task.Assign([]*BufferInfo{{}}, nil); err != ErrNoData {
		t.Fatalf("Task.Assign:\nhave %v\nwant %v", err, ErrNoData)
	}
}

func TestSignalSemaphoresIncludesCompletion(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()
	src := NewData([]byte{1, 2, 3, 4}, Static)
	task.Assign([]*BufferInfo{{Data: src, Dst: newFakeDst(64)}}, nil)
	if _, _, err := task.TransferData(); err != nil {
		t.Fatalf("Task.TransferData: %v", err)
	}
	extra := &fakeSemaphore{}
	sems := task.SignalSemaphores(extra)
	if len(sems) != 2 || sems[0] != task.CurrentTransferCompletedSemaphore() || sems[1] != driver.Semaphore(extra) {
		t.Fatalf("Task.SignalSemaphores: unexpected result %v", sems)
	}
}

func TestSignalSemaphoresBeforeFirstAdvanceOmitsCompletion(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	extra := &fakeSemaphore{}
	sems := task.SignalSemaphores(extra)
	if len(sems) != 1 || sems[0] != driver.Semaphore(extra) {
		t.Fatalf("Task.SignalSemaphores: unexpected result %v", sems)
	}
	if task.CurrentTransferCompletedSemaphore() != nil {
		t.Fatal("CurrentTransferCompletedSemaphore: want nil before the first Advance")
	}
}

func TestTransferDataConvertsMipmapLevels(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	// 4x1x1 base level plus its 2x1x1 and 1x1x1 mips, R8un
	// throughout so conversion is a byte copy and every value is
	// distinguishable.
	data := NewData([]byte{
		1, 2, 3, 4, // level 0: 4 texels
		5, 6, // level 1: 2 texels
		7, // level 2: 1 texel
	}, Static)
	ii := &ImageInfo{
		Data:      data,
		SrcFormat: driver.R8un,
		DstFormat: driver.R8un,
		Dst:       &fakeImage{},
		Size:      driver.Dim3D{Width: 4, Height: 1, Depth: 1},
		MipLevels: 3,
	}

	if err := task.Assign(nil, []*ImageInfo{ii}); err != nil {
		t.Fatalf("Task.Assign: %v", err)
	}
	if _, transferred, err := task.TransferData(); err != nil || !transferred {
		t.Fatalf("Task.TransferData: transferred=%v err=%v", transferred, err)
	}
	staged := task.blocks[task.Index(0)].buf.Bytes()[:7]
	for i, want := range []byte{1, 2, 3, 4, 5, 6, 7} {
		if staged[i] != want {
			t.Fatalf("staged mip data:\nhave %v\nwant [1 2 3 4 5 6 7]", staged)
		}
	}
}

func TestTransferDataRejectsMipRangeOverflow(t *testing.T) {
	task := NewTask(testConfig(), fakeGPU{}, fakeQueue{}, nil, 0)
	task.Advance()

	// Claims 3 mip levels of a 4x1x1 image (4+2+1 = 7 texels) but
	// only provides 4 bytes of data.
	data := NewData([]byte{1, 2, 3, 4}, Static)
	ii := &ImageInfo{
		Data:      data,
		SrcFormat: driver.R8un,
		DstFormat: driver.R8un,
		Dst:       &fakeImage{},
		Size:      driver.Dim3D{Width: 4, Height: 1, Depth: 1},
		MipLevels: 3,
	}

	task.Assign(nil, []*ImageInfo{ii})
	if _, _, err := task.TransferData(); err != ErrMipRange {
		t.Fatalf("Task.TransferData:\nhave %v\nwant %v", err, ErrMipRange)
	}
}
