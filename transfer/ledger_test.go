// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package transfer

import (
	"testing"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

func TestDataToCopyRemoveBufferLeavesOthersPending(t *testing.T) {
	c := newDataToCopy()
	dst := newFakeDst(64)
	bi1 := &BufferInfo{Dst: dst, DstOffset: 0}
	bi2 := &BufferInfo{Dst: dst, DstOffset: 8}
	c.addBuffer(bi1)
	c.addBuffer(bi2)

	c.removeBuffer(dst, 0)
	if c.empty() {
		t.Fatal("removeBuffer: ledger should still hold the other entry")
	}
	var seen []*BufferInfo
	c.forEachBuffer(func(_ driver.Buffer, bi *BufferInfo) { seen = append(seen, bi) })
	if len(seen) != 1 || seen[0] != bi2 {
		t.Fatalf("forEachBuffer after removeBuffer: have %v, want [bi2]", seen)
	}

	c.removeBuffer(dst, 8)
	if !c.empty() {
		t.Fatal("removeBuffer: ledger should be empty once every entry is removed")
	}
}

func TestDataToCopyRemoveImage(t *testing.T) {
	c := newDataToCopy()
	ii1 := &ImageInfo{}
	ii2 := &ImageInfo{}
	c.addImage(ii1)
	c.addImage(ii2)

	c.removeImage(ii1)
	var seen []*ImageInfo
	c.forEachImage(func(ii *ImageInfo) { seen = append(seen, ii) })
	if len(seen) != 1 || seen[0] != ii2 {
		t.Fatalf("forEachImage after removeImage: have %v, want [ii2]", seen)
	}

	c.removeImage(ii2)
	if !c.empty() {
		t.Fatal("removeImage: ledger should be empty once every entry is removed")
	}
}

func TestDataToCopyRemoveUnknownEntryIsNoop(t *testing.T) {
	c := newDataToCopy()
	dst := newFakeDst(64)
	c.removeBuffer(dst, 0) // never added; must not panic
	c.removeImage(&ImageInfo{})
	if !c.empty() {
		t.Fatal("removing absent entries must not add anything")
	}
}
