// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package scene

import (
	"testing"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/node"
	"github.com/suchaoyong/VulkanSceneGraph/transfer"
)

// noopGPU/noopQueue satisfy driver.GPU/driver.Queue just well enough
// for New to build a transfer.Task; none of their methods are
// expected to be called by these tests.
type noopGPU struct{}

func (noopGPU) Driver() driver.Driver                   { return nil }
func (noopGPU) Commit([]driver.CmdBuffer, chan<- error) {}
func (noopGPU) NewCmdBuffer() (driver.CmdBuffer, error) { return nil, nil }
func (noopGPU) NewBuffer(int64, bool, driver.Usage) (driver.Buffer, error) {
	return nil, nil
}
func (noopGPU) NewImage(driver.PixelFmt, driver.Dim3D, int, int, int, driver.Usage) (driver.Image, error) {
	return nil, nil
}
func (noopGPU) Limits() driver.Limits { return driver.Limits{} }

type noopQueue struct{}

func (noopQueue) NewSemaphore() (driver.Semaphore, error) { return nil, nil }
func (noopQueue) Submit(*driver.SubmitInfo) error         { return nil }

func newTestScene() *Scene {
	return New(transfer.DefaultConfig(), noopGPU{}, noopQueue{}, nil, 0)
}

func TestNew(t *testing.T) {
	var z Scene
	s := newTestScene()
	if s.graph.Len() != z.graph.Len() {
		t.Fatal("New().graph.Len: New should not insert any nodes")
	}
	if *s.graph.World(node.Nil) != *z.graph.World(node.Nil) {
		t.Fatal("New().graph.World: New should not set the global world transform")
	}
	if s.Transfer() == nil {
		t.Fatal("New().Transfer: want a non-nil transfer.Task")
	}
}

func TestSceneGraphAndTransferAccessors(t *testing.T) {
	s := newTestScene()
	if s.Graph() != &s.graph {
		t.Fatal("Scene.Graph: want a pointer to the scene's own graph")
	}
}
