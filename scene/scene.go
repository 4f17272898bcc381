// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package scene ties the node graph, the transfer engine and the
// polytope intersector together into a single integration point.
package scene

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/linear"
	"github.com/suchaoyong/VulkanSceneGraph/node"
	"github.com/suchaoyong/VulkanSceneGraph/polytope"
	"github.com/suchaoyong/VulkanSceneGraph/transfer"
)

// Scene defines a scene graph together with the subsystems that
// act on it: asynchronous data transfer and polytope picking.
type Scene struct {
	graph    node.Graph
	transfer *transfer.Task
}

// New creates an initialized scene, using cfg, gpu, queue, imgXfer
// and device to build the scene's transfer.Task. See transfer.NewTask
// for their meaning.
func New(cfg transfer.Config, gpu driver.GPU, queue driver.Queue, imgXfer transfer.ImageTransferer, device uint32) *Scene {
	return new(Scene).Init(cfg, gpu, queue, imgXfer, device)
}

// Init (re)initializes a scene.
func (s *Scene) Init(cfg transfer.Config, gpu driver.GPU, queue driver.Queue, imgXfer transfer.ImageTransferer, device uint32) *Scene {
	s.graph = node.Graph{}
	s.transfer = transfer.NewTask(cfg, gpu, queue, imgXfer, device)
	return s
}

// Graph returns the scene's node graph.
func (s *Scene) Graph() *node.Graph { return &s.graph }

// Transfer returns the scene's transfer task.
func (s *Scene) Transfer() *transfer.Task { return s.transfer }

// Intersect pushes the local-to-world transform of path onto
// intersector's stack for the duration of the call and returns the
// Intersections intersector has recorded so far. It does not test any
// geometry itself, so it records no new Intersection.
func (s *Scene) Intersect(intersector *polytope.Intersector, path node.NodePath) []polytope.Intersection {
	world := s.graph.ComputeTransform(path)
	intersector.PushLocalToWorld(linear.ToDMat4(world))
	defer intersector.PopTransform()
	return intersector.Intersections()
}
