// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package polytope

import (
	"errors"

	"github.com/suchaoyong/VulkanSceneGraph/linear"
	"github.com/suchaoyong/VulkanSceneGraph/node"
)

// ErrStackEmpty is the value PopTransform panics with when called on
// a Stack that holds only the initial world-space Polytope.
var ErrStackEmpty = errors.New(polytopePrefix + "pop from empty transform stack")

// Stack carries a world-space Polytope down into the local space of
// each node visited during a graph traversal. Pushes and pops must
// be strictly nested (LIFO) around the traversal of a node's
// subtree; popping past the world-space entry is a programming
// error and panics with ErrStackEmpty, matching the precondition-
// violation idiom used elsewhere in this module.
type Stack struct {
	polytopes    []Polytope
	localToWorld []node.Transform
	worldToLocal []node.Transform
}

// NewStack creates a Stack whose only entry is the world-space
// Polytope world.
func NewStack(world Polytope) *Stack {
	return &Stack{polytopes: []Polytope{world}}
}

// Top returns the Polytope for the innermost pushed transform, or
// the world-space Polytope if none has been pushed.
func (s *Stack) Top() Polytope { return s.polytopes[len(s.polytopes)-1] }

// LocalToWorld returns the composed local-to-world transform at the
// top of the stack, or the identity if none has been pushed.
func (s *Stack) LocalToWorld() node.Transform {
	if len(s.localToWorld) == 0 {
		return linear.DMat4I()
	}
	return s.localToWorld[len(s.localToWorld)-1]
}

// WorldToLocal returns the inverse of LocalToWorld.
func (s *Stack) WorldToLocal() node.Transform {
	if len(s.worldToLocal) == 0 {
		return linear.DMat4I()
	}
	return s.worldToLocal[len(s.worldToLocal)-1]
}

// PushTransform composes local onto the current local-to-world
// transform and pushes the resulting Polytope, obtained by carrying
// the world-space half-spaces (always polytopes[0]) into the new
// local space.
func (s *Stack) PushTransform(local node.Transform) {
	l2w := local
	if len(s.localToWorld) > 0 {
		l2w = s.localToWorld[len(s.localToWorld)-1].Mul4(local)
	}
	w2l := l2w.Inv()

	world := s.polytopes[0]
	localSpace := make(Polytope, len(world))
	for i, hs := range world {
		localSpace[i] = linear.TransformPlane(hs, l2w)
	}

	s.polytopes = append(s.polytopes, localSpace)
	s.localToWorld = append(s.localToWorld, l2w)
	s.worldToLocal = append(s.worldToLocal, w2l)
}

// PopTransform undoes the last PushTransform.
func (s *Stack) PopTransform() {
	if len(s.localToWorld) == 0 {
		panic(ErrStackEmpty)
	}
	s.polytopes = s.polytopes[:len(s.polytopes)-1]
	s.localToWorld = s.localToWorld[:len(s.localToWorld)-1]
	s.worldToLocal = s.worldToLocal[:len(s.worldToLocal)-1]
}
