// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package polytope

import (
	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/linear"
	"github.com/suchaoyong/VulkanSceneGraph/node"
)

// ArrayState describes the vertex data bound for the primitives an
// Intersector is currently testing: one flat vertex slice per
// instance, plus an optional 16- or 32-bit index buffer shared by
// every instance.
type ArrayState struct {
	Topology driver.Topology
	// Vertices holds one slice of positions per instance. A
	// non-instanced draw still provides exactly one slice.
	Vertices  [][]linear.DVec3
	Indices16 []uint16
	Indices32 []uint32
}

// vertexArray returns the position slice for the given instance, or
// nil if the instance is out of range.
func (a *ArrayState) vertexArray(instance uint32) []linear.DVec3 {
	if int(instance) >= len(a.Vertices) {
		return nil
	}
	return a.Vertices[instance]
}

func (a *ArrayState) index(i uint32) uint32 {
	if a.Indices16 != nil {
		return uint32(a.Indices16[i])
	}
	return a.Indices32[i]
}

// Intersection records a single vertex that was found inside the
// Intersector's current Polytope.
type Intersection struct {
	NodePath      node.NodePath
	LocalToWorld  linear.DMat4
	LocalVertex   linear.DVec3
	WorldVertex   linear.DVec3
	InstanceIndex uint32
	VertexIndex   uint32
}

// Intersector walks a graph under a Stack, testing the triangles of
// whatever ArrayState is currently bound against the Polytope on
// top of the stack.
type Intersector struct {
	stack       *Stack
	arrayStates []*ArrayState
	path        node.NodePath
	hits        []Intersection
}

// NewIntersector creates an Intersector that tests against world.
func NewIntersector(world Polytope) *Intersector {
	return &Intersector{stack: NewStack(world)}
}

// PushLocalToWorld pushes local onto the transform stack. It is a
// thin wrapper over Stack.PushTransform kept on Intersector so
// callers do not need to reach into the stack directly.
func (in *Intersector) PushLocalToWorld(local node.Transform) { in.stack.PushTransform(local) }

// PopTransform undoes the last PushLocalToWorld.
func (in *Intersector) PopTransform() { in.stack.PopTransform() }

// PushNode records n as the innermost element of the current node
// path, for attribution on any Intersection recorded while it is on
// top.
func (in *Intersector) PushNode(n node.Node) { in.path = append(in.path, n) }

// PopNode removes the innermost element pushed by PushNode.
func (in *Intersector) PopNode() { in.path = in.path[:len(in.path)-1] }

// PushArrayState binds a as the vertex source for subsequent
// IntersectDraw/IntersectDrawIndexed calls.
func (in *Intersector) PushArrayState(a *ArrayState) { in.arrayStates = append(in.arrayStates, a) }

// PopArrayState unbinds the ArrayState pushed by PushArrayState.
func (in *Intersector) PopArrayState() { in.arrayStates = in.arrayStates[:len(in.arrayStates)-1] }

// Intersects reports whether the sphere of the given center and
// radius (in the space of the transform currently on top of the
// stack) intersects the Polytope on top of the stack. A non-positive
// radius or a non-finite center never intersects; see
// Polytope.IntersectsSphere.
func (in *Intersector) Intersects(center linear.DVec3, radius float64) bool {
	return in.stack.Top().IntersectsSphere(center, radius)
}

// Add records a hit at localVertex, expressed in the space of the
// transform currently on top of the stack.
func (in *Intersector) Add(localVertex linear.DVec3, instanceIndex, vertexIndex uint32) Intersection {
	l2w := in.stack.LocalToWorld()
	worldVertex := mulPoint(l2w, localVertex)
	path := make(node.NodePath, len(in.path))
	copy(path, in.path)
	hit := Intersection{
		NodePath:      path,
		LocalToWorld:  l2w,
		LocalVertex:   localVertex,
		WorldVertex:   worldVertex,
		InstanceIndex: instanceIndex,
		VertexIndex:   vertexIndex,
	}
	in.hits = append(in.hits, hit)
	return hit
}

// Intersections returns every Intersection recorded so far. The
// returned slice aliases the Intersector's internal state and must
// not be mutated.
func (in *Intersector) Intersections() []Intersection { return in.hits }

// IntersectDraw tests the triangles of a non-indexed draw call
// against the Polytope on top of the stack. It returns whether at
// least one new Intersection was recorded.
//
// Only the TTriangle topology is tested: lines and points carry no
// area for a pick to land inside, matching the original's
// triangle-only scope. The test is conservative by construction -
// "any vertex inside implies a hit" - and will miss a triangle whose
// vertices all lie outside the polytope even though its interior
// straddles one of the half-spaces.
func (in *Intersector) IntersectDraw(firstVertex, vertexCount, firstInstance, instanceCount uint32) bool {
	previous := len(in.hits)
	a := in.arrayStates[len(in.arrayStates)-1]
	if a.Topology != driver.TTriangle || vertexCount < 3 {
		return false
	}
	polytope := in.stack.Top()

	last := firstInstance + 1
	if instanceCount > 1 {
		last = firstInstance + instanceCount
	}
	endVertex := firstVertex + (vertexCount/3)*3
	for instance := firstInstance; instance < last; instance++ {
		verts := a.vertexArray(instance)
		if verts == nil {
			break
		}
		for i := firstVertex; i < endVertex; i += 3 {
			in.intersectTriangle(polytope, verts, instance, i, i+1, i+2)
		}
	}
	return len(in.hits) != previous
}

// IntersectDrawIndexed tests the triangles of an indexed draw call
// against the Polytope on top of the stack, applying the same
// topology, count and conservative-test rules as IntersectDraw.
func (in *Intersector) IntersectDrawIndexed(firstIndex, indexCount, firstInstance, instanceCount uint32) bool {
	previous := len(in.hits)
	a := in.arrayStates[len(in.arrayStates)-1]
	if a.Topology != driver.TTriangle || indexCount < 3 {
		return false
	}
	polytope := in.stack.Top()

	last := firstInstance + 1
	if instanceCount > 1 {
		last = firstInstance + instanceCount
	}
	endIndex := firstIndex + (indexCount/3)*3
	for instance := firstInstance; instance < last; instance++ {
		verts := a.vertexArray(instance)
		if verts == nil {
			continue
		}
		for i := firstIndex; i < endIndex; i += 3 {
			i0, i1, i2 := a.index(i), a.index(i+1), a.index(i+2)
			in.intersectTriangle(polytope, verts, instance, i0, i1, i2)
		}
	}
	return len(in.hits) != previous
}

// intersectTriangle applies the conservative vertex-inside test to
// a single triangle and, on a hit, records every vertex of it that
// lies inside polytope - completing the call site the original
// leaves as a todo.
func (in *Intersector) intersectTriangle(polytope Polytope, verts []linear.DVec3, instance, i0, i1, i2 uint32) bool {
	v0, v1, v2 := verts[i0], verts[i1], verts[i2]
	in0, in1, in2 := polytope.Inside(v0), polytope.Inside(v1), polytope.Inside(v2)
	if !in0 && !in1 && !in2 {
		return false
	}
	if in0 {
		in.Add(v0, instance, i0)
	}
	if in1 {
		in.Add(v1, instance, i1)
	}
	if in2 {
		in.Add(v2, instance, i2)
	}
	return true
}

func mulPoint(m linear.DMat4, v linear.DVec3) linear.DVec3 {
	r := m.Mul4x1(linear.DVec4{v[0], v[1], v[2], 1})
	return linear.DVec3{r[0], r[1], r[2]}
}
