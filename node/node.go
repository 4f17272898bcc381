// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package node implements the minimal scene graph contract shared by
// the transfer and polytope packages: node identity, parent/child
// transform composition and node paths. It does not implement
// rendering or traversal scheduling.
package node

import (
	"github.com/suchaoyong/VulkanSceneGraph/internal/bitm"
	"github.com/suchaoyong/VulkanSceneGraph/linear"
)

// Interface is implemented by whatever a Graph stores at a node.
type Interface interface {
	// Local returns the local transform of the node.
	// It must not return nil.
	Local() *linear.M4

	// Changed returns whether the local transform
	// has changed since the last traversal.
	Changed() bool
}

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node, and is also the identifier of
// a Graph's implicit root.
const Nil Node = 0

type node struct {
	parent Node
	first  Node
	next   Node
	prev   Node
	data   int
}

type data struct {
	local Interface
	world linear.M4
	node  Node
}

// Graph is a node graph stored as a first-child/next-sibling tree.
// Nodes are identified by handle rather than pointer so that a
// NodePath can be copied, hashed and stored in an Intersection
// record without aliasing graph internals.
type Graph struct {
	world   linear.M4
	changed bool
	root    Node
	nodes   []node
	nodeMap bitm.Bitm[uint32]
	data    []data
}

// SetWorld sets the graph's global world transform.
func (g *Graph) SetWorld(m linear.M4) {
	g.world = m
	g.changed = true
}

// World returns the world transform last computed for n.
// World(Nil) returns the graph's global transform.
func (g *Graph) World(n Node) *linear.M4 {
	if n == Nil {
		return &g.world
	}
	return &g.data[g.nodes[n-1].data].world
}

// Changed reports whether SetWorld has been called on the graph.
// The flag is never cleared once set.
func (g *Graph) Changed() bool { return g.changed }

// Len returns the number of nodes currently in the graph.
func (g *Graph) Len() int { return len(g.data) }

// Insert inserts a new node as a child of prev.
// If prev is Nil, the node becomes a top-level node.
func (g *Graph) Insert(local Interface, prev Node) Node {
	if local == nil {
		panic("Graph.Insert: nil Interface")
	}
	if g.nodeMap.Rem() == 0 {
		switch n := g.nodeMap.Len(); {
		case n > 0:
			cnt := 1 + (n-31)/32
			g.nodes = append(g.nodes, make([]node, n)...)
			g.nodeMap.Grow(cnt)
		default:
			g.nodes = append(g.nodes, make([]node, 32)...)
			g.nodeMap.Grow(1)
		}
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		// Should never happen: Rem() > 0 guarantees a free bit.
		panic("Graph.Insert: unexpected failure from bitm.Bitm.Search")
	}
	g.nodeMap.Set(idx)
	id := Node(idx + 1)

	g.nodes[idx] = node{parent: prev, data: len(g.data)}
	if prev == Nil {
		if g.root != Nil {
			g.nodes[idx].next = g.root
			g.nodes[g.root-1].prev = id
		}
		g.root = id
	} else {
		pnode := &g.nodes[prev-1]
		if pnode.first != Nil {
			g.nodes[idx].next = pnode.first
			g.nodes[pnode.first-1].prev = id
		}
		pnode.first = id
	}
	g.data = append(g.data, data{local: local, node: id})
	return id
}

// Remove removes a node and returns the Interface it stored.
// n must have no children.
func (g *Graph) Remove(n Node) Interface {
	if n == Nil {
		panic("Graph.Remove: cannot remove the implicit root")
	}
	idx := int(n - 1)
	nd := g.nodes[idx]
	if nd.first != Nil {
		panic("Graph.Remove: node has children")
	}
	switch {
	case nd.prev != Nil:
		g.nodes[nd.prev-1].next = nd.next
	case nd.parent != Nil:
		g.nodes[nd.parent-1].first = nd.next
	default:
		g.root = nd.next
	}
	if nd.next != Nil {
		g.nodes[nd.next-1].prev = nd.prev
	}

	removed := g.data[nd.data].local
	last := len(g.data) - 1
	if nd.data < last {
		swap := g.data[last].node
		g.nodes[swap-1].data = nd.data
		g.data[nd.data] = g.data[last]
	}
	g.data[last] = data{}
	g.data = g.data[:last]
	g.nodes[idx] = node{}
	g.nodeMap.Unset(idx)
	return removed
}

// Transform is the double-precision local transform a polytope.Stack
// consumes when descending the graph. It is kept separate from the
// Interface.Local render-data matrix, which trades precision for
// the float32 throughput the renderer needs.
type Transform = linear.DMat4

// NodePath identifies the chain of nodes from the graph's implicit
// root down to a given node, root-first.
type NodePath []Node

// Path returns the NodePath from the root to n.
func (g *Graph) Path(n Node) NodePath {
	var rev NodePath
	for n != Nil {
		rev = append(rev, n)
		n = g.nodes[n-1].parent
	}
	path := make(NodePath, len(rev))
	for i, x := range rev {
		path[len(rev)-1-i] = x
	}
	return path
}

// ComputeTransform composes the local transforms of every node in
// path, root-first, onto the graph's global world transform and
// returns the resulting local-to-world transform. A Graph whose world
// transform was never set (the zero matrix) composes from the
// identity. It also caches the per-node partial result in World.
func (g *Graph) ComputeTransform(path NodePath) linear.M4 {
	m := g.world
	if m == (linear.M4{}) {
		m.I()
	}
	for _, n := range path {
		local := g.data[g.nodes[n-1].data].local
		var next linear.M4
		next.Mul(&m, local.Local())
		m = next
		g.data[g.nodes[n-1].data].world = m
	}
	return m
}
