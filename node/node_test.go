// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package node

import (
	"testing"

	"github.com/suchaoyong/VulkanSceneGraph/linear"
)

// leaf is a minimal Interface implementation for testing.
type leaf struct {
	local   linear.M4
	changed bool
}

func (l *leaf) Local() *linear.M4 { return &l.local }
func (l *leaf) Changed() bool     { return l.changed }

func newLeaf() *leaf {
	l := &leaf{}
	l.local.I()
	return l
}

func TestInsertRemove(t *testing.T) {
	var g Graph

	n1 := g.Insert(newLeaf(), Nil)
	n2 := g.Insert(newLeaf(), Nil)
	n3 := g.Insert(newLeaf(), n1)

	if g.Len() != 3 {
		t.Fatalf("Graph.Len:\nhave %d\nwant 3", g.Len())
	}

	p := g.Path(n3)
	if len(p) != 2 || p[0] != n1 || p[1] != n3 {
		t.Fatalf("Graph.Path:\nhave %v\nwant [%v %v]", p, n1, n3)
	}

	g.Remove(n3)
	if g.Len() != 2 {
		t.Fatalf("Graph.Len after Remove:\nhave %d\nwant 2", g.Len())
	}
	g.Remove(n2)
	g.Remove(n1)
	if g.Len() != 0 {
		t.Fatalf("Graph.Len after draining:\nhave %d\nwant 0", g.Len())
	}
}

func TestRemoveWithChildrenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Graph.Remove: expected panic when node has children")
		}
	}()
	var g Graph
	n1 := g.Insert(newLeaf(), Nil)
	g.Insert(newLeaf(), n1)
	g.Remove(n1)
}

func TestComputeTransform(t *testing.T) {
	var g Graph

	root := newLeaf()
	root.local.I()
	root.local[0][0] = 2
	root.local[1][1] = 2
	root.local[2][2] = 2
	child := newLeaf()
	child.local.I()
	child.local[3][0] = 1

	n1 := g.Insert(root, Nil)
	n2 := g.Insert(child, n1)

	got := g.ComputeTransform(g.Path(n2))

	var want linear.M4
	want.I()
	var tmp linear.M4
	tmp.Mul(&want, root.Local())
	want = tmp
	tmp.Mul(&want, child.Local())
	want = tmp

	if got != want {
		t.Fatalf("Graph.ComputeTransform:\nhave %v\nwant %v", got, want)
	}
}

func TestGraphZero(t *testing.T) {
	var g Graph
	if g.Len() != 0 {
		t.Fatalf("Graph{}.Len:\nhave %d\nwant 0", g.Len())
	}
	if w := *g.World(Nil); w != (linear.M4{}) {
		t.Fatalf("Graph{}.World(Nil):\nhave %v\nwant zero value", w)
	}
}
