// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package polytope

import (
	"testing"

	"github.com/suchaoyong/VulkanSceneGraph/linear"
)

func TestStackPushPopNesting(t *testing.T) {
	world := cube()
	s := NewStack(world)

	if len(s.Top()) != len(world) {
		t.Fatalf("Top: want the world polytope before any push")
	}
	if s.LocalToWorld() != linear.DMat4I() {
		t.Fatal("LocalToWorld: want identity before any push")
	}

	translate := linear.DMat4I()
	translate[12] = 5 // translate x by 5 (column-major, column 3 = translation)

	s.PushTransform(translate)
	// A point at local origin, which is world (5,0,0), must now test
	// outside the x<=1 half-space of the translated local polytope.
	if s.Top().Inside(linear.DVec3{0, 0, 0}) {
		t.Fatal("Top: local origin should be outside after translating the frame by +5 on x")
	}

	s.PushTransform(translate)
	// Two nested translations of +5 compose to +10; a point at local
	// (-10, 0, 0) maps back to world origin, which is inside.
	if !s.Top().Inside(linear.DVec3{-10, 0, 0}) {
		t.Fatal("Top: doubly-translated local point mapping to world origin should be inside")
	}

	s.PopTransform()
	if s.Top().Inside(linear.DVec3{0, 0, 0}) {
		t.Fatal("Top: local origin should match the single-translation state after popping the second translation")
	}

	s.PopTransform()
	if len(s.localToWorld) != 0 {
		t.Fatalf("after popping both pushes: localToWorld stack len = %d, want 0", len(s.localToWorld))
	}
}

func TestStackPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("PopTransform: want panic when stack holds only the world entry")
		}
	}()
	s := NewStack(cube())
	s.PopTransform()
}
