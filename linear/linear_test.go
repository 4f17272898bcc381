// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package linear

import "testing"

func TestM4Identity(t *testing.T) {
	var m M4
	m.I()
	want := M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}
	if m != want {
		t.Fatalf("M4.I\nhave %v\nwant %v", m, want)
	}
}

func TestM4Mul(t *testing.T) {
	var i M4
	i.I()

	translate := M4{{1}, {0, 1}, {0, 0, 1}, {-1, -2, -3, 1}}
	scale := M4{{5}, {0, 5}, {0, 0, 5}, {0, 0, 0, 1}}

	tests := []struct {
		name string
		l, r M4
		want M4
	}{
		{"identity is a no-op", i, translate, translate},
		{"translate then scale", translate, scale, M4{{5}, {0, 5}, {0, 0, 5}, {-1, -2, -3, 1}}},
	}
	for _, tc := range tests {
		var m M4
		if m.Mul(&tc.l, &tc.r); m != tc.want {
			t.Errorf("%s: M4.Mul\nhave %v\nwant %v", tc.name, m, tc.want)
		}
	}
}
