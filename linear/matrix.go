// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package linear

// V4 is a 4-component vector of float32, used as each column of M4.
type V4 [4]float32

// M4 is a column-major 4x4 matrix of float32, carried by every scene
// node as its local transform.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	*m = M4{}
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[k][j] * r[i][k]
			}
		}
	}
}
