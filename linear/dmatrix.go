// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package linear

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DVec3 is a 3-component vector of float64, used where camera and
// polytope math needs more precision than the float32 render-data
// types (V4, M4) provide.
type DVec3 = mgl64.Vec3

// DVec4 is a 4-component vector of float64.
type DVec4 = mgl64.Vec4

// DMat4 is a column-major 4x4 matrix of float64.
type DMat4 = mgl64.Mat4

// DMat4I returns the 4x4 identity matrix.
func DMat4I() DMat4 { return mgl64.Ident4() }

// DPlane is a plane in the form a*x + b*y + c*z + d >= 0.
type DPlane struct {
	A, B, C, D float64
}

// Dot4 returns the plane's coefficients dotted with v, treating
// the plane as a DVec4 (A, B, C, D) and v's fourth component as 1.
func (p DPlane) Dot4(v DVec3) float64 {
	return p.A*v[0] + p.B*v[1] + p.C*v[2] + p.D
}

// Normalize returns p scaled so that (A, B, C) has unit length.
// It panics if (A, B, C) is the zero vector.
func (p DPlane) Normalize() DPlane {
	n := mgl64.Vec3{p.A, p.B, p.C}.Len()
	if n == 0 {
		panic("DPlane.Normalize: degenerate plane")
	}
	return DPlane{p.A / n, p.B / n, p.C / n, p.D / n}
}

// ToDMat4 widens a render-precision M4 into the double-precision
// DMat4 the camera and polytope math use.
func ToDMat4(m M4) DMat4 {
	var d DMat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			d[col*4+row] = float64(m[col][row])
		}
	}
	return d
}

// TransformPlane returns the plane obtained by substituting, into
// p's inequality, points expressed in the space m maps from.
//
// If p is valid for points x_A and m maps x_A = m * x_B, then
// p(x_A) = p(m * x_B) = (p * m)(x_B), i.e. the new plane is the row
// vector p times m directly - no inverse or transpose needed. This
// is the same convention the camera-to-polytope construction uses
// to carry clip-space half-spaces into eye then world space, and
// that the transform stack uses to carry world-space half-spaces
// into local space via the node's localToWorld matrix.
func TransformPlane(p DPlane, m DMat4) DPlane {
	pl := [4]float64{p.A, p.B, p.C, p.D}
	var r [4]float64
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[col] += pl[row] * m.At(row, col)
		}
	}
	return DPlane{r[0], r[1], r[2], r[3]}
}
