// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

package polytope

import (
	"github.com/suchaoyong/VulkanSceneGraph/linear"
)

// Viewport mirrors the subset of viewport state the camera-to-world
// polytope construction needs: the origin and extent of the
// rendered region, and the depth range mapped onto NDC z.
type Viewport struct {
	X, Y          float64
	Width, Height float64
	MinDepth      float64
	MaxDepth      float64
}

// NewFromCamera builds the world-space Polytope enclosing the pixel
// rectangle [xMin, xMax] x [yMin, yMax] of a camera described by
// proj (eye-to-clip) and view (world-to-eye), within the given
// viewport.
//
// Reverse-Z projections (proj[2][2] > 0, tested via At(2,2)) swap
// which NDC depth plane is "near" and which is "far", matching the
// original's reverse_depth detection.
func NewFromCamera(proj, view linear.DMat4, viewport Viewport, xMin, yMin, xMax, yMax float64) Polytope {
	reverseDepth := proj.At(2, 2) > 0.0

	ndc := func(v, origin, extent float64) float64 {
		if extent > 0 {
			return 2.0*(v-origin)/extent - 1.0
		}
		return v
	}
	ndcXMin := ndc(xMin, viewport.X, viewport.Width)
	ndcXMax := ndc(xMax, viewport.X, viewport.Width)
	ndcYMin := ndc(yMin, viewport.Y, viewport.Height)
	ndcYMax := ndc(yMax, viewport.Y, viewport.Height)

	ndcNear, ndcFar := viewport.MinDepth, viewport.MaxDepth
	if reverseDepth {
		ndcNear, ndcFar = viewport.MaxDepth, viewport.MinDepth
	}

	clip := Polytope{
		{A: 1, B: 0, C: 0, D: -ndcXMin},  // left
		{A: -1, B: 0, C: 0, D: ndcXMax},  // right
		{A: 0, B: 1, C: 0, D: -ndcYMin},  // bottom
		{A: 0, B: -1, C: 0, D: ndcYMax},  // top
		{A: 0, B: 0, C: -1, D: ndcNear},  // near
		{A: 0, B: 0, C: 1, D: ndcFar},    // far
	}

	eye := make(Polytope, len(clip))
	for i, hs := range clip {
		eye[i] = linear.TransformPlane(hs, proj)
	}

	world := make(Polytope, len(eye))
	for i, hs := range eye {
		world[i] = linear.TransformPlane(hs, view)
	}

	return world
}
