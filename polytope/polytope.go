// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package polytope implements convex-region picking against a scene
// graph traversed under a transform stack: a Polytope is the
// intersection of a set of half-spaces, built from a camera's
// projection and view matrices and then carried into each visited
// node's local space for primitive-level testing.
package polytope

import (
	"math"

	"github.com/suchaoyong/VulkanSceneGraph/linear"
)

const polytopePrefix = "polytope: "

// HalfSpace is the inequality a*x + b*y + c*z + d >= 0. A point
// satisfies the half-space when Dot4 of the point is non-negative.
type HalfSpace = linear.DPlane

// Polytope is the convex region formed by the intersection of its
// half-spaces.
type Polytope []HalfSpace

// Inside reports whether v lies within every half-space of p.
func (p Polytope) Inside(v linear.DVec3) bool {
	for _, hs := range p {
		if hs.Dot4(v) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether the sphere of the given center
// and radius intersects or is contained within p. It is a
// conservative test: the sphere is rejected only when it lies
// entirely on the outside of some half-space, matching the
// original's signed-distance-against-radius comparison.
//
// A non-positive radius or a non-finite center is never considered
// to intersect: Go's NaN comparisons are always false, so without
// this check a NaN component would slip past every half-space test
// below and report a hit.
func (p Polytope) IntersectsSphere(center linear.DVec3, radius float64) bool {
	if radius <= 0 || !validSphereCenter(center) {
		return false
	}
	for _, hs := range p {
		if hs.Dot4(center) < -radius {
			return false
		}
	}
	return true
}

// validSphereCenter reports whether every component of v is finite.
func validSphereCenter(v linear.DVec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
